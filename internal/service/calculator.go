package service

import (
	"context"
	"time"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/logger"
	"stc-compliance-backend/internal/repository"
	"stc-compliance-backend/internal/stc"
)

type calculatorService struct {
	scheme           stc.Scheme
	defaultUnitPrice float64
	calcRepo         repository.CalculationRepository
}

func NewCalculatorService(scheme stc.Scheme, defaultUnitPrice float64, calcRepo repository.CalculationRepository) CalculatorService {
	return &calculatorService{
		scheme:           scheme,
		defaultUnitPrice: defaultUnitPrice,
		calcRepo:         calcRepo,
	}
}

// Estimate computes the certificate entitlement and appends the result to the
// calculation history. The history write is fire-and-forget: a storage
// failure is logged and swallowed, never surfaced to the caller.
func (s *calculatorService) Estimate(ctx context.Context, in stc.Input, postcode string) (stc.Result, error) {
	if in.UnitPrice == 0 {
		in.UnitPrice = s.defaultUnitPrice
	}
	if in.CurrentYear == 0 {
		in.CurrentYear = time.Now().Year()
	}

	result, err := s.scheme.Compute(in)
	if err != nil {
		return stc.Result{}, err
	}

	record := &domain.Calculation{
		SystemSizeKw:   in.SystemSizeKw,
		Postcode:       postcode,
		Zone:           in.Zone,
		UnitPrice:      in.UnitPrice,
		TotalUnits:     result.TotalUnits,
		EstimatedValue: result.EstimatedValue,
	}
	if err := s.calcRepo.Create(ctx, record); err != nil {
		logger.Warn("Failed to record calculation history", "error", err)
	}

	return result, nil
}

func (s *calculatorService) RecentCalculations(ctx context.Context, limit int32) ([]domain.Calculation, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.calcRepo.ListRecent(ctx, limit)
}
