package service

import (
	"context"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/lifecycle"
	"stc-compliance-backend/internal/logger"
	"stc-compliance-backend/internal/repository"
)

type reviewService struct {
	instRepo repository.InstallationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewReviewService(
	instRepo repository.InstallationRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) ReviewService {
	return &reviewService{
		instRepo: instRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

// apply runs one admin transition: guard check via the state machine, then a
// single compare-and-swap status write. A failed guard or a raced write
// leaves the stored record untouched.
func (s *reviewService) apply(ctx context.Context, actorID string, actorRole domain.UserRole, installationID string, event lifecycle.Event, notes string) (*domain.Installation, error) {
	inst, err := s.instRepo.GetByID(ctx, installationID)
	if err != nil {
		return nil, err
	}

	next, err := lifecycle.Transition(inst.Status, event, lifecycle.Context{
		ActorID:   actorID,
		ActorRole: actorRole,
		OwnerID:   inst.TradieID,
	})
	if err != nil {
		return nil, err
	}

	if notes == "" {
		notes = inst.Notes
	}
	if err := s.instRepo.UpdateStatus(ctx, installationID, inst.Status, next, notes); err != nil {
		return nil, err
	}
	inst.Status = next
	inst.Notes = notes

	s.notifyTradie(ctx, inst)
	return inst, nil
}

// notifyTradie emails the owning tradie about the outcome. Best-effort: a
// failed send never fails the transition.
func (s *reviewService) notifyTradie(ctx context.Context, inst *domain.Installation) {
	tradie, err := s.userRepo.GetByID(ctx, inst.TradieID)
	if err != nil {
		logger.Warn("Failed to load tradie for notification", "tradie_id", inst.TradieID, "error", err)
		return
	}
	if err := s.emailSvc.SendReviewOutcomeNotification(ctx, tradie.Email, tradie.FullName, inst.SiteAddress, inst.Status, inst.Notes); err != nil {
		logger.Warn("Failed to send review outcome notification", "installation_id", inst.ID, "error", err)
	}
}

func (s *reviewService) StartReview(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error) {
	return s.apply(ctx, actorID, actorRole, installationID, lifecycle.EventStartReview, notes)
}

func (s *reviewService) Approve(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error) {
	return s.apply(ctx, actorID, actorRole, installationID, lifecycle.EventApprove, notes)
}

func (s *reviewService) Reject(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error) {
	return s.apply(ctx, actorID, actorRole, installationID, lifecycle.EventReject, notes)
}

func (s *reviewService) MarkCreditsClaimed(ctx context.Context, actorID string, actorRole domain.UserRole, installationID, notes string) (*domain.Installation, error) {
	return s.apply(ctx, actorID, actorRole, installationID, lifecycle.EventClaimCredits, notes)
}

func (s *reviewService) ListByStatus(ctx context.Context, actorRole domain.UserRole, status domain.InstallationStatus, page, pageSize int32) ([]domain.Installation, int32, error) {
	if actorRole != domain.UserRoleAdmin {
		return nil, 0, ErrUnauthorized
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.instRepo.ListByStatus(ctx, status, page, pageSize)
}

// ListTradies is the admin directory of registered installer accounts.
func (s *reviewService) ListTradies(ctx context.Context, actorRole domain.UserRole) ([]domain.User, error) {
	if actorRole != domain.UserRoleAdmin {
		return nil, ErrUnauthorized
	}
	return s.userRepo.ListTradies(ctx)
}
