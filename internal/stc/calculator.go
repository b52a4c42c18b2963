package stc

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrSchemeExpired is returned when the reference year is at or past the
	// scheme end year. Recomputing with the same inputs will never succeed.
	ErrSchemeExpired = errors.New("small-scale technology certificate scheme has ended")

	// ErrInvalidZone is returned for a zone identifier outside the enumerated
	// geographic zones.
	ErrInvalidZone = errors.New("invalid solar zone")
)

// Scheme holds the regulatory parameters of the Small-scale Renewable Energy
// Scheme. Multipliers and the end year come from configuration so they can be
// revised when the regulator updates them.
type Scheme struct {
	EndYear         int
	ZoneMultipliers map[int]float64
}

// DefaultScheme returns the scheme parameters as published at the time of
// writing: deeming runs to 2030, with four geographic zones of decreasing
// solar yield.
func DefaultScheme() Scheme {
	return Scheme{
		EndYear: 2030,
		ZoneMultipliers: map[int]float64{
			1: 1.622,
			2: 1.536,
			3: 1.382,
			4: 1.185,
		},
	}
}

// Input carries the parameters of one entitlement calculation.
type Input struct {
	SystemSizeKw float64
	Zone         int
	UnitPrice    float64 // AUD per certificate
	CurrentYear  int
}

// Result is the derived entitlement estimate.
type Result struct {
	YearsRemaining int     `json:"years_remaining"`
	TotalUnits     int32   `json:"total_units"`
	EstimatedValue float64 `json:"estimated_value"`
}

// Compute converts raw installation parameters into an entitlement estimate:
// floor(systemSizeKw x zoneMultiplier x yearsRemaining) certificates at the
// given unit price. The scheme-expiry check runs before any arithmetic, and
// fractional certificate counts are always truncated down, never rounded.
func (s Scheme) Compute(in Input) (Result, error) {
	yearsRemaining := s.EndYear - in.CurrentYear
	if yearsRemaining <= 0 {
		return Result{}, ErrSchemeExpired
	}

	multiplier, ok := s.ZoneMultipliers[in.Zone]
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidZone, in.Zone)
	}

	if in.SystemSizeKw < 0 {
		return Result{}, fmt.Errorf("system size must not be negative, got %v", in.SystemSizeKw)
	}
	if in.UnitPrice <= 0 {
		return Result{}, fmt.Errorf("unit price must be positive, got %v", in.UnitPrice)
	}

	totalUnits := int32(math.Floor(in.SystemSizeKw * multiplier * float64(yearsRemaining)))

	return Result{
		YearsRemaining: yearsRemaining,
		TotalUnits:     totalUnits,
		EstimatedValue: float64(totalUnits) * in.UnitPrice,
	}, nil
}
