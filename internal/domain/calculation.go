package domain

import "time"

// Calculation is a historical record of one entitlement estimate. It is
// informational only and never treated as a source of truth.
type Calculation struct {
	ID             string    `json:"id"`
	SystemSizeKw   float64   `json:"system_size_kw"`
	Postcode       string    `json:"postcode"`
	Zone           int       `json:"zone"`
	UnitPrice      float64   `json:"unit_price"`
	TotalUnits     int32     `json:"total_units"`
	EstimatedValue float64   `json:"estimated_value"`
	CreatedAt      time.Time `json:"created_at"`
}
