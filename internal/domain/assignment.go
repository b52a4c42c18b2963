package domain

import "time"

// RightsAssignment is the signed record that transfers STC creation rights
// from the tradie to the platform. At most one exists per installation;
// creating it is what flips Installation.CreditsAssigned to true.
type RightsAssignment struct {
	ID             string    `json:"id"`
	InstallationID string    `json:"installation_id"`
	TradieID       string    `json:"tradie_id"`
	SignatureKey   string    `json:"signature_key"` // storage key of the rendered signature image
	AgreedToTerms  bool      `json:"agreed_to_terms"`
	SignedAt       time.Time `json:"signed_at"`
}
