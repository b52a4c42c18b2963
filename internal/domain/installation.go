package domain

import "time"

type InstallationStatus string

const (
	InstallationStatusDraft          InstallationStatus = "draft"
	InstallationStatusSubmitted      InstallationStatus = "submitted"
	InstallationStatusUnderReview    InstallationStatus = "under_review"
	InstallationStatusApproved       InstallationStatus = "approved"
	InstallationStatusRejected       InstallationStatus = "rejected"
	InstallationStatusCreditsClaimed InstallationStatus = "credits_claimed"
)

// Installation is one solar system deployment for one customer, owned by the
// tradie who created it. Records are never hard-deleted; a rejected
// installation stays around as an audit record.
type Installation struct {
	ID               string             `json:"id"`
	TradieID         string             `json:"tradie_id"`
	Tradie           *User              `json:"tradie,omitempty"` // Populated when fetching details
	CustomerName     string             `json:"customer_name"`
	CustomerEmail    string             `json:"customer_email"`
	CustomerPhone    string             `json:"customer_phone"`
	SiteAddress      string             `json:"site_address"`
	SiteSuburb       string             `json:"site_suburb"`
	SiteState        string             `json:"site_state"`
	SitePostcode     string             `json:"site_postcode"`
	InstallationDate string             `json:"installation_date"` // yyyy-mm-dd
	SystemSizeKw     float64            `json:"system_size_kw"`
	TotalPanels      int32              `json:"total_panels"`
	Status           InstallationStatus `json:"status"`
	CreditsAssigned  bool               `json:"credits_assigned"`
	AssignmentDate   *time.Time         `json:"assignment_date,omitempty"`
	Notes            string             `json:"notes"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
