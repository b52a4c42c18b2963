package domain

import "time"

// Panel is one physical solar module captured for an installation. The two
// image URLs are the photographic evidence required before credits can be
// assigned: one of the serial number sticker, one of the panel in situ.
type Panel struct {
	ID              string    `json:"id"`
	InstallationID  string    `json:"installation_id"`
	SerialNumber    string    `json:"serial_number"`
	Manufacturer    string    `json:"manufacturer"`
	Model           string    `json:"model"`
	Wattage         *int32    `json:"wattage,omitempty"`
	SerialImageURL  string    `json:"serial_image_url"`
	InstallImageURL string    `json:"installation_image_url"`
	Verified        bool      `json:"verified"`
	CECApproved     bool      `json:"cec_approved"`
	CreatedAt       time.Time `json:"created_at"`
}
