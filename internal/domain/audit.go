package domain

import "time"

type AuditType string

const (
	AuditTypePanelSerialVerification AuditType = "panel_serial_verification"
	AuditTypeRegistryCheck           AuditType = "rec_registry_check"
	AuditTypeDocumentValidation      AuditType = "document_validation"
)

type AuditStatus string

const (
	AuditStatusPending AuditStatus = "pending"
	AuditStatusPassed  AuditStatus = "passed"
	AuditStatusFailed  AuditStatus = "failed"
	AuditStatusWarning AuditStatus = "warning"
)

type AuditLog struct {
	ID             string            `json:"id"`
	InstallationID string            `json:"installation_id"`
	AuditType      AuditType         `json:"audit_type"`
	Status         AuditStatus       `json:"status"`
	Details        map[string]string `json:"details,omitempty"`
	PerformedBy    string            `json:"performed_by"`
	PerformedAt    time.Time         `json:"performed_at"`
}
