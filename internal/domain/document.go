package domain

import "time"

type DocumentType string

const (
	DocumentTypeSTCForm          DocumentType = "stc_form"
	DocumentTypeAssignmentForm   DocumentType = "assignment_form"
	DocumentTypeComplianceReport DocumentType = "compliance_report"
	DocumentTypeOther            DocumentType = "other"
)

// ComplianceDocument records a generated compliance artifact for an
// installation. Only the storage URL is kept, never the content.
type ComplianceDocument struct {
	ID             string       `json:"id"`
	InstallationID string       `json:"installation_id"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentURL    string       `json:"document_url"`
	GeneratedBy    string       `json:"generated_by"`
	GeneratedAt    time.Time    `json:"generated_at"`
}
