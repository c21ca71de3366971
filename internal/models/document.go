package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType categorizes an uploaded onboarding document.
type DocumentType string

const (
	DocIdentification DocumentType = "identification"
	DocTaxForm        DocumentType = "tax_form"
	DocContract       DocumentType = "contract"
	DocBenefits       DocumentType = "benefits"
)

// DocumentTypes returns all document categories in declaration order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocIdentification,
		DocTaxForm,
		DocContract,
		DocBenefits,
	}
}

// Valid reports whether t is a known document category.
func (t DocumentType) Valid() bool {
	switch t {
	case DocIdentification, DocTaxForm, DocContract, DocBenefits:
		return true
	}
	return false
}

// Document represents the stored metadata of an uploaded file.
type Document struct {
	ID          uuid.UUID    `json:"id"           db:"id"`
	EmployeeID  uuid.UUID    `json:"employee_id"  db:"employee_id"`
	Type        DocumentType `json:"type"         db:"doc_type"`
	FileName    string       `json:"file_name"    db:"file_name"`
	ContentType string       `json:"content_type" db:"content_type"`
	SizeBytes   int64        `json:"size_bytes"   db:"size_bytes"`
	StoragePath string       `json:"-"            db:"storage_path"`
	UploadedAt  time.Time    `json:"uploaded_at"  db:"uploaded_at"`
}
