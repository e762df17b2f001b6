// Package domain contains persistence models and contracts for enrollment documents.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Known document types accepted at enrollment time. Anything outside this
// set is rejected before touching disk.
const (
	TypeIDProof       = "id_proof"
	TypeAddressProof  = "address_proof"
	TypePhoto         = "photo"
	TypeEducationCert = "education_certificate"
	TypeOther         = "other"
)

// Document is a file attached to an enrollment. The file body lives on disk
// under the configured document directory; StorageKey names it.
type Document struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	EnrollmentID snowflake.ID `gorm:"not null;uniqueIndex:ux_documents_enrollment_type"`

	Type       string `gorm:"type:text;not null;uniqueIndex:ux_documents_enrollment_type"`
	Filename   string `gorm:"type:text;not null"`
	StorageKey string `gorm:"type:text;not null;uniqueIndex"`
	SizeBytes  int64  `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Document) TableName() string { return "documents" }

// ValidType reports whether t is one of the accepted document types.
func ValidType(t string) bool {
	switch t {
	case TypeIDProof, TypeAddressProof, TypePhoto, TypeEducationCert, TypeOther:
		return true
	}
	return false
}
