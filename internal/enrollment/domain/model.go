// Package domain contains persistence models and contracts for enrollments.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
)

// Enrollment is a submitted enrollment with its fee breakdown snapshot.
// The snapshot is the server-computed breakdown at submission time; the
// client total is echoed only for audit and never stored as truth.
type Enrollment struct {
	ID       snowflake.ID `gorm:"primaryKey"`
	CourseID snowflake.ID `gorm:"not null;index"`

	StudentName  string `gorm:"type:text;not null"`
	StudentPhone string `gorm:"type:text;not null;index"`
	StudentEmail string `gorm:"type:text"`

	HostelOpted    bool `gorm:"not null;default:false"`
	MessOpted      bool `gorm:"not null;default:false"`
	IGSTApplicable bool `gorm:"not null;default:false"`

	BaseCourseFee       float64 `gorm:"not null;default:0"`
	DiscountPercentage  float64 `gorm:"not null;default:0"`
	DiscountedCourseFee float64 `gorm:"not null;default:0"`
	HostelFeeApplied    float64 `gorm:"not null;default:0"`
	MessFeeApplied      float64 `gorm:"not null;default:0"`
	ExtraDiscountAmount float64 `gorm:"not null;default:0"`
	PreTaxTotal         float64 `gorm:"not null;default:0"`
	SGSTAmount          float64 `gorm:"not null;default:0"`
	CGSTAmount          float64 `gorm:"not null;default:0"`
	IGSTAmount          float64 `gorm:"not null;default:0"`
	TotalPayableFee     float64 `gorm:"not null;default:0"`
	PaidAmount          float64 `gorm:"not null;default:0"`
	DueAmount           float64 `gorm:"not null;default:0"`

	Metadata datatypes.JSONMap `gorm:"not null;default:'{}'"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Enrollment) TableName() string { return "enrollments" }

// ApplyBreakdown stores the rounded fee snapshot on the record.
func (e *Enrollment) ApplyBreakdown(b fee.Breakdown) {
	r := b.Rounded()
	e.BaseCourseFee = r.BaseCourseFee
	e.DiscountPercentage = r.DiscountPercentage
	e.DiscountedCourseFee = r.DiscountedCourseFee
	e.HostelFeeApplied = r.HostelFeeApplied
	e.MessFeeApplied = r.MessFeeApplied
	e.ExtraDiscountAmount = r.ExtraDiscountAmount
	e.PreTaxTotal = r.PreTaxTotal
	e.SGSTAmount = r.SGSTAmount
	e.CGSTAmount = r.CGSTAmount
	e.IGSTAmount = r.IGSTAmount
	e.TotalPayableFee = r.TotalPayableFee
	e.PaidAmount = r.PaidAmount
	e.DueAmount = r.DueAmount
}
