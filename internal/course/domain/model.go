package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
)

// Course is a purchasable training course with its pricing and
// accommodation options.
type Course struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Slug string       `gorm:"type:text;not null;uniqueIndex"`

	Title       string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`

	DurationWeeks int `gorm:"not null"`

	BaseCourseFee      float64 `gorm:"not null;default:0"`
	DiscountPercentage float64 `gorm:"not null;default:0"`

	HostelAvailable bool    `gorm:"not null;default:false"`
	HostelFee       float64 `gorm:"not null;default:0"`
	MessAvailable   bool    `gorm:"not null;default:false"`
	MessFee         float64 `gorm:"not null;default:0"`

	Active bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Course) TableName() string { return "courses" }

// CatalogEntry projects the pricing slice the fee calculator consumes.
func (c Course) CatalogEntry() fee.CatalogEntry {
	return fee.CatalogEntry{
		BaseCourseFee:      c.BaseCourseFee,
		DiscountPercentage: c.DiscountPercentage,
		HostelAvailable:    c.HostelAvailable,
		HostelFee:          c.HostelFee,
		MessAvailable:      c.MessAvailable,
		MessFee:            c.MessFee,
	}
}

// Validate enforces catalog-side pricing invariants. The fee calculator
// trusts these fields, so they are checked here, at the catalog boundary.
func (c *Course) Validate() error {
	if c.Title == "" {
		return ErrInvalidTitle
	}
	if c.DurationWeeks <= 0 {
		return ErrInvalidDuration
	}
	if c.BaseCourseFee < 0 {
		return ErrInvalidBaseFee
	}
	if c.DiscountPercentage < 0 || c.DiscountPercentage > 100 {
		return ErrInvalidDiscount
	}
	if c.HostelFee < 0 {
		return ErrInvalidHostelFee
	}
	if c.MessFee < 0 {
		return ErrInvalidMessFee
	}
	return nil
}
