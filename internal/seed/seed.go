// Package seed bootstraps a demo course catalog so a fresh install has
// something to quote against.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
)

// EnsureDemoCatalog inserts a starter catalog when the courses table is
// empty. An already-populated catalog is left untouched.
func EnsureDemoCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&coursedomain.Course{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		courses := []coursedomain.Course{
			{
				Title:              "Heavy Vehicle Operation",
				Description:        "Operation and maintenance of heavy commercial vehicles.",
				DurationWeeks:      12,
				BaseCourseFee:      45000,
				DiscountPercentage: 10,
				HostelAvailable:    true,
				HostelFee:          9000,
				MessAvailable:      true,
				MessFee:            6000,
			},
			{
				Title:              "Excavator Training",
				Description:        "Hands-on excavator operation from basic controls to trenching.",
				DurationWeeks:      8,
				BaseCourseFee:      35000,
				DiscountPercentage: 5,
				HostelAvailable:    true,
				HostelFee:          6000,
				MessAvailable:      false,
			},
			{
				Title:              "Crane Operator Certification",
				Description:        "Mobile crane operation, load charts and site safety.",
				DurationWeeks:      16,
				BaseCourseFee:      60000,
				HostelAvailable:    false,
				MessAvailable:      true,
				MessFee:            8000,
			},
		}

		for i := range courses {
			courses[i].ID = node.Generate()
			courses[i].Slug = slug.Make(courses[i].Title)
			courses[i].Active = true
			if err := tx.Create(&courses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
