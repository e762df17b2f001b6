package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) coursedomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, course *coursedomain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*coursedomain.Course, error) {
	var course coursedomain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*coursedomain.Course, error) {
	var course coursedomain.Course
	err := r.db.WithContext(ctx).First(&course, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *repository) List(ctx context.Context, filter coursedomain.ListFilter, page pagination.Pagination) ([]*coursedomain.Course, error) {
	stmt := r.db.WithContext(ctx).Model(&coursedomain.Course{})

	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}
	if filter.Query != "" {
		stmt = stmt.Where("title LIKE ?", "%"+filter.Query+"%")
	}

	switch filter.SortBy {
	case "title":
		stmt = stmt.Order("title ASC")
	case "base_course_fee":
		stmt = stmt.Order("base_course_fee ASC")
	default:
		stmt = stmt.Order("created_at DESC, id DESC")
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		if cursor.ID != "" {
			stmt = stmt.Where("id < ?", cursor.ID)
		}
	}
	if page.PageSize > 0 {
		// One extra row signals has_more.
		stmt = stmt.Limit(page.PageSize + 1)
	}

	var items []*coursedomain.Course
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, course *coursedomain.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}
