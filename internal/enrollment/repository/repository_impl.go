package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	enrollmentdomain "github.com/abhijitabd5/sti-academy/internal/enrollment/domain"
	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) enrollmentdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, enrollment *enrollmentdomain.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*enrollmentdomain.Enrollment, error) {
	var enrollment enrollmentdomain.Enrollment
	err := r.db.WithContext(ctx).First(&enrollment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *repository) List(ctx context.Context, filter enrollmentdomain.ListFilter, page pagination.Pagination) ([]*enrollmentdomain.Enrollment, error) {
	stmt := r.db.WithContext(ctx).
		Model(&enrollmentdomain.Enrollment{}).
		Order("created_at DESC, id DESC")

	if filter.CourseID != 0 {
		stmt = stmt.Where("course_id = ?", filter.CourseID)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		stmt = stmt.Where("student_name LIKE ? OR student_phone LIKE ?", like, like)
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
		stmt = stmt.Limit(page.PageSize + 1)
	}

	var items []*enrollmentdomain.Enrollment
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
