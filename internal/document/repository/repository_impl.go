package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/abhijitabd5/sti-academy/internal/document/domain"
)

type documentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Insert(ctx context.Context, doc *domain.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByEnrollmentAndType(ctx context.Context, enrollmentID snowflake.ID, docType string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ? AND type = ?", enrollmentID, docType).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByEnrollment(ctx context.Context, enrollmentID snowflake.ID) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
