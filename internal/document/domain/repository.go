package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id snowflake.ID) (*Document, error)
	FindByEnrollmentAndType(ctx context.Context, enrollmentID snowflake.ID, docType string) (*Document, error)
	ListByEnrollment(ctx context.Context, enrollmentID snowflake.ID) ([]Document, error)
}
