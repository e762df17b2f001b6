package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"

	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

type ListFilter struct {
	CourseID snowflake.ID
	Query    string
}

type Repository interface {
	Insert(ctx context.Context, enrollment *Enrollment) error
	FindByID(ctx context.Context, id snowflake.ID) (*Enrollment, error)
	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*Enrollment, error)
}
