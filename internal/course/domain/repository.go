package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"

	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

type ListFilter struct {
	Active *bool
	Query  string
	SortBy string
}

type Repository interface {
	Insert(ctx context.Context, course *Course) error
	FindByID(ctx context.Context, id snowflake.ID) (*Course, error)
	FindBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context, filter ListFilter, page pagination.Pagination) ([]*Course, error)
	Update(ctx context.Context, course *Course) error
}
