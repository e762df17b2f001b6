package domain

import (
	"context"
	"time"

	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, idOrSlug string) (*Response, error)
	// Resolve returns the raw catalog record; quoting and enrollment use it.
	Resolve(ctx context.Context, idOrSlug string) (*Course, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Deactivate(ctx context.Context, id string) (*Response, error)
}

type CreateRequest struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	DurationWeeks      int     `json:"duration_weeks"`
	BaseCourseFee      float64 `json:"base_course_fee"`
	DiscountPercentage float64 `json:"discount_percentage"`
	HostelAvailable    bool    `json:"hostel_available"`
	HostelFee          float64 `json:"hostel_fee"`
	MessAvailable      bool    `json:"mess_available"`
	MessFee            float64 `json:"mess_fee"`
}

type UpdateRequest struct {
	ID                 string   `json:"id"`
	Title              *string  `json:"title,omitempty"`
	Description        *string  `json:"description,omitempty"`
	DurationWeeks      *int     `json:"duration_weeks,omitempty"`
	BaseCourseFee      *float64 `json:"base_course_fee,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	HostelAvailable    *bool    `json:"hostel_available,omitempty"`
	HostelFee          *float64 `json:"hostel_fee,omitempty"`
	MessAvailable      *bool    `json:"mess_available,omitempty"`
	MessFee            *float64 `json:"mess_fee,omitempty"`
}

type ListRequest struct {
	Active    *bool
	Query     string
	SortBy    string
	PageToken string
	PageSize  int32
}

type Response struct {
	ID                 string    `json:"id"`
	Slug               string    `json:"slug"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	DurationWeeks      int       `json:"duration_weeks"`
	BaseCourseFee      float64   `json:"base_course_fee"`
	DiscountPercentage float64   `json:"discount_percentage"`
	HostelAvailable    bool      `json:"hostel_available"`
	HostelFee          float64   `json:"hostel_fee"`
	MessAvailable      bool      `json:"mess_available"`
	MessFee            float64   `json:"mess_fee"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ListResponse struct {
	Courses  []Response          `json:"courses"`
	PageInfo pagination.PageInfo `json:"page_info"`
}
