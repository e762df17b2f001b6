package domain

import (
	"context"
	"time"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

type Service interface {
	// Quote computes a fee breakdown without persisting anything.
	Quote(ctx context.Context, req QuoteRequest) (*BreakdownView, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type QuoteRequest struct {
	CourseID            string  `json:"course_id"`
	HostelOpted         bool    `json:"hostel_opted"`
	MessOpted           bool    `json:"mess_opted"`
	ExtraDiscountAmount float64 `json:"extra_discount_amount"`
	IGSTApplicable      bool    `json:"igst_applicable"`
	PaidAmount          float64 `json:"paid_amount"`
}

type CreateRequest struct {
	CourseID     string `json:"course_id"`
	StudentName  string `json:"student_name"`
	StudentPhone string `json:"student_phone"`
	StudentEmail string `json:"student_email"`

	HostelOpted         bool    `json:"hostel_opted"`
	MessOpted           bool    `json:"mess_opted"`
	ExtraDiscountAmount float64 `json:"extra_discount_amount"`
	IGSTApplicable      bool    `json:"igst_applicable"`
	PaidAmount          float64 `json:"paid_amount"`

	// EchoedTotalPayable is the client-computed total, checked against the
	// server recompute for audit. Nil skips the check.
	EchoedTotalPayable *float64 `json:"total_payable_fee,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

type ListRequest struct {
	CourseID  string
	Query     string
	PageToken string
	PageSize  int32
}

// BreakdownView is the rounded, wire-facing projection of a fee breakdown.
type BreakdownView struct {
	BaseCourseFee       float64 `json:"base_course_fee"`
	DiscountPercentage  float64 `json:"discount_percentage"`
	DiscountedCourseFee float64 `json:"discounted_course_fee"`
	HostelFeeApplied    float64 `json:"hostel_fee_applied"`
	MessFeeApplied      float64 `json:"mess_fee_applied"`
	ExtraDiscountAmount float64 `json:"extra_discount_amount"`
	PreTaxTotal         float64 `json:"pre_tax_total"`
	SGSTAmount          float64 `json:"sgst_amount"`
	CGSTAmount          float64 `json:"cgst_amount"`
	IGSTAmount          float64 `json:"igst_amount"`
	TotalPayableFee     float64 `json:"total_payable_fee"`
	PaidAmount          float64 `json:"paid_amount"`
	DueAmount           float64 `json:"due_amount"`
}

func NewBreakdownView(b fee.Breakdown) BreakdownView {
	r := b.Rounded()
	return BreakdownView{
		BaseCourseFee:       r.BaseCourseFee,
		DiscountPercentage:  r.DiscountPercentage,
		DiscountedCourseFee: r.DiscountedCourseFee,
		HostelFeeApplied:    r.HostelFeeApplied,
		MessFeeApplied:      r.MessFeeApplied,
		ExtraDiscountAmount: r.ExtraDiscountAmount,
		PreTaxTotal:         r.PreTaxTotal,
		SGSTAmount:          r.SGSTAmount,
		CGSTAmount:          r.CGSTAmount,
		IGSTAmount:          r.IGSTAmount,
		TotalPayableFee:     r.TotalPayableFee,
		PaidAmount:          r.PaidAmount,
		DueAmount:           r.DueAmount,
	}
}

type Response struct {
	ID           string `json:"id"`
	CourseID     string `json:"course_id"`
	CourseTitle  string `json:"course_title,omitempty"`
	StudentName  string `json:"student_name"`
	StudentPhone string `json:"student_phone"`
	StudentEmail string `json:"student_email,omitempty"`

	HostelOpted    bool `json:"hostel_opted"`
	MessOpted      bool `json:"mess_opted"`
	IGSTApplicable bool `json:"igst_applicable"`

	Breakdown BreakdownView `json:"breakdown"`

	CreatedAt time.Time `json:"created_at"`
}

type ListResponse struct {
	Enrollments []Response          `json:"enrollments"`
	PageInfo    pagination.PageInfo `json:"page_info"`
}
