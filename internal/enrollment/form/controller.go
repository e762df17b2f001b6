// Package form holds the enrollment form state and keeps its fee breakdown
// derived from current inputs at all times.
package form

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
)

// Field names the editable enrollment options. UpdateOption only accepts
// these, so form state never grows untyped keys.
type Field string

const (
	FieldHostelOpted    Field = "hostel_opted"
	FieldMessOpted      Field = "mess_opted"
	FieldExtraDiscount  Field = "extra_discount"
	FieldIGSTApplicable Field = "igst_applicable"
	FieldPaidAmount     Field = "paid_amount"
)

var (
	ErrUnknownField     = errors.New("unknown_field")
	ErrInvalidValue     = errors.New("invalid_value")
	ErrValidationFailed = errors.New("validation_failed")
)

// RatesFunc supplies the GST rates at compute time, so a hot-reloaded rate
// change shows up on the next recompute.
type RatesFunc func() fee.Rates

// Controller holds the selected course and the student's options, and
// recomputes the breakdown synchronously on every change. The breakdown is
// never stale: it is always fully derived from current inputs, validated
// or not.
type Controller struct {
	rates     RatesFunc
	course    *fee.CatalogEntry
	opts      fee.Options
	breakdown fee.Breakdown
}

func NewController(rates RatesFunc) *Controller {
	c := &Controller{rates: rates}
	c.recompute()
	return c
}

// SelectCourse sets the active course. Opt-ins for amenities the new course
// does not offer are force-cleared: the calculator would clamp the fee to
// zero anyway, but the form state itself must never show an impossible
// combination either.
func (c *Controller) SelectCourse(entry *fee.CatalogEntry) {
	c.course = entry
	if entry == nil || !entry.HostelAvailable {
		c.opts.HostelOpted = false
	}
	if entry == nil || !entry.MessAvailable {
		c.opts.MessOpted = false
	}
	c.recompute()
}

// UpdateOption sets one option field and re-derives the breakdown.
func (c *Controller) UpdateOption(field Field, value any) error {
	switch field {
	case FieldHostelOpted:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool", ErrInvalidValue, field)
		}
		c.opts.HostelOpted = v
	case FieldMessOpted:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool", ErrInvalidValue, field)
		}
		c.opts.MessOpted = v
	case FieldIGSTApplicable:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool", ErrInvalidValue, field)
		}
		c.opts.IGSTApplicable = v
	case FieldExtraDiscount:
		v, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s wants number", ErrInvalidValue, field)
		}
		c.opts.ExtraDiscountAmount = v
	case FieldPaidAmount:
		v, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s wants number", ErrInvalidValue, field)
		}
		c.opts.PaidAmount = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	c.recompute()
	return nil
}

func (c *Controller) Options() fee.Options {
	return c.opts
}

func (c *Controller) Breakdown() fee.Breakdown {
	return c.breakdown
}

func (c *Controller) recompute() {
	c.breakdown = fee.Compute(c.course, c.opts, c.rates())
}

// Result maps field names to messages. Errors block submission; warnings
// do not.
type Result struct {
	Errors   map[string]string
	Warnings map[string]string
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks the current form state without mutating it. Overpayment
// is deliberately a warning: a negative due amount is well-defined.
func (c *Controller) Validate() Result {
	res := Result{
		Errors:   map[string]string{},
		Warnings: map[string]string{},
	}

	if c.course == nil {
		res.Errors["course"] = "course is required"
	}
	if c.opts.ExtraDiscountAmount < 0 {
		res.Errors[string(FieldExtraDiscount)] = "extra discount cannot be negative"
	}
	if c.opts.PaidAmount < 0 {
		res.Errors[string(FieldPaidAmount)] = "paid amount cannot be negative"
	}
	if c.course != nil && c.opts.PaidAmount > c.breakdown.TotalPayableFee {
		res.Warnings[string(FieldPaidAmount)] = "paid amount exceeds total payable"
	}

	return res
}

// DocumentInput is one document attached on submission.
type DocumentInput struct {
	Type     string
	Filename string
	Content  io.Reader
}

// Submitter creates the enrollment record from the validated form state.
type Submitter interface {
	Submit(ctx context.Context, opts fee.Options, breakdown fee.Breakdown) (enrollmentID string, err error)
}

// Uploader attaches one document to a created enrollment.
type Uploader interface {
	Upload(ctx context.Context, enrollmentID string, doc DocumentInput) error
}

// SubmitResult reports the created enrollment and any upload warnings.
type SubmitResult struct {
	EnrollmentID string
	Warnings     []string
}

// Submit validates, delegates enrollment creation, then uploads documents
// best-effort. The enrollment is the atomic unit: a failed upload is
// reported as a warning and never rolls it back. A failed submission
// leaves form state untouched so the caller can resubmit.
func (c *Controller) Submit(ctx context.Context, submitter Submitter, uploader Uploader, docs []DocumentInput) (*SubmitResult, error) {
	if res := c.Validate(); !res.OK() {
		return nil, ErrValidationFailed
	}

	// Each document type may appear at most once per enrollment; the form
	// enforces it, not the upload service.
	seen := map[string]bool{}
	for _, doc := range docs {
		if seen[doc.Type] {
			return nil, fmt.Errorf("%w: duplicate document type %q", ErrValidationFailed, doc.Type)
		}
		seen[doc.Type] = true
	}

	enrollmentID, err := submitter.Submit(ctx, c.opts, c.breakdown)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{EnrollmentID: enrollmentID}
	if uploader == nil {
		return result, nil
	}

	for _, doc := range docs {
		if err := uploader.Upload(ctx, enrollmentID, doc); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("document %q not uploaded: %v", doc.Type, err))
		}
	}

	return result, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
