// Package fee computes enrollment fee breakdowns. Compute is a pure
// function: no I/O, no mutation of inputs, identical inputs always
// produce identical output.
package fee

import (
	"math"
	"strconv"
)

// CatalogEntry is the pricing slice of a course as supplied by the catalog.
// The catalog owns validation of these fields; the calculator trusts them.
type CatalogEntry struct {
	BaseCourseFee      float64
	DiscountPercentage float64
	HostelAvailable    bool
	HostelFee          float64
	MessAvailable      bool
	MessFee            float64
}

// Options are the student-chosen enrollment inputs.
type Options struct {
	HostelOpted         bool
	MessOpted           bool
	ExtraDiscountAmount float64
	IGSTApplicable      bool
	PaidAmount          float64
}

// Rates carries the GST percentages. The intra-state split (SGST+CGST) is
// expected to equal the inter-state IGST rate; config validation enforces it.
type Rates struct {
	SGSTPercent float64
	CGSTPercent float64
	IGSTPercent float64
}

// DefaultRates returns the statutory 9/9/18 GST split.
func DefaultRates() Rates {
	return Rates{SGSTPercent: 9, CGSTPercent: 9, IGSTPercent: 18}
}

// Breakdown is the derived fee summary. It is a transient projection,
// recomputed whenever any input changes. All fields are unrounded; apply
// Round2 or FormatAmount once, at presentation time.
type Breakdown struct {
	BaseCourseFee       float64
	DiscountPercentage  float64
	DiscountedCourseFee float64
	HostelFeeApplied    float64
	MessFeeApplied      float64
	ExtraDiscountAmount float64
	PreTaxTotal         float64
	SGSTAmount          float64
	CGSTAmount          float64
	IGSTAmount          float64
	TotalPayableFee     float64
	PaidAmount          float64
	DueAmount           float64
}

// Compute derives the fee breakdown for a course and the student's options.
// A nil entry means no course is selected yet and yields the zero Breakdown.
//
// Order matters: the percentage discount applies to the base fee only, the
// flat extra discount applies to the accommodation-inclusive subtotal, and
// tax applies to the full pre-tax total.
func Compute(entry *CatalogEntry, opts Options, rates Rates) Breakdown {
	if entry == nil {
		return Breakdown{}
	}

	b := Breakdown{
		BaseCourseFee:       entry.BaseCourseFee,
		DiscountPercentage:  entry.DiscountPercentage,
		ExtraDiscountAmount: opts.ExtraDiscountAmount,
		PaidAmount:          opts.PaidAmount,
	}

	b.DiscountedCourseFee = entry.BaseCourseFee - entry.BaseCourseFee*entry.DiscountPercentage/100

	// Opt-in alone never grants a fee: the catalog must also offer the
	// amenity. A course dropping hostel mid-session zeroes the fee even if
	// the option stayed checked.
	if opts.HostelOpted && entry.HostelAvailable {
		b.HostelFeeApplied = entry.HostelFee
	}
	if opts.MessOpted && entry.MessAvailable {
		b.MessFeeApplied = entry.MessFee
	}

	b.PreTaxTotal = b.DiscountedCourseFee + b.HostelFeeApplied + b.MessFeeApplied - opts.ExtraDiscountAmount

	if opts.IGSTApplicable {
		b.IGSTAmount = b.PreTaxTotal * rates.IGSTPercent / 100
	} else {
		b.SGSTAmount = b.PreTaxTotal * rates.SGSTPercent / 100
		b.CGSTAmount = b.PreTaxTotal * rates.CGSTPercent / 100
	}

	b.TotalPayableFee = b.PreTaxTotal + b.SGSTAmount + b.CGSTAmount + b.IGSTAmount
	b.DueAmount = b.TotalPayableFee - opts.PaidAmount

	return b
}

// Round2 rounds a currency amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a currency amount with two decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// Rounded returns a copy of the breakdown with every field rounded for
// display or persistence.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		BaseCourseFee:       Round2(b.BaseCourseFee),
		DiscountPercentage:  b.DiscountPercentage,
		DiscountedCourseFee: Round2(b.DiscountedCourseFee),
		HostelFeeApplied:    Round2(b.HostelFeeApplied),
		MessFeeApplied:      Round2(b.MessFeeApplied),
		ExtraDiscountAmount: Round2(b.ExtraDiscountAmount),
		PreTaxTotal:         Round2(b.PreTaxTotal),
		SGSTAmount:          Round2(b.SGSTAmount),
		CGSTAmount:          Round2(b.CGSTAmount),
		IGSTAmount:          Round2(b.IGSTAmount),
		TotalPayableFee:     Round2(b.TotalPayableFee),
		PaidAmount:          Round2(b.PaidAmount),
		DueAmount:           Round2(b.DueAmount),
	}
}
