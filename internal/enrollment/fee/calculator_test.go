package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_NoCourseSelected(t *testing.T) {
	opts := Options{
		HostelOpted:         true,
		MessOpted:           true,
		ExtraDiscountAmount: 500,
		IGSTApplicable:      true,
		PaidAmount:          9000,
	}

	b := Compute(nil, opts, DefaultRates())

	assert.Equal(t, Breakdown{}, b)
}

func TestCompute_DiscountOrdering(t *testing.T) {
	entry := &CatalogEntry{BaseCourseFee: 1000, DiscountPercentage: 10}
	opts := Options{ExtraDiscountAmount: 50}

	b := Compute(entry, opts, DefaultRates())

	// Percentage discount on the base fee first, flat discount after.
	assert.InDelta(t, 900, b.DiscountedCourseFee, 1e-9)
	assert.InDelta(t, 850, b.PreTaxTotal, 1e-9)
}

func TestCompute_AvailabilityGatesOptIn(t *testing.T) {
	entry := &CatalogEntry{
		BaseCourseFee:   1000,
		HostelAvailable: false,
		HostelFee:       500,
		MessAvailable:   false,
		MessFee:         300,
	}
	opts := Options{HostelOpted: true, MessOpted: true}

	b := Compute(entry, opts, DefaultRates())

	assert.Zero(t, b.HostelFeeApplied)
	assert.Zero(t, b.MessFeeApplied)
	assert.InDelta(t, 1000, b.PreTaxTotal, 1e-9)
}

func TestCompute_TaxRegimeExclusivity(t *testing.T) {
	entry := &CatalogEntry{BaseCourseFee: 1000}
	rates := DefaultRates()

	intra := Compute(entry, Options{IGSTApplicable: false}, rates)
	assert.InDelta(t, 90, intra.SGSTAmount, 1e-9)
	assert.InDelta(t, 90, intra.CGSTAmount, 1e-9)
	assert.Zero(t, intra.IGSTAmount)

	inter := Compute(entry, Options{IGSTApplicable: true}, rates)
	assert.InDelta(t, 180, inter.IGSTAmount, 1e-9)
	assert.Zero(t, inter.SGSTAmount)
	assert.Zero(t, inter.CGSTAmount)

	// Same pre-tax base taxes identically in either regime.
	assert.InDelta(t, inter.IGSTAmount, intra.SGSTAmount+intra.CGSTAmount, 1e-9)
	assert.InDelta(t, inter.TotalPayableFee, intra.TotalPayableFee, 1e-9)
}

func TestCompute_DueAmountSign(t *testing.T) {
	entry := &CatalogEntry{BaseCourseFee: 1000}

	settled := Compute(entry, Options{PaidAmount: 1180}, DefaultRates())
	assert.InDelta(t, 0, settled.DueAmount, 1e-9)

	overpaid := Compute(entry, Options{PaidAmount: 1500}, DefaultRates())
	assert.Negative(t, overpaid.DueAmount)

	owing := Compute(entry, Options{PaidAmount: 200}, DefaultRates())
	assert.Positive(t, owing.DueAmount)
}

func TestCompute_EndToEnd(t *testing.T) {
	entry := &CatalogEntry{
		BaseCourseFee:      10000,
		DiscountPercentage: 20,
		HostelAvailable:    true,
		HostelFee:          2000,
		MessAvailable:      true,
		MessFee:            1000,
	}
	opts := Options{
		HostelOpted:         true,
		MessOpted:           true,
		ExtraDiscountAmount: 500,
		IGSTApplicable:      false,
		PaidAmount:          9000,
	}

	b := Compute(entry, opts, DefaultRates())

	assert.InDelta(t, 8000, b.DiscountedCourseFee, 1e-9)
	assert.InDelta(t, 10500, b.PreTaxTotal, 1e-9)
	assert.InDelta(t, 945, b.SGSTAmount, 1e-9)
	assert.InDelta(t, 945, b.CGSTAmount, 1e-9)
	assert.InDelta(t, 12390, b.TotalPayableFee, 1e-9)
	assert.InDelta(t, 3390, b.DueAmount, 1e-9)
}

func TestCompute_Idempotent(t *testing.T) {
	entry := &CatalogEntry{
		BaseCourseFee:      7999.99,
		DiscountPercentage: 12.5,
		HostelAvailable:    true,
		HostelFee:          1500.50,
	}
	opts := Options{HostelOpted: true, ExtraDiscountAmount: 250.25, PaidAmount: 1000}

	first := Compute(entry, opts, DefaultRates())
	second := Compute(entry, opts, DefaultRates())

	assert.Equal(t, first, second)
}

func TestCompute_PermissiveOnNegativeExtraDiscount(t *testing.T) {
	entry := &CatalogEntry{BaseCourseFee: 1000}

	// The controller rejects negatives; the calculator itself does the
	// arithmetic as given.
	b := Compute(entry, Options{ExtraDiscountAmount: -100}, DefaultRates())

	assert.InDelta(t, 1100, b.PreTaxTotal, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, Round2(10.567))
	assert.Equal(t, "945.00", FormatAmount(945))
	assert.Equal(t, "123.46", FormatAmount(123.456))
}
