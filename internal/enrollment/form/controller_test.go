package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
)

func defaultRates() fee.Rates { return fee.DefaultRates() }

func residentialCourse() *fee.CatalogEntry {
	return &fee.CatalogEntry{
		BaseCourseFee:      10000,
		DiscountPercentage: 20,
		HostelAvailable:    true,
		HostelFee:          2000,
		MessAvailable:      true,
		MessFee:            1000,
	}
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, opts fee.Options, breakdown fee.Breakdown) (string, error) {
	args := m.Called(ctx, opts, breakdown)
	return args.String(0), args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, enrollmentID string, doc DocumentInput) error {
	args := m.Called(ctx, enrollmentID, doc)
	return args.Error(0)
}

func TestController_RecomputesOnEveryChange(t *testing.T) {
	c := NewController(defaultRates)
	assert.Equal(t, fee.Breakdown{}, c.Breakdown())

	c.SelectCourse(residentialCourse())
	assert.InDelta(t, 8000, c.Breakdown().DiscountedCourseFee, 1e-9)

	assert.NoError(t, c.UpdateOption(FieldHostelOpted, true))
	assert.NoError(t, c.UpdateOption(FieldMessOpted, true))
	assert.NoError(t, c.UpdateOption(FieldExtraDiscount, 500.0))
	assert.InDelta(t, 10500, c.Breakdown().PreTaxTotal, 1e-9)

	assert.NoError(t, c.UpdateOption(FieldPaidAmount, 9000.0))
	assert.InDelta(t, 3390, c.Breakdown().DueAmount, 1e-9)
}

func TestController_SwitchingRegimeRecomputes(t *testing.T) {
	c := NewController(defaultRates)
	c.SelectCourse(&fee.CatalogEntry{BaseCourseFee: 1000})

	assert.InDelta(t, 90, c.Breakdown().SGSTAmount, 1e-9)

	assert.NoError(t, c.UpdateOption(FieldIGSTApplicable, true))
	assert.Zero(t, c.Breakdown().SGSTAmount)
	assert.InDelta(t, 180, c.Breakdown().IGSTAmount, 1e-9)
}

func TestController_SelectCourseClearsStaleOptIns(t *testing.T) {
	c := NewController(defaultRates)
	c.SelectCourse(residentialCourse())
	assert.NoError(t, c.UpdateOption(FieldHostelOpted, true))
	assert.NoError(t, c.UpdateOption(FieldMessOpted, true))

	// The replacement course offers neither amenity; the opt-ins must not
	// survive the switch.
	c.SelectCourse(&fee.CatalogEntry{BaseCourseFee: 5000})

	assert.False(t, c.Options().HostelOpted)
	assert.False(t, c.Options().MessOpted)
	assert.Zero(t, c.Breakdown().HostelFeeApplied)
	assert.Zero(t, c.Breakdown().MessFeeApplied)
}

func TestController_UpdateOptionRejectsUnknownFieldAndBadTypes(t *testing.T) {
	c := NewController(defaultRates)

	err := c.UpdateOption(Field("student_name"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	err = c.UpdateOption(FieldHostelOpted, "yes")
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = c.UpdateOption(FieldPaidAmount, true)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestController_Validate(t *testing.T) {
	c := NewController(defaultRates)

	res := c.Validate()
	assert.False(t, res.OK())
	assert.Contains(t, res.Errors, "course")

	c.SelectCourse(residentialCourse())
	assert.NoError(t, c.UpdateOption(FieldExtraDiscount, -10.0))
	res = c.Validate()
	assert.Contains(t, res.Errors, string(FieldExtraDiscount))

	assert.NoError(t, c.UpdateOption(FieldExtraDiscount, 0.0))
	assert.NoError(t, c.UpdateOption(FieldPaidAmount, 99999.0))
	res = c.Validate()
	assert.True(t, res.OK())
	assert.Contains(t, res.Warnings, string(FieldPaidAmount))
}

func TestController_SubmitBlocksOnValidation(t *testing.T) {
	c := NewController(defaultRates)

	result, err := c.Submit(context.Background(), &mockSubmitter{}, nil, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestController_SubmitRejectsDuplicateDocumentTypes(t *testing.T) {
	c := NewController(defaultRates)
	c.SelectCourse(residentialCourse())

	docs := []DocumentInput{
		{Type: "aadhaar", Filename: "a.pdf", Content: strings.NewReader("a")},
		{Type: "aadhaar", Filename: "b.pdf", Content: strings.NewReader("b")},
	}

	result, err := c.Submit(context.Background(), &mockSubmitter{}, &mockUploader{}, docs)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestController_SubmitPropagatesSubmissionError(t *testing.T) {
	c := NewController(defaultRates)
	c.SelectCourse(residentialCourse())
	assert.NoError(t, c.UpdateOption(FieldPaidAmount, 1000.0))

	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("upstream unavailable"))

	result, err := c.Submit(context.Background(), submitter, nil, nil)

	assert.Nil(t, result)
	assert.Error(t, err)
	// Form state survives a failed submission for resubmit.
	assert.InDelta(t, 1000, c.Options().PaidAmount, 1e-9)
	submitter.AssertExpectations(t)
}

func TestController_SubmitUploadFailureIsWarning(t *testing.T) {
	c := NewController(defaultRates)
	c.SelectCourse(residentialCourse())

	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return("1234", nil)

	uploader := &mockUploader{}
	uploader.On("Upload", mock.Anything, "1234", mock.MatchedBy(func(d DocumentInput) bool {
		return d.Type == "photo"
	})).Return(nil)
	uploader.On("Upload", mock.Anything, "1234", mock.MatchedBy(func(d DocumentInput) bool {
		return d.Type == "aadhaar"
	})).Return(errors.New("storage full"))

	docs := []DocumentInput{
		{Type: "photo", Filename: "p.jpg", Content: strings.NewReader("p")},
		{Type: "aadhaar", Filename: "a.pdf", Content: strings.NewReader("a")},
	}

	result, err := c.Submit(context.Background(), submitter, uploader, docs)

	assert.NoError(t, err)
	assert.Equal(t, "1234", result.EnrollmentID)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "aadhaar")
	submitter.AssertExpectations(t)
	uploader.AssertExpectations(t)
}
