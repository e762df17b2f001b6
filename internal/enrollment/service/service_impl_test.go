package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abhijitabd5/sti-academy/internal/cache"
	"github.com/abhijitabd5/sti-academy/internal/clock"
	"github.com/abhijitabd5/sti-academy/internal/config"
	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
	courserepo "github.com/abhijitabd5/sti-academy/internal/course/repository"
	courseservice "github.com/abhijitabd5/sti-academy/internal/course/service"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/domain"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/repository"
)

type fixture struct {
	enrollments domain.Service
	courses     coursedomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&coursedomain.Course{}, &domain.Enrollment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	gst, err := config.NewGSTConfigHolder(zap.NewNop())
	require.NoError(t, err)

	courses := courseservice.New(courseservice.Params{
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    courserepo.NewRepository(db),
		Catalog: cache.NewCatalogCache(),
	})

	enrollments := New(Params{
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   clock.NewFakeClock(time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)),
		Repo:    repository.NewRepository(db),
		Courses: courses,
		GST:     gst,
	})

	return &fixture{enrollments: enrollments, courses: courses}
}

func (f *fixture) createCourse(t *testing.T) *coursedomain.Response {
	t.Helper()
	resp, err := f.courses.Create(context.Background(), coursedomain.CreateRequest{
		Title:              "Welding Fundamentals",
		DurationWeeks:      12,
		BaseCourseFee:      10000,
		DiscountPercentage: 20,
		HostelAvailable:    true,
		HostelFee:          2000,
		MessAvailable:      true,
		MessFee:            1000,
	})
	require.NoError(t, err)
	return resp
}

func TestQuoteWithoutCourse(t *testing.T) {
	f := newFixture(t)

	view, err := f.enrollments.Quote(context.Background(), domain.QuoteRequest{})
	require.NoError(t, err)
	assert.Zero(t, view.TotalPayableFee)
	assert.Zero(t, view.DueAmount)
}

func TestQuoteComputesBreakdown(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t)

	view, err := f.enrollments.Quote(context.Background(), domain.QuoteRequest{
		CourseID:            course.ID,
		HostelOpted:         true,
		MessOpted:           true,
		ExtraDiscountAmount: 500,
		PaidAmount:          9000,
	})
	require.NoError(t, err)

	assert.Equal(t, 8000.0, view.DiscountedCourseFee)
	assert.Equal(t, 10500.0, view.PreTaxTotal)
	assert.Equal(t, 945.0, view.SGSTAmount)
	assert.Equal(t, 945.0, view.CGSTAmount)
	assert.Zero(t, view.IGSTAmount)
	assert.Equal(t, 12390.0, view.TotalPayableFee)
	assert.Equal(t, 3390.0, view.DueAmount)
}

func TestCreateEnrollment(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t)
	ctx := context.Background()

	resp, err := f.enrollments.Create(ctx, domain.CreateRequest{
		CourseID:     course.ID,
		StudentName:  "Asha Patil",
		StudentPhone: "9876543210",
		HostelOpted:  true,
		PaidAmount:   5000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Welding Fundamentals", resp.CourseTitle)
	assert.True(t, resp.HostelOpted)
	assert.Equal(t, 11800.0, resp.Breakdown.TotalPayableFee)
	assert.Equal(t, 6800.0, resp.Breakdown.DueAmount)

	fetched, err := f.enrollments.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Breakdown, fetched.Breakdown)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{
			name: "missing course",
			req:  domain.CreateRequest{StudentName: "Asha", StudentPhone: "9876543210"},
			want: domain.ErrCourseRequired,
		},
		{
			name: "missing name",
			req:  domain.CreateRequest{CourseID: course.ID, StudentPhone: "9876543210"},
			want: domain.ErrInvalidStudentName,
		},
		{
			name: "missing phone",
			req:  domain.CreateRequest{CourseID: course.ID, StudentName: "Asha"},
			want: domain.ErrInvalidStudentPhone,
		},
		{
			name: "negative paid",
			req: domain.CreateRequest{
				CourseID: course.ID, StudentName: "Asha", StudentPhone: "9876543210", PaidAmount: -1,
			},
			want: domain.ErrInvalidPaidAmount,
		},
		{
			name: "negative discount",
			req: domain.CreateRequest{
				CourseID: course.ID, StudentName: "Asha", StudentPhone: "9876543210", ExtraDiscountAmount: -1,
			},
			want: domain.ErrInvalidExtraDiscount,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.enrollments.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateRejectsInactiveCourse(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t)
	ctx := context.Background()

	_, err := f.courses.Deactivate(ctx, course.ID)
	require.NoError(t, err)

	_, err = f.enrollments.Create(ctx, domain.CreateRequest{
		CourseID:     course.ID,
		StudentName:  "Asha",
		StudentPhone: "9876543210",
	})
	assert.ErrorIs(t, err, domain.ErrCourseInactive)
}

func TestCreateChecksEchoedTotal(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t)
	ctx := context.Background()

	// Course fee 10000 at 20% discount taxed at 18% is 9440.
	stale := 9000.0
	_, err := f.enrollments.Create(ctx, domain.CreateRequest{
		CourseID:           course.ID,
		StudentName:        "Asha",
		StudentPhone:       "9876543210",
		EchoedTotalPayable: &stale,
	})
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)

	matching := 9440.0
	resp, err := f.enrollments.Create(ctx, domain.CreateRequest{
		CourseID:           course.ID,
		StudentName:        "Asha",
		StudentPhone:       "9876543210",
		EchoedTotalPayable: &matching,
	})
	require.NoError(t, err)
	assert.Equal(t, 9440.0, resp.Breakdown.TotalPayableFee)
}

func TestCreateClearsUnavailableOptIns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	course, err := f.courses.Create(ctx, coursedomain.CreateRequest{
		Title:         "Day Course",
		DurationWeeks: 4,
		BaseCourseFee: 5000,
	})
	require.NoError(t, err)

	resp, err := f.enrollments.Create(ctx, domain.CreateRequest{
		CourseID:     course.ID,
		StudentName:  "Asha",
		StudentPhone: "9876543210",
		HostelOpted:  true,
		MessOpted:    true,
	})
	require.NoError(t, err)

	assert.False(t, resp.HostelOpted)
	assert.False(t, resp.MessOpted)
	assert.Zero(t, resp.Breakdown.HostelFeeApplied)
	assert.Zero(t, resp.Breakdown.MessFeeApplied)
	assert.Equal(t, 5900.0, resp.Breakdown.TotalPayableFee)
}

func TestListFiltersByCourse(t *testing.T) {
	f := newFixture(t)
	course := f.createCourse(t)
	ctx := context.Background()

	other, err := f.courses.Create(ctx, coursedomain.CreateRequest{
		Title:         "Other Course",
		DurationWeeks: 4,
		BaseCourseFee: 5000,
	})
	require.NoError(t, err)

	for _, c := range []string{course.ID, course.ID, other.ID} {
		_, err := f.enrollments.Create(ctx, domain.CreateRequest{
			CourseID:     c,
			StudentName:  "Asha",
			StudentPhone: "9876543210",
		})
		require.NoError(t, err)
	}

	page, err := f.enrollments.List(ctx, domain.ListRequest{CourseID: course.ID})
	require.NoError(t, err)
	assert.Len(t, page.Enrollments, 2)

	all, err := f.enrollments.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Enrollments, 3)

	_, err = f.enrollments.List(ctx, domain.ListRequest{CourseID: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestGetUnknownEnrollment(t *testing.T) {
	f := newFixture(t)

	_, err := f.enrollments.Get(context.Background(), "123456789")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.enrollments.Get(context.Background(), "nonsense")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
