package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/abhijitabd5/sti-academy/internal/clock"
	"github.com/abhijitabd5/sti-academy/internal/config"
	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/domain"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

// Echoed client totals may differ from the server recompute by float noise
// only; anything past a paisa means a stale catalog on the client.
const totalMismatchTolerance = 0.01

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Courses coursedomain.Service
	GST     *config.GSTConfigHolder
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	courses coursedomain.Service
	gst     *config.GSTConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("enrollment.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		courses: p.Courses,
		gst:     p.GST,
	}
}

func (s *Service) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.BreakdownView, error) {
	courseID := strings.TrimSpace(req.CourseID)
	if courseID == "" {
		// No course chosen yet is a defined state, not an error: every
		// monetary field is zero.
		view := domain.NewBreakdownView(fee.Compute(nil, fee.Options{}, s.gst.Rates()))
		return &view, nil
	}

	course, err := s.courses.Resolve(ctx, courseID)
	if err != nil {
		return nil, err
	}

	entry := course.CatalogEntry()
	breakdown := fee.Compute(&entry, fee.Options{
		HostelOpted:         req.HostelOpted,
		MessOpted:           req.MessOpted,
		ExtraDiscountAmount: req.ExtraDiscountAmount,
		IGSTApplicable:      req.IGSTApplicable,
		PaidAmount:          req.PaidAmount,
	}, s.gst.Rates())

	view := domain.NewBreakdownView(breakdown)
	return &view, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	courseID := strings.TrimSpace(req.CourseID)
	if courseID == "" {
		return nil, domain.ErrCourseRequired
	}
	name := strings.TrimSpace(req.StudentName)
	if name == "" {
		return nil, domain.ErrInvalidStudentName
	}
	phone := strings.TrimSpace(req.StudentPhone)
	if phone == "" {
		return nil, domain.ErrInvalidStudentPhone
	}
	if req.PaidAmount < 0 {
		return nil, domain.ErrInvalidPaidAmount
	}
	if req.ExtraDiscountAmount < 0 {
		return nil, domain.ErrInvalidExtraDiscount
	}

	course, err := s.courses.Resolve(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Active {
		return nil, domain.ErrCourseInactive
	}

	entry := course.CatalogEntry()
	breakdown := fee.Compute(&entry, fee.Options{
		HostelOpted:         req.HostelOpted,
		MessOpted:           req.MessOpted,
		ExtraDiscountAmount: req.ExtraDiscountAmount,
		IGSTApplicable:      req.IGSTApplicable,
		PaidAmount:          req.PaidAmount,
	}, s.gst.Rates())

	if req.EchoedTotalPayable != nil {
		if math.Abs(fee.Round2(breakdown.TotalPayableFee)-*req.EchoedTotalPayable) > totalMismatchTolerance {
			s.log.Warn("client total does not match recompute",
				zap.String("course_id", course.ID.String()),
				zap.Float64("client_total", *req.EchoedTotalPayable),
				zap.Float64("server_total", breakdown.TotalPayableFee),
			)
			return nil, domain.ErrTotalMismatch
		}
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	now := s.clock.Now()
	enrollment := domain.Enrollment{
		ID:             s.genID.Generate(),
		CourseID:       course.ID,
		StudentName:    name,
		StudentPhone:   phone,
		StudentEmail:   strings.TrimSpace(req.StudentEmail),
		HostelOpted:    req.HostelOpted && course.HostelAvailable,
		MessOpted:      req.MessOpted && course.MessAvailable,
		IGSTApplicable: req.IGSTApplicable,
		Metadata:       metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	enrollment.ApplyBreakdown(breakdown)

	if err := s.repo.Insert(ctx, &enrollment); err != nil {
		return nil, err
	}

	s.log.Info("enrollment created",
		zap.String("enrollment_id", enrollment.ID.String()),
		zap.String("course_id", course.ID.String()),
		zap.Float64("total_payable", enrollment.TotalPayableFee),
		zap.Float64("due", enrollment.DueAmount),
	)

	resp := s.toResponse(ctx, enrollment)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	filter := domain.ListFilter{Query: strings.TrimSpace(req.Query)}
	if raw := strings.TrimSpace(req.CourseID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.CourseID = id
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(e *domain.Enrollment) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        e.ID.String(),
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	enrollments := make([]domain.Response, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		enrollments = append(enrollments, s.toResponse(ctx, *item))
	}

	resp := &domain.ListResponse{Enrollments: enrollments}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(ctx, *enrollment)
	return &resp, nil
}

func (s *Service) toResponse(ctx context.Context, e domain.Enrollment) domain.Response {
	resp := domain.Response{
		ID:             e.ID.String(),
		CourseID:       e.CourseID.String(),
		StudentName:    e.StudentName,
		StudentPhone:   e.StudentPhone,
		StudentEmail:   e.StudentEmail,
		HostelOpted:    e.HostelOpted,
		MessOpted:      e.MessOpted,
		IGSTApplicable: e.IGSTApplicable,
		Breakdown: domain.BreakdownView{
			BaseCourseFee:       e.BaseCourseFee,
			DiscountPercentage:  e.DiscountPercentage,
			DiscountedCourseFee: e.DiscountedCourseFee,
			HostelFeeApplied:    e.HostelFeeApplied,
			MessFeeApplied:      e.MessFeeApplied,
			ExtraDiscountAmount: e.ExtraDiscountAmount,
			PreTaxTotal:         e.PreTaxTotal,
			SGSTAmount:          e.SGSTAmount,
			CGSTAmount:          e.CGSTAmount,
			IGSTAmount:          e.IGSTAmount,
			TotalPayableFee:     e.TotalPayableFee,
			PaidAmount:          e.PaidAmount,
			DueAmount:           e.DueAmount,
		},
		CreatedAt: e.CreatedAt,
	}

	// Title lookup rides the catalog cache, so repeats are cheap.
	if course, err := s.courses.Resolve(ctx, e.CourseID.String()); err == nil {
		resp.CourseTitle = course.Title
	}

	return resp
}
