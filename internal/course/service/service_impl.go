package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/abhijitabd5/sti-academy/internal/cache"
	"github.com/abhijitabd5/sti-academy/internal/course/domain"
	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Catalog cache.CatalogCache
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	catalog cache.CatalogCache
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("course.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	now := time.Now().UTC()
	course := domain.Course{
		ID:                 s.genID.Generate(),
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		DurationWeeks:      req.DurationWeeks,
		BaseCourseFee:      req.BaseCourseFee,
		DiscountPercentage: req.DiscountPercentage,
		HostelAvailable:    req.HostelAvailable,
		HostelFee:          req.HostelFee,
		MessAvailable:      req.MessAvailable,
		MessFee:            req.MessFee,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	course.Slug = slug.Make(course.Title)

	if err := course.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindBySlug(ctx, course.Slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrSlugTaken
	}

	if err := s.repo.Insert(ctx, &course); err != nil {
		return nil, err
	}

	s.catalog.Invalidate()
	s.log.Info("course created",
		zap.String("course_id", course.ID.String()),
		zap.String("slug", course.Slug),
	)

	resp := toResponse(course)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, domain.ListFilter{
		Active: req.Active,
		Query:  strings.TrimSpace(req.Query),
		SortBy: strings.TrimSpace(req.SortBy),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(course *domain.Course) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        course.ID.String(),
			CreatedAt: course.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	courses := make([]domain.Response, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		courses = append(courses, toResponse(*item))
	}

	resp := &domain.ListResponse{Courses: courses}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, idOrSlug string) (*domain.Response, error) {
	course, err := s.Resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	resp := toResponse(*course)
	return &resp, nil
}

// Resolve returns the full course record by id or slug, serving repeat
// lookups from the catalog cache. Quoting and enrollment go through this.
func (s *Service) Resolve(ctx context.Context, idOrSlug string) (*domain.Course, error) {
	key := strings.TrimSpace(idOrSlug)
	if key == "" {
		return nil, domain.ErrInvalidID
	}

	if cached, ok := s.catalog.GetCourse(key); ok {
		return cached, nil
	}

	var course *domain.Course
	var err error
	if id, parseErr := snowflake.ParseString(key); parseErr == nil {
		course, err = s.repo.FindByID(ctx, id)
	} else {
		course, err = s.repo.FindBySlug(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.ErrNotFound
	}

	s.catalog.SetCourse(key, course)
	return course, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.ErrNotFound
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
		course.Slug = slug.Make(course.Title)

		if existing, err := s.repo.FindBySlug(ctx, course.Slug); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != course.ID {
			return nil, domain.ErrSlugTaken
		}
	}
	if req.Description != nil {
		course.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationWeeks != nil {
		course.DurationWeeks = *req.DurationWeeks
	}
	if req.BaseCourseFee != nil {
		course.BaseCourseFee = *req.BaseCourseFee
	}
	if req.DiscountPercentage != nil {
		course.DiscountPercentage = *req.DiscountPercentage
	}
	if req.HostelAvailable != nil {
		course.HostelAvailable = *req.HostelAvailable
	}
	if req.HostelFee != nil {
		course.HostelFee = *req.HostelFee
	}
	if req.MessAvailable != nil {
		course.MessAvailable = *req.MessAvailable
	}
	if req.MessFee != nil {
		course.MessFee = *req.MessFee
	}
	course.UpdatedAt = time.Now().UTC()

	if err := course.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.catalog.Invalidate()

	resp := toResponse(*course)
	return &resp, nil
}

func (s *Service) Deactivate(ctx context.Context, rawID string) (*domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.ErrNotFound
	}

	course.Active = false
	course.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.catalog.Invalidate()

	resp := toResponse(*course)
	return &resp, nil
}

func toResponse(c domain.Course) domain.Response {
	return domain.Response{
		ID:                 c.ID.String(),
		Slug:               c.Slug,
		Title:              c.Title,
		Description:        c.Description,
		DurationWeeks:      c.DurationWeeks,
		BaseCourseFee:      c.BaseCourseFee,
		DiscountPercentage: c.DiscountPercentage,
		HostelAvailable:    c.HostelAvailable,
		HostelFee:          c.HostelFee,
		MessAvailable:      c.MessAvailable,
		MessFee:            c.MessFee,
		Active:             c.Active,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
