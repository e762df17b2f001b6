package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

func (s *Server) CreateCourse(c *gin.Context) {
	var req coursedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	resp, err := s.courseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCourses(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Active string `form:"active"`
		Query  string `form:"q"`
		SortBy string `form:"sort_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.courseSvc.List(c.Request.Context(), coursedomain.ListRequest{
		Active:    active,
		Query:     strings.TrimSpace(query.Query),
		SortBy:    strings.TrimSpace(query.SortBy),
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCourseByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.courseSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCourse(c *gin.Context) {
	var req coursedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.courseSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateCourse(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.courseSvc.Deactivate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCourseValidationError(err error) bool {
	switch err {
	case coursedomain.ErrInvalidID,
		coursedomain.ErrInvalidTitle,
		coursedomain.ErrInvalidDuration,
		coursedomain.ErrInvalidBaseFee,
		coursedomain.ErrInvalidDiscount,
		coursedomain.ErrInvalidHostelFee,
		coursedomain.ErrInvalidMessFee:
		return true
	default:
		return false
	}
}
