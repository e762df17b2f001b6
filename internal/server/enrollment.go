package server

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	documentdomain "github.com/abhijitabd5/sti-academy/internal/document/domain"
	enrollmentdomain "github.com/abhijitabd5/sti-academy/internal/enrollment/domain"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/fee"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/form"
	"github.com/abhijitabd5/sti-academy/pkg/db/pagination"
)

func (s *Server) QuoteEnrollment(c *gin.Context) {
	var req enrollmentdomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.enrollmentSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createEnrollmentRequest struct {
	enrollmentdomain.CreateRequest

	documents []form.DocumentInput
}

// CreateEnrollment drives the enrollment form server-side: course selection,
// option updates, validation, then submission with best-effort document
// uploads. Documents only arrive on multipart requests, keyed by type.
func (s *Server) CreateEnrollment(c *gin.Context) {
	req, cleanup, err := s.bindCreateEnrollment(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer cleanup()

	phone := strings.TrimSpace(req.StudentPhone)
	if token, ok, lockErr := s.quoteLimiter.TryLockSubmit(c.Request.Context(), phone); lockErr == nil {
		if !ok {
			AbortWithError(c, ErrConflict)
			return
		}
		defer func() { _ = s.quoteLimiter.ReleaseSubmit(c.Request.Context(), phone, token) }()
	}

	ctrl := form.NewController(s.gst.Rates)

	if courseID := strings.TrimSpace(req.CourseID); courseID != "" {
		course, err := s.courseSvc.Resolve(c.Request.Context(), courseID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if course != nil {
			entry := course.CatalogEntry()
			ctrl.SelectCourse(&entry)
		}
	}

	updates := []struct {
		field form.Field
		value any
	}{
		{form.FieldHostelOpted, req.HostelOpted},
		{form.FieldMessOpted, req.MessOpted},
		{form.FieldIGSTApplicable, req.IGSTApplicable},
		{form.FieldExtraDiscount, req.ExtraDiscountAmount},
		{form.FieldPaidAmount, req.PaidAmount},
	}
	for _, u := range updates {
		if err := ctrl.UpdateOption(u.field, u.value); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	if res := ctrl.Validate(); !res.OK() {
		vErr := &ValidationErrors{}
		for field, msg := range res.Errors {
			vErr.Errors = append(vErr.Errors, ValidationError{
				Field:   field,
				Code:    "invalid_" + field,
				Message: msg,
			})
		}
		AbortWithError(c, vErr)
		return
	}

	submitter := &enrollmentSubmitter{svc: s.enrollmentSvc, req: req.CreateRequest}
	result, err := ctrl.Submit(c.Request.Context(), submitter, &documentUploader{svc: s.documentSvc}, req.documents)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     submitter.resp,
		"warnings": result.Warnings,
	})
}

func (s *Server) ListEnrollments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CourseID string `form:"course_id"`
		Query    string `form:"q"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.enrollmentSvc.List(c.Request.Context(), enrollmentdomain.ListRequest{
		CourseID:  strings.TrimSpace(query.CourseID),
		Query:     strings.TrimSpace(query.Query),
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEnrollmentByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.enrollmentSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	docs, err := s.documentSvc.List(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp, "documents": docs})
}

// bindCreateEnrollment accepts JSON, or multipart/form-data when documents
// ride along with the form fields. Document readers stay open until the
// returned cleanup runs; parts spilled to a temp file would otherwise be
// closed before the uploads read them.
func (s *Server) bindCreateEnrollment(c *gin.Context) (*createEnrollmentRequest, func(), error) {
	noop := func() {}

	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/") {
		var req createEnrollmentRequest
		if err := c.ShouldBindJSON(&req.CreateRequest); err != nil {
			return nil, noop, invalidRequestError()
		}
		return &req, noop, nil
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		return nil, noop, invalidRequestError()
	}

	req := &createEnrollmentRequest{}
	req.CourseID = c.PostForm("course_id")
	req.StudentName = c.PostForm("student_name")
	req.StudentPhone = c.PostForm("student_phone")
	req.StudentEmail = c.PostForm("student_email")

	fields := []struct {
		name   string
		target *bool
	}{
		{"hostel_opted", &req.HostelOpted},
		{"mess_opted", &req.MessOpted},
		{"igst_applicable", &req.IGSTApplicable},
	}
	for _, f := range fields {
		parsed, err := parseOptionalBool(c.PostForm(f.name))
		if err != nil {
			return nil, noop, newValidationError(f.name, "invalid_"+f.name, "invalid "+f.name)
		}
		if parsed != nil {
			*f.target = *parsed
		}
	}

	amounts := []struct {
		name   string
		target *float64
	}{
		{"extra_discount_amount", &req.ExtraDiscountAmount},
		{"paid_amount", &req.PaidAmount},
	}
	for _, f := range amounts {
		parsed, err := parseOptionalFloat(c.PostForm(f.name))
		if err != nil {
			return nil, noop, newValidationError(f.name, "invalid_"+f.name, "invalid "+f.name)
		}
		if parsed != nil {
			*f.target = *parsed
		}
	}

	echoed, err := parseOptionalFloat(c.PostForm("total_payable_fee"))
	if err != nil {
		return nil, noop, newValidationError("total_payable_fee", "invalid_total_payable_fee", "invalid total_payable_fee")
	}
	req.EchoedTotalPayable = echoed

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for docType, files := range mpForm.File {
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				closeAll()
				return nil, noop, invalidRequestError()
			}
			opened = append(opened, f)
			req.documents = append(req.documents, form.DocumentInput{
				Type:     docType,
				Filename: fh.Filename,
				Content:  f,
			})
		}
	}

	return req, closeAll, nil
}

// enrollmentSubmitter adapts the enrollment service to the form contract.
// The service recomputes the breakdown itself; the form options are the
// source of truth it needs.
type enrollmentSubmitter struct {
	svc  enrollmentdomain.Service
	req  enrollmentdomain.CreateRequest
	resp *enrollmentdomain.Response
}

func (a *enrollmentSubmitter) Submit(ctx context.Context, opts fee.Options, _ fee.Breakdown) (string, error) {
	req := a.req
	req.HostelOpted = opts.HostelOpted
	req.MessOpted = opts.MessOpted
	req.IGSTApplicable = opts.IGSTApplicable
	req.ExtraDiscountAmount = opts.ExtraDiscountAmount
	req.PaidAmount = opts.PaidAmount

	resp, err := a.svc.Create(ctx, req)
	if err != nil {
		return "", err
	}
	a.resp = resp
	return resp.ID, nil
}

type documentUploader struct {
	svc documentdomain.Service
}

func (u *documentUploader) Upload(ctx context.Context, enrollmentID string, doc form.DocumentInput) error {
	_, err := u.svc.Upload(ctx, documentdomain.UploadRequest{
		EnrollmentID: enrollmentID,
		Type:         doc.Type,
		Filename:     doc.Filename,
		Content:      doc.Content,
	})
	return err
}

func isEnrollmentValidationError(err error) bool {
	switch err {
	case enrollmentdomain.ErrInvalidID,
		enrollmentdomain.ErrCourseRequired,
		enrollmentdomain.ErrCourseInactive,
		enrollmentdomain.ErrInvalidStudentName,
		enrollmentdomain.ErrInvalidStudentPhone,
		enrollmentdomain.ErrInvalidPaidAmount,
		enrollmentdomain.ErrInvalidExtraDiscount,
		enrollmentdomain.ErrTotalMismatch:
		return true
	default:
		return false
	}
}
