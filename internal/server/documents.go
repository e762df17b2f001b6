package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	documentdomain "github.com/abhijitabd5/sti-academy/internal/document/domain"
)

func (s *Server) UploadEnrollmentDocument(c *gin.Context) {
	enrollmentID := strings.TrimSpace(c.Param("id"))

	fh, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "invalid_file", "file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	defer f.Close()

	resp, err := s.documentSvc.Upload(c.Request.Context(), documentdomain.UploadRequest{
		EnrollmentID: enrollmentID,
		Type:         c.PostForm("type"),
		Filename:     fh.Filename,
		Content:      f,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEnrollmentDocuments(c *gin.Context) {
	enrollmentID := strings.TrimSpace(c.Param("id"))
	resp, err := s.documentSvc.List(c.Request.Context(), enrollmentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	body, meta, err := s.documentSvc.Open(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+meta.Filename+`"`)
	c.DataFromReader(http.StatusOK, meta.SizeBytes, "application/octet-stream", body, nil)
}

func isDocumentValidationError(err error) bool {
	switch err {
	case documentdomain.ErrInvalidID,
		documentdomain.ErrInvalidType,
		documentdomain.ErrEmptyFile:
		return true
	default:
		return false
	}
}
