package domain

import (
	"context"
	"io"
	"time"
)

type Service interface {
	// Upload stores the file body and records the document row. At most one
	// document per (enrollment, type) is allowed.
	Upload(ctx context.Context, req UploadRequest) (*Response, error)
	List(ctx context.Context, enrollmentID string) ([]Response, error)
	// Open returns a reader over the stored file body. Callers close it.
	Open(ctx context.Context, id string) (io.ReadCloser, *Response, error)
}

type UploadRequest struct {
	EnrollmentID string
	Type         string
	Filename     string
	Content      io.Reader
}

type Response struct {
	ID           string    `json:"id"`
	EnrollmentID string    `json:"enrollment_id"`
	Type         string    `json:"type"`
	Filename     string    `json:"filename"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
