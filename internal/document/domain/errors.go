package domain

import "errors"

var (
	ErrNotFound      = errors.New("document_not_found")
	ErrInvalidID     = errors.New("invalid_document_id")
	ErrInvalidType   = errors.New("invalid_document_type")
	ErrDuplicateType = errors.New("duplicate_document_type")
	ErrEmptyFile     = errors.New("empty_document_file")
)
