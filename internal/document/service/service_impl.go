package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/abhijitabd5/sti-academy/internal/config"
	"github.com/abhijitabd5/sti-academy/internal/document/domain"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
	GenID  *snowflake.Node
	Repo   domain.Repository
}

type documentService struct {
	log   *zap.Logger
	dir   string
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &documentService{
		log:   p.Log.Named("document"),
		dir:   p.Config.DocumentDir,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *documentService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.Response, error) {
	enrollmentID, err := snowflake.ParseString(req.EnrollmentID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	docType := strings.TrimSpace(req.Type)
	if !domain.ValidType(docType) {
		return nil, domain.ErrInvalidType
	}
	if req.Content == nil {
		return nil, domain.ErrEmptyFile
	}

	existing, err := s.repo.FindByEnrollmentAndType(ctx, enrollmentID, docType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateType
	}

	key := ulid.Make().String() + strings.ToLower(filepath.Ext(req.Filename))
	size, err := s.writeFile(key, req.Content)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		_ = os.Remove(filepath.Join(s.dir, key))
		return nil, domain.ErrEmptyFile
	}

	doc := &domain.Document{
		ID:           s.genID.Generate(),
		EnrollmentID: enrollmentID,
		Type:         docType,
		Filename:     filepath.Base(req.Filename),
		StorageKey:   key,
		SizeBytes:    size,
	}
	if err := s.repo.Insert(ctx, doc); err != nil {
		_ = os.Remove(filepath.Join(s.dir, key))
		return nil, err
	}

	s.log.Info("document stored",
		zap.String("enrollment_id", enrollmentID.String()),
		zap.String("type", docType),
		zap.Int64("size_bytes", size),
	)
	return toResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, enrollmentID string) ([]domain.Response, error) {
	id, err := snowflake.ParseString(enrollmentID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	docs, err := s.repo.ListByEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Response, 0, len(docs))
	for i := range docs {
		out = append(out, *toResponse(&docs[i]))
	}
	return out, nil
}

func (s *documentService) Open(ctx context.Context, id string) (io.ReadCloser, *domain.Response, error) {
	docID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, nil, domain.ErrInvalidID
	}
	doc, err := s.repo.FindByID(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, doc.StorageKey))
	if err != nil {
		return nil, nil, fmt.Errorf("open document body: %w", err)
	}
	return f, toResponse(doc), nil
}

func (s *documentService) writeFile(key string, content io.Reader) (int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create document dir: %w", err)
	}
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return 0, fmt.Errorf("create document file: %w", err)
	}
	size, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, key))
		return 0, fmt.Errorf("write document file: %w", err)
	}
	return size, nil
}

func toResponse(doc *domain.Document) *domain.Response {
	return &domain.Response{
		ID:           doc.ID.String(),
		EnrollmentID: doc.EnrollmentID.String(),
		Type:         doc.Type,
		Filename:     doc.Filename,
		SizeBytes:    doc.SizeBytes,
		CreatedAt:    doc.CreatedAt,
	}
}
