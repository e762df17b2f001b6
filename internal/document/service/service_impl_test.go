package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abhijitabd5/sti-academy/internal/config"
	"github.com/abhijitabd5/sti-academy/internal/document/domain"
	"github.com/abhijitabd5/sti-academy/internal/document/repository"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Document{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:    zap.NewNop(),
		Config: config.Config{DocumentDir: t.TempDir()},
		GenID:  node,
		Repo:   repository.NewRepository(db),
	})
}

func TestUploadAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	enrollmentID := "1234567890"

	doc, err := svc.Upload(ctx, domain.UploadRequest{
		EnrollmentID: enrollmentID,
		Type:         domain.TypeIDProof,
		Filename:     "aadhaar.PDF",
		Content:      strings.NewReader("binary-ish body"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeIDProof, doc.Type)
	assert.Equal(t, "aadhaar.PDF", doc.Filename)
	assert.Equal(t, int64(len("binary-ish body")), doc.SizeBytes)

	docs, err := svc.List(ctx, enrollmentID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
}

func TestUploadRejectsDuplicateType(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, domain.UploadRequest{
		EnrollmentID: "77",
		Type:         domain.TypePhoto,
		Filename:     "photo.jpg",
		Content:      strings.NewReader("x"),
	})
	require.NoError(t, err)

	_, err = svc.Upload(ctx, domain.UploadRequest{
		EnrollmentID: "77",
		Type:         domain.TypePhoto,
		Filename:     "photo2.jpg",
		Content:      strings.NewReader("y"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateType)

	// A different enrollment may still use the same type.
	_, err = svc.Upload(ctx, domain.UploadRequest{
		EnrollmentID: "78",
		Type:         domain.TypePhoto,
		Filename:     "photo.jpg",
		Content:      strings.NewReader("z"),
	})
	assert.NoError(t, err)
}

func TestUploadRejectsUnknownTypeAndEmptyBody(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, domain.UploadRequest{
		EnrollmentID: "5",
		Type:         "passport_scan",
		Filename:     "p.pdf",
		Content:      strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = svc.Upload(ctx, domain.UploadRequest{
		EnrollmentID: "5",
		Type:         domain.TypeOther,
		Filename:     "empty.txt",
		Content:      strings.NewReader(""),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestOpenReturnsStoredBody(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, domain.UploadRequest{
		EnrollmentID: "9",
		Type:         domain.TypeAddressProof,
		Filename:     "bill.pdf",
		Content:      strings.NewReader("electricity bill"),
	})
	require.NoError(t, err)

	rc, meta, err := svc.Open(ctx, doc.ID)
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "electricity bill", string(body))
	assert.Equal(t, doc.ID, meta.ID)

	_, _, err = svc.Open(ctx, "424242")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
