package server

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// newMultipartWriter fills buf with a multipart body and returns its
// content type. File parts are keyed by document type.
func newMultipartWriter(t *testing.T, buf *bytes.Buffer, fields map[string]string, files map[string]string) string {
	t.Helper()

	w := multipart.NewWriter(buf)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	for docType, filename := range files {
		part, err := w.CreateFormFile(docType, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("file body"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return w.FormDataContentType()
}
