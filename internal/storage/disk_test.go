package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	_, fh, err := req.FormFile("file")
	require.NoError(t, err)
	return fh
}

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, 1024)

	meta, err := store.Save(fileHeader(t, "Diagram.PNG", []byte("png-bytes")), 7)
	require.NoError(t, err)

	assert.Equal(t, "Diagram.PNG", meta.OriginalName)
	assert.True(t, strings.HasSuffix(meta.StoredName, ".png"))
	assert.NotEqual(t, "Diagram.PNG", meta.StoredName)
	assert.Equal(t, int64(9), meta.Size)
	assert.Equal(t, uint64(7), meta.UploaderID)
	assert.NotEmpty(t, meta.MimeType)
	assert.False(t, meta.UploadDate.IsZero())

	stored, err := os.ReadFile(filepath.Join(dir, meta.StoredName))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))
}

func TestDiskStore_UniqueNames(t *testing.T) {
	store := NewDiskStore(t.TempDir(), 1024)

	a, err := store.Save(fileHeader(t, "a.pdf", []byte("1")), 1)
	require.NoError(t, err)
	b, err := store.Save(fileHeader(t, "a.pdf", []byte("2")), 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.StoredName, b.StoredName)
}

func TestDiskStore_Rejections(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, 4)

	_, err := store.Save(nil, 1)
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = store.Save(fileHeader(t, "big.zip", []byte("way too large")), 1)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = store.Save(fileHeader(t, "run.exe", []byte("x")), 1)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
