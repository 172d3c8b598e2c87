package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("invalid file type: only images, documents and zip files are allowed")
)

// AllowedExtensions lists the accepted attachment extensions.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".pdf", ".doc", ".docx", ".zip"}

// FileMetadata describes a stored attachment.
type FileMetadata struct {
	OriginalName string    `json:"originalName"`
	StoredName   string    `json:"storedName"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	UploadDate   time.Time `json:"uploadDate"`
	UploaderID   uint64    `json:"uploaderId"`
}

// DiskStore keeps attachments in a local directory.
type DiskStore struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// NewDiskStore creates a DiskStore rooted at dir.
func NewDiskStore(dir string, maxBytes int64) *DiskStore {
	return &DiskStore{dir: dir, maxBytes: maxBytes, now: time.Now}
}

// MaxBytes returns the per-file size limit.
func (s *DiskStore) MaxBytes() int64 {
	return s.maxBytes
}

// Save copies an uploaded file into the store under a fresh name.
func (s *DiskStore) Save(fh *multipart.FileHeader, uploaderID uint64) (*FileMetadata, error) {
	if fh == nil {
		return nil, ErrNoFile
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowed(ext) {
		return nil, ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	storedName := uuid.NewString() + ext
	path := filepath.Join(s.dir, storedName)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create stored file: %w", err)
	}

	reader := io.Reader(src)
	if s.maxBytes > 0 {
		reader = io.LimitReader(src, s.maxBytes+1)
	}
	written, err := io.Copy(dst, reader)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && written > s.maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, ErrFileTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("write stored file: %w", err)
	}

	return &FileMetadata{
		OriginalName: filepath.Base(fh.Filename),
		StoredName:   storedName,
		Path:         path,
		Size:         written,
		MimeType:     mimeType(fh, ext),
		UploadDate:   s.now().UTC(),
		UploaderID:   uploaderID,
	}, nil
}

func allowed(ext string) bool {
	for _, a := range AllowedExtensions {
		if a == ext {
			return true
		}
	}
	return false
}

func mimeType(fh *multipart.FileHeader, ext string) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
