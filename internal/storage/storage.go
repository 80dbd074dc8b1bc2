package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Storage persists uploaded files and hands back the path clients use to
// fetch them.
type Storage interface {
	Save(ctx context.Context, r io.Reader, name string) (string, error)
	// Owns reports whether path was produced by this backend.
	Owns(path string) bool
	Delete(ctx context.Context, path string) error
}

// Policy decides whether a sniffed content type is accepted.
type Policy func(mime *mimetype.MIME) bool

// Documents accepts images and PDF files.
func Documents(mime *mimetype.MIME) bool {
	return isImage(mime) || mime.Is("application/pdf")
}

func Images(mime *mimetype.MIME) bool {
	return isImage(mime)
}

func Videos(mime *mimetype.MIME) bool {
	return strings.HasPrefix(mime.String(), "video/")
}

func isImage(mime *mimetype.MIME) bool {
	return strings.HasPrefix(mime.String(), "image/")
}

// Stored describes a file written by SaveUpload.
type Stored struct {
	Path        string
	ContentType string
	Size        int64
}

// SaveUpload checks the size and sniffed content of an uploaded file and
// writes it to st under a random name that keeps the original extension.
func SaveUpload(ctx context.Context, st Storage, fh *multipart.FileHeader, maxBytes int64, accept Policy) (Stored, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return Stored{}, ErrTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return Stored{}, err
	}
	defer file.Close()

	mime, err := mimetype.DetectReader(file)
	if err != nil {
		return Stored{}, fmt.Errorf("detect content type: %w", err)
	}
	if !accept(mime) {
		return Stored{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mime.String())
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return Stored{}, err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = mime.Extension()
	}
	path, err := st.Save(ctx, file, uuid.New().String()+ext)
	if err != nil {
		return Stored{}, err
	}
	return Stored{Path: path, ContentType: mime.String(), Size: fh.Size}, nil
}
