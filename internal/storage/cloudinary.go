package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/yiltek/catalog-backend/internal/config"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStorage streams uploads to a Cloudinary folder and returns the
// secure delivery URL.
type CloudinaryStorage struct {
	api       cloudinaryAPI
	cloudName string
	folder    string
}

func NewCloudinaryStorage(cfg config.CloudinaryConfig) (*CloudinaryStorage, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStorage{api: &cld.Upload, cloudName: cfg.CloudName, folder: cfg.Folder}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, r io.Reader, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	uniqueFilename := false
	res, err := s.api.Upload(ctx, r, uploader.UploadParams{
		PublicID:       strings.TrimSuffix(name, path.Ext(name)),
		Folder:         s.folder,
		ResourceType:   "auto",
		UniqueFilename: &uniqueFilename,
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *CloudinaryStorage) Owns(p string) bool {
	_, _, ok := s.parseURL(p)
	return ok
}

func (s *CloudinaryStorage) Delete(ctx context.Context, p string) error {
	resourceType, publicID, ok := s.parseURL(p)
	if !ok {
		return fmt.Errorf("refusing to delete foreign url: %s", p)
	}
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return nil
}

// parseURL splits https://res.cloudinary.com/<cloud>/<type>/upload/[v123/]<id>.<ext>
// into the resource type and public id.
func (s *CloudinaryStorage) parseURL(raw string) (string, string, bool) {
	marker := "res.cloudinary.com/" + s.cloudName + "/"
	idx := strings.Index(raw, marker)
	if idx < 0 {
		return "", "", false
	}
	parts := strings.SplitN(raw[idx+len(marker):], "/", 3)
	if len(parts) != 3 || parts[1] != "upload" {
		return "", "", false
	}
	rest := parts[2]
	if first, tail, found := strings.Cut(rest, "/"); found && isVersion(first) {
		rest = tail
	}
	publicID := strings.TrimSuffix(rest, path.Ext(rest))
	if publicID == "" {
		return "", "", false
	}
	return parts[0], publicID, true
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
