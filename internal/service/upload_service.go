package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "riseadvertising/internal/errors"
	"riseadvertising/internal/storage"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".svg": true, ".avif": true,
}

// UploadResult is where an uploaded image ended up.
type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// UploadService stores admin images in the object store. Callers save the
// returned URL on the record themselves.
type UploadService interface {
	UploadImage(ctx context.Context, entity, slug, filename string, r io.Reader) (*UploadResult, error)
}

type uploadService struct {
	store storage.ObjectStore
}

// NewUploadService creates an upload service backed by store.
func NewUploadService(store storage.ObjectStore) UploadService {
	return &uploadService{store: store}
}

func (s *uploadService) UploadImage(ctx context.Context, entity, slug, filename string, r io.Reader) (*UploadResult, error) {
	if !storage.IsEntity(entity) {
		return nil, apperrors.ErrUnsupportedEntity
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, apperrors.NewValidationError(map[string]string{"file": "upload a JPG, PNG, GIF, WebP, AVIF or SVG image"})
	}

	path, err := storage.ObjectPath(entity, slug, filename)
	if err != nil {
		return nil, err
	}
	if err := s.store.Upload(ctx, path, r); err != nil {
		return nil, err
	}
	url, err := s.store.PublicURL(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("resolve public url")
		return nil, apperrors.ErrStorageUnavailable
	}
	return &UploadResult{Path: path, URL: url}, nil
}
