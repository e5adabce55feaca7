// Package storage puts admin-uploaded images into an object store and hands
// back the public URL that gets saved on the record.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"riseadvertising/internal/catalog"
	apperrors "riseadvertising/internal/errors"
)

// Entities that accept image uploads.
const (
	EntityCategories = "categories"
	EntityServices   = "services"
	EntityPortfolio  = "portfolio"
)

// ObjectStore is the upload/getPublicUrl contract of the hosted object store.
type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader) error
	PublicURL(path string) (string, error)
}

// IsEntity reports whether uploads are accepted for entity.
func IsEntity(entity string) bool {
	switch entity {
	case EntityCategories, EntityServices, EntityPortfolio:
		return true
	}
	return false
}

// ObjectPath builds "{entity}/{slug-or-random}-{random8}{.ext}". The slug is
// normalised with catalog.Slugify; a blank slug is replaced by random hex.
func ObjectPath(entity, slug, filename string) (string, error) {
	if !IsEntity(entity) {
		return "", apperrors.ErrUnsupportedEntity
	}
	base := catalog.Slugify(slug)
	if base == "" {
		base = randomHex(12)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return entity + "/" + base + "-" + randomHex(8) + ext, nil
}

func randomHex(n int) string {
	s := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
