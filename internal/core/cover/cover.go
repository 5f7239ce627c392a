// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cover stores blog cover images in object storage.

Uploads are sniffed with mimetype rather than trusting the client's
Content-Type, and the stored key embeds a timestamp, a random token and the
slugified file name so two uploads of the same file never collide.
*/
package cover

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/pkg/slug"
)

// allowedTypes lists the accepted image formats. SVG is excluded since it can carry script.
var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/avif"}

// Store is the object storage backend. *storage.Client satisfies it.
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}

// Upload is the result of a stored cover.
type Upload struct {
	URL string `json:"url"`
}

// # Service Layer

// Service validates and stores cover images. A nil store disables uploads.
type Service struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a new cover [Service]. Pass a nil store when object
// storage is not configured.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, now: time.Now, logger: logger}
}

/*
Upload validates an image and stores it under a fresh key.

Parameters:
  - context: context.Context
  - filename: string (client file name, slugified into the key)
  - data: []byte (file contents)

Returns:
  - *Upload: The public URL of the stored object
  - error: 503 when storage is disabled, 400 for empty, oversized or non-image files
*/
func (service *Service) Upload(context context.Context, filename string, data []byte) (*Upload, error) {
	if service.store == nil {
		return nil, errUnavailable()
	}

	if len(data) == 0 {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "file", Message: "File is empty"})
	}
	if len(data) > constants.MaxCoverBytes {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("Maximum %d MB", constants.MaxCoverBytes>>20),
		})
	}

	detected := mimetype.Detect(data)
	if !mimetype.EqualsAny(detected.String(), allowedTypes...) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("File type %q is not allowed", detected.String()),
		})
	}

	key, err := service.newKey(filename, detected.Extension())
	if err != nil {
		return nil, apperr.InternalMsg("Failed to upload cover", err)
	}

	if err := service.store.Put(context, key, detected.String(), data); err != nil {
		return nil, apperr.InternalMsg("Failed to upload cover", err)
	}

	service.logger.InfoContext(context, "cover_uploaded",
		slog.String("key", key),
		slog.String("type", detected.String()),
		slog.Int("bytes", len(data)),
	)
	return &Upload{URL: service.store.URL(key)}, nil
}

// Delete removes a cover by its public URL. URLs outside the cover prefix are rejected.
func (service *Service) Delete(context context.Context, url string) error {
	if service.store == nil {
		return errUnavailable()
	}

	key, ok := service.keyFromURL(url)
	if !ok {
		return apperr.Unprocessable("URL does not belong to cover storage")
	}

	if err := service.store.Remove(context, key); err != nil {
		return apperr.InternalMsg("Failed to delete cover", err)
	}

	service.logger.InfoContext(context, "cover_deleted", slog.String("key", key))
	return nil
}

// RemoveByURL deletes a cover if url points into cover storage and is a
// no-op otherwise, so blogs may reference external images.
func (service *Service) RemoveByURL(context context.Context, url string) error {
	if service.store == nil {
		return nil
	}
	key, ok := service.keyFromURL(url)
	if !ok {
		return nil
	}
	return service.store.Remove(context, key)
}

// # Helpers

// newKey builds covers/<unixMillis>-<random>-<slug>.
func (service *Service) newKey(filename, detectedExt string) (string, error) {
	token, err := sec.GenerateSecureToken(6)
	if err != nil {
		return "", err
	}

	name := slug.File(filename)
	if path.Ext(name) == "" {
		name += detectedExt
	}

	return fmt.Sprintf("%s%d-%s-%s", constants.CoverKeyPrefix, service.now().UnixMilli(), strings.ToLower(token), name), nil
}

func (service *Service) keyFromURL(url string) (string, bool) {
	key, ok := service.store.KeyFromURL(url)
	if !ok || !strings.HasPrefix(key, constants.CoverKeyPrefix) || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

func errUnavailable() error {
	return apperr.ServiceUnavailable("Cover storage is not configured")
}
