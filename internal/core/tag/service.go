// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
)

// Service serves the global tag listing.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a tag service on repo.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListTags returns every tag ordered by name, including tags no blog uses anymore.
func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	tags, err := service.repo.List(context)
	if err != nil {
		service.logger.ErrorContext(context, "tag_list_failed", slog.Any("error", err))
		return nil, apperr.InternalMsg("Failed to fetch tags", err)
	}

	service.logger.DebugContext(context, "tags_listed", slog.Int("count", len(tags)))
	return tags, nil
}
