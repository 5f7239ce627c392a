// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/taibuivan/inkpost/internal/core/tag"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/validate"
	"github.com/taibuivan/inkpost/pkg/pointer"
	"github.com/taibuivan/inkpost/pkg/uuid"
)

// CoverRemover deletes a stored cover image by its public URL.
type CoverRemover interface {
	RemoveByURL(context context.Context, url string) error
}

// # Service Layer

// Service orchestrates the blog workflow: validation, sanitization, tag
// normalization, publication timestamps and cover cleanup.
type Service struct {
	repo      Repository
	covers    CoverRemover
	sanitizer *bluemonday.Policy
	now       func() time.Time
	logger    *slog.Logger
}

// Option customizes a [Service].
type Option func(*Service)

// WithClock overrides the time source used for createdAt and publishedAt.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// WithCoverRemover enables best-effort deletion of replaced or orphaned covers.
func WithCoverRemover(covers CoverRemover) Option {
	return func(service *Service) { service.covers = covers }
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
		now:       time.Now,
		logger:    logger,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Lookups

/*
ListBlogs returns blogs, newest publication first.

An unknown status matches nothing and yields an empty list rather than an
error, mirroring an exact-match filter.

Parameters:
  - context: context.Context
  - status: string (optional exact-match filter)

Returns:
  - []*Blog: Never nil
  - error: Persistence failures
*/
func (service *Service) ListBlogs(context context.Context, status string) ([]*Blog, error) {
	filter := Filter{Status: Status(status)}
	if status != "" && !filter.Status.Valid() {
		return make([]*Blog, 0), nil
	}

	blogs, err := service.repo.List(context, filter)
	if err != nil {
		return nil, classify(err, "Failed to fetch blogs")
	}
	return blogs, nil
}

// GetBlog fetches a blog with its tags.
func (service *Service) GetBlog(context context.Context, id string) (*Blog, error) {
	if !uuid.Valid(id) {
		return nil, errBlogNotFound()
	}

	blog, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, classify(err, "Failed to fetch blog")
	}
	return blog, nil
}

// Summary returns the dashboard counters.
func (service *Service) Summary(context context.Context) (*Summary, error) {
	summary, err := service.repo.Summary(context)
	if err != nil {
		return nil, classify(err, "Error fetching blog summary")
	}
	return summary, nil
}

// # Blog Management

/*
CreateBlog validates and persists a new draft.

Description: Tag names are normalized (trimmed, NFC, de-duplicated) and
resolved by name, so an existing tag is linked instead of duplicated. The
content HTML is sanitized. Status is always DRAFT on creation.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Blog: The created blog with its tags
  - error: VALIDATION_ERROR or a static 500
*/
func (service *Service) CreateBlog(context context.Context, input CreateInput) (*Blog, error) {
	tagNames := tag.NormalizeNames(input.Tags)
	imageURL := normalizeImageURL(input.ImageURL)

	validator := &validate.Validator{}
	service.validateFields(validator, input.Title, input.Description, input.Content, imageURL)
	validator.MinItems(FieldTags, len(tagNames), 1)
	validateTagNames(validator, tagNames)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	blog := &Blog{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Content:     service.sanitizer.Sanitize(input.Content),
		ImageURL:    imageURL,
		Status:      StatusDraft,
		CreatedAt:   service.now().UTC(),
	}

	if err := service.repo.Create(context, blog, tagNames); err != nil {
		return nil, classify(err, "Failed to create blog")
	}

	service.logger.InfoContext(context, "blog_created",
		slog.String("blog_id", blog.ID),
		slog.Int("tags", len(blog.Tags)),
	)
	return blog, nil
}

/*
UpdateBlog overwrites every scalar field and optionally the tag set.

Description: An omitted imageUrl clears the cover. When the cover URL
changes, the previous blob is removed best-effort after the row is saved.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Blog: The updated blog
  - error: VALIDATION_ERROR, "Blog not found" or a static 500
*/
func (service *Service) UpdateBlog(context context.Context, id string, input UpdateInput) (*Blog, error) {
	imageURL := normalizeImageURL(input.ImageURL)

	validator := &validate.Validator{}
	service.validateFields(validator, input.Title, input.Description, input.Content, imageURL)

	changes := Changes{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Content:     service.sanitizer.Sanitize(input.Content),
		ImageURL:    imageURL,
	}
	if input.Tags != nil {
		changes.ReplaceTags = true
		changes.Tags = tag.NormalizeNames(*input.Tags)
		validateTagNames(validator, changes.Tags)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if !uuid.Valid(id) {
		return nil, errBlogNotFound()
	}

	updated, previousImageURL, err := service.repo.Update(context, id, changes)
	if err != nil {
		return nil, classify(err, "Failed to patch blog")
	}

	if previousImageURL != nil && pointer.Val(previousImageURL) != pointer.Val(updated.ImageURL) {
		service.removeCover(context, *previousImageURL)
	}

	service.logger.InfoContext(context, "blog_updated",
		slog.String("blog_id", updated.ID),
		slog.Bool("tags_replaced", changes.ReplaceTags),
	)
	return updated, nil
}

/*
SetStatus moves a blog between DRAFT and PUBLISHED.

Description: publishedAt is derived, never supplied: PUBLISHED stamps the
current time (re-stamping an already published blog), any other target
clears it, including DRAFT to DRAFT.

Parameters:
  - context: context.Context
  - id: string
  - status: string (raw value from the request)

Returns:
  - *Blog: The updated blog
  - error: 422 for an unknown status, "Blog not found", or a static 500
*/
func (service *Service) SetStatus(context context.Context, id string, status string) (*Blog, error) {
	target := Status(status)
	if !target.Valid() {
		return nil, apperr.Unprocessable("Status must be one of: " + strings.Join(Statuses, ", "))
	}

	if !uuid.Valid(id) {
		return nil, errBlogNotFound()
	}

	var publishedAt *time.Time
	if target == StatusPublished {
		publishedAt = pointer.To(service.now().UTC())
	}

	blog, err := service.repo.SetStatus(context, id, target, publishedAt)
	if err != nil {
		return nil, classify(err, "Failed to update blog status")
	}

	service.logger.InfoContext(context, "blog_status_changed",
		slog.String("blog_id", blog.ID),
		slog.String("status", string(blog.Status)),
	)
	return blog, nil
}

// DeleteBlog hard-deletes a blog and removes its cover best-effort. Its tags survive.
func (service *Service) DeleteBlog(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return errBlogNotFound()
	}

	imageURL, err := service.repo.Delete(context, id)
	if err != nil {
		return classify(err, "Failed to delete blog")
	}

	if imageURL != nil {
		service.removeCover(context, *imageURL)
	}

	service.logger.InfoContext(context, "blog_deleted", slog.String("blog_id", id))
	return nil
}

// # Helpers

func (service *Service) validateFields(validator *validate.Validator, title, description, content string, imageURL *string) {
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLen)
	validator.Required(FieldDescription, description).MaxLen(FieldDescription, description, maxDescriptionLen)
	validator.Required(FieldContent, content)

	// Markup that sanitizes to nothing (e.g. a lone <script>) is empty content.
	if strings.TrimSpace(content) != "" {
		validator.Custom(FieldContent, strings.TrimSpace(service.sanitizer.Sanitize(content)) == "", "Content is empty after sanitization")
	}

	if imageURL != nil {
		validator.MaxLen(FieldImageURL, *imageURL, maxImageURLLen)
		validator.Custom(FieldImageURL, !isHTTPURL(*imageURL), "Must be an http(s) URL")
	}
}

func validateTagNames(validator *validate.Validator, names []string) {
	validator.Custom(FieldTags, len(names) > maxTags, "Too many tags")
	for _, name := range names {
		validator.MaxLen(FieldTags, name, maxTagNameLen)
	}
}

// removeCover deletes a cover blob without failing the request.
func (service *Service) removeCover(context context.Context, imageURL string) {
	if service.covers == nil {
		return
	}
	if err := service.covers.RemoveByURL(context, imageURL); err != nil {
		service.logger.WarnContext(context, "cover_cleanup_failed",
			slog.String("url", imageURL),
			slog.String("error", err.Error()),
		)
	}
}

// normalizeImageURL treats a blank URL like an absent one.
func normalizeImageURL(imageURL *string) *string {
	if imageURL == nil {
		return nil
	}
	return pointer.NilIfZero(strings.TrimSpace(*imageURL))
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func errBlogNotFound() error {
	return apperr.NotFound("Blog")
}

// classify maps store errors to client-facing errors. Not-found becomes
// "Blog not found", other client errors pass through, and everything else
// becomes a 500 carrying the static failure message.
func classify(err error, failure string) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return errBlogNotFound()
	}
	if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
		return err
	}
	return apperr.InternalMsg(failure, err)
}
