// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog implements the article catalogue: CRUD over blogs, their tag
sets, the draft/published workflow and the dashboard summary.
*/
package blog

import (
	"time"

	"github.com/taibuivan/inkpost/internal/core/tag"
)

// Status is the publication state of a blog.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

// Statuses lists the accepted values in display order.
var Statuses = []string{string(StatusDraft), string(StatusPublished)}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Blog is a single article with its tags.
//
// PublishedAt is set exactly when Status is PUBLISHED.
type Blog struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"imageUrl"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Tags        []tag.Tag  `json:"tags"`
}

// Filter narrows a blog listing. An empty Status matches every blog.
type Filter struct {
	Status Status
}

// Summary holds the dashboard counters.
type Summary struct {
	TotalBlogs      int64 `json:"totalBlogs"`
	DraftBlogs      int64 `json:"draftBlogs"`
	TotalUniqueTags int64 `json:"totalUniqueTags"`
}

// CreateInput is the payload for a new blog. Tags are names, not IDs.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ImageURL    *string  `json:"imageUrl"`
	Tags        []string `json:"tags"`
}

// UpdateInput replaces every scalar field of a blog. A nil Tags pointer
// leaves the tag set alone; an empty slice detaches all tags.
type UpdateInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ImageURL    *string   `json:"imageUrl"`
	Tags        *[]string `json:"tags"`
}

// Changes is the persisted form of an update after validation.
type Changes struct {
	Title       string
	Description string
	Content     string
	ImageURL    *string

	// ReplaceTags is false when the caller did not send a tag list.
	ReplaceTags bool
	Tags        []string
}

// # Field Names

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldContent     = "content"
	FieldImageURL    = "imageUrl"
	FieldTags        = "tags"
	FieldStatus      = "status"
)

// # Limits

const (
	maxTitleLen       = 300
	maxDescriptionLen = 1000
	maxImageURLLen    = 2048
	maxTagNameLen     = 64
	maxTags           = 32
)
