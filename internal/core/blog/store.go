// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"time"
)

// Repository persists blogs and their tag links.
//
// Lookups of a missing ID return an error matching dberr.ErrNotFound.
type Repository interface {
	// List returns blogs ordered by publishedAt DESC NULLS LAST, then createdAt DESC.
	List(context context.Context, filter Filter) ([]*Blog, error)

	GetByID(context context.Context, id string) (*Blog, error)

	// Create inserts blog and links it to tags resolved by name, creating
	// missing tags, in one transaction. blog.Tags is filled on success.
	Create(context context.Context, blog *Blog, tagNames []string) error

	// Update applies changes and returns the updated blog together with the
	// cover URL it had before the update.
	Update(context context.Context, id string, changes Changes) (*Blog, *string, error)

	SetStatus(context context.Context, id string, status Status, publishedAt *time.Time) (*Blog, error)

	// Delete removes the blog and its tag links and returns its cover URL.
	Delete(context context.Context, id string) (*string, error)

	Summary(context context.Context) (*Summary, error)
}
