// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/inkpost/internal/core/blog"
	"github.com/taibuivan/inkpost/internal/core/tag"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
)

// memoryRepository is an in-memory [blog.Repository] with the same
// constraints as the Postgres schema: unique tag names and tags that
// outlive their blogs.
type memoryRepository struct {
	mu    sync.Mutex
	blogs map[string]*blog.Blog
	tags  map[string]tag.Tag

	// failWith, when set, is returned by every operation.
	failWith error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		blogs: map[string]*blog.Blog{},
		tags:  map[string]tag.Tag{},
	}
}

// # tag.Upserter

func (repo *memoryRepository) FindByName(_ context.Context, name string) (*tag.Tag, error) {
	if found, ok := repo.tags[name]; ok {
		return &found, nil
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryRepository) Insert(_ context.Context, t *tag.Tag) error {
	if _, ok := repo.tags[t.Name]; ok {
		return apperr.Conflict("Resource already exists")
	}
	repo.tags[t.Name] = *t
	return nil
}

// # blog.Repository

func (repo *memoryRepository) List(_ context.Context, filter blog.Filter) ([]*blog.Blog, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWith != nil {
		return nil, repo.failWith
	}

	blogs := make([]*blog.Blog, 0, len(repo.blogs))
	for _, stored := range repo.blogs {
		if filter.Status == "" || stored.Status == filter.Status {
			blogs = append(blogs, clone(stored))
		}
	}

	slices.SortFunc(blogs, func(a, b *blog.Blog) int {
		switch {
		case a.PublishedAt != nil && b.PublishedAt == nil:
			return -1
		case a.PublishedAt == nil && b.PublishedAt != nil:
			return 1
		case a.PublishedAt != nil && !a.PublishedAt.Equal(*b.PublishedAt):
			return b.PublishedAt.Compare(*a.PublishedAt)
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return blogs, nil
}

func (repo *memoryRepository) GetByID(_ context.Context, id string) (*blog.Blog, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWith != nil {
		return nil, repo.failWith
	}
	stored, ok := repo.blogs[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return clone(stored), nil
}

func (repo *memoryRepository) Create(context context.Context, b *blog.Blog, tagNames []string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWith != nil {
		return repo.failWith
	}

	tags, err := repo.resolveTags(context, tagNames)
	if err != nil {
		return err
	}
	b.Tags = tags
	repo.blogs[b.ID] = clone(b)
	return nil
}

func (repo *memoryRepository) Update(context context.Context, id string, changes blog.Changes) (*blog.Blog, *string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWith != nil {
		return nil, nil, repo.failWith
	}
	stored, ok := repo.blogs[id]
	if !ok {
		return nil, nil, dberr.ErrNotFound
	}

	previous := stored.ImageURL
	stored.Title = changes.Title
	stored.Description = changes.Description
	stored.Content = changes.Content
	stored.ImageURL = changes.ImageURL

	if changes.ReplaceTags {
		tags, err := repo.resolveTags(context, changes.Tags)
		if err != nil {
			return nil, nil, err
		}
		stored.Tags = tags
	}
	return clone(stored), previous, nil
}

func (repo *memoryRepository) SetStatus(_ context.Context, id string, status blog.Status, publishedAt *time.Time) (*blog.Blog, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWith != nil {
		return nil, repo.failWith
	}
	stored, ok := repo.blogs[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	stored.Status = status
	stored.PublishedAt = publishedAt
	return clone(stored), nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) (*string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWith != nil {
		return nil, repo.failWith
	}
	stored, ok := repo.blogs[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	delete(repo.blogs, id)
	return stored.ImageURL, nil
}

func (repo *memoryRepository) Summary(_ context.Context) (*blog.Summary, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWith != nil {
		return nil, repo.failWith
	}
	summary := &blog.Summary{
		TotalBlogs:      int64(len(repo.blogs)),
		TotalUniqueTags: int64(len(repo.tags)),
	}
	for _, stored := range repo.blogs {
		if stored.Status == blog.StatusDraft {
			summary.DraftBlogs++
		}
	}
	return summary, nil
}

// # Helpers

func (repo *memoryRepository) tagCount() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.tags)
}

func (repo *memoryRepository) resolveTags(context context.Context, names []string) ([]tag.Tag, error) {
	tags, err := tag.UpsertAll(context, repo, names)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(tags, func(a, b tag.Tag) int { return cmp.Compare(a.Name, b.Name) })
	return tags, nil
}

func clone(b *blog.Blog) *blog.Blog {
	copied := *b
	copied.Tags = slices.Clone(b.Tags)
	if copied.Tags == nil {
		copied.Tags = []tag.Tag{}
	}
	return &copied
}

// recordingCovers captures best-effort cover removals.
type recordingCovers struct {
	mu      sync.Mutex
	removed []string
}

func (covers *recordingCovers) RemoveByURL(_ context.Context, url string) error {
	covers.mu.Lock()
	defer covers.mu.Unlock()
	covers.removed = append(covers.removed, url)
	return nil
}
