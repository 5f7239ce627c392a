// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"errors"

	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/pkg/uuid"
)

// Repository is the read side used by the tag listing.
type Repository interface {
	List(context context.Context) ([]*Tag, error)
}

// Upserter is the minimal store surface needed to resolve a tag by name.
//
// FindByName returns dberr.ErrNotFound when no row matches. Insert returns
// dberr.ErrConflict when another writer created the same name first.
type Upserter interface {
	FindByName(context context.Context, name string) (*Tag, error)
	Insert(context context.Context, tag *Tag) error
}

/*
Upsert returns the tag called name, creating it if needed.

Two writers may both miss the lookup and race to insert the same name. The
unique constraint lets exactly one succeed; the loser sees a conflict and
reads the winner's row instead of failing.

Parameters:
  - context: context.Context
  - store: Upserter (usually bound to the caller's transaction)
  - name: string (already normalized)

Returns:
  - *Tag: The existing or newly created tag
  - error: Store failures other than the handled conflict
*/
func Upsert(context context.Context, store Upserter, name string) (*Tag, error) {
	existing, err := store.FindByName(context, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	created := &Tag{ID: uuid.New(), Name: name}
	err = store.Insert(context, created)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, dberr.ErrConflict) {
		return nil, err
	}

	// Lost the race: the row exists now.
	return store.FindByName(context, name)
}

// UpsertAll resolves every name in order. Names must already be normalized and unique.
func UpsertAll(context context.Context, store Upserter, names []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		resolved, err := Upsert(context, store, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *resolved)
	}
	return tags, nil
}
