// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/core/tag"
	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/postgres"
	"github.com/taibuivan/inkpost/pkg/slice"
)

// PostgresRepository implements [Repository] using pgx.
//
// Every method runs under [postgres.WithRetry]; transactional methods open
// and close their transaction inside the retried closure.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed blog store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Queries

/*
selectBlogSQL builds the hydrated blog projection over source, aliased "b".

Tags are aggregated into a JSON array by a correlated sub-query so one
round-trip returns the full aggregate. Names sort by byte order ("C") so the
result matches what [sortTags] produces in Go.
*/
func selectBlogSQL(source string) string {
	return fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			COALESCE((
				SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s) ORDER BY t.%s COLLATE "C")
				FROM %s t
				JOIN %s bt ON t.%s = bt.%s
				WHERE bt.%s = b.%s
			), '[]') AS tags
		FROM %s b`,
		schema.CoreBlog.ID, schema.CoreBlog.Title, schema.CoreBlog.Description, schema.CoreBlog.Content,
		schema.CoreBlog.ImageURL, schema.CoreBlog.Status, schema.CoreBlog.PublishedAt, schema.CoreBlog.CreatedAt,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Name,
		schema.CoreTag.Table,
		schema.CoreBlogTag.Table, schema.CoreTag.ID, schema.CoreBlogTag.TagID,
		schema.CoreBlogTag.BlogID, schema.CoreBlog.ID,
		source,
	)
}

// scanBlog reads one row produced by [selectBlogSQL].
func scanBlog(row pgx.Row) (*Blog, error) {
	blog := &Blog{}
	var status string
	var tagsJSON []byte

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Description,
		&blog.Content,
		&blog.ImageURL,
		&status,
		&blog.PublishedAt,
		&blog.CreatedAt,
		&tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	blog.Status = Status(status)
	if err := json.Unmarshal(tagsJSON, &blog.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
	}
	return blog, nil
}

// # Reads

func (repository *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Blog, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(selectBlogSQL(schema.CoreBlog.Table))
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE b.%s = $1", schema.CoreBlog.Status))
		args = append(args, string(filter.Status))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY b.%s DESC NULLS LAST, b.%s DESC",
		schema.CoreBlog.PublishedAt, schema.CoreBlog.CreatedAt))

	var blogs []*Blog
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
		if err != nil {
			return dberr.Wrap(err, "list_blogs")
		}

		collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Blog, error) {
			return scanBlog(row)
		})
		if err != nil {
			return dberr.Wrap(err, "scan_blog")
		}

		blogs = collected
		return nil
	})
	if err != nil {
		return nil, err
	}

	if blogs == nil {
		blogs = make([]*Blog, 0)
	}
	return blogs, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (*Blog, error) {
	query := selectBlogSQL(schema.CoreBlog.Table) + fmt.Sprintf(" WHERE b.%s = $1", schema.CoreBlog.ID)

	var blog *Blog
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		found, err := scanBlog(repository.pool.QueryRow(ctx, query, id))
		if err != nil {
			return dberr.Wrap(err, "get_blog_by_id")
		}
		blog = found
		return nil
	})
	return blog, err
}

/*
Summary computes the dashboard counters in a single statement.

Returns:
  - *Summary: total blogs, drafts and distinct tags
  - error: Database execution errors
*/
func (repository *PostgresRepository) Summary(ctx context.Context) (*Summary, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE %s = $1),
			(SELECT COUNT(*) FROM %s)
		FROM %s`,
		schema.CoreBlog.Status, schema.CoreTag.Table, schema.CoreBlog.Table,
	)

	summary := &Summary{}
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		err := repository.pool.QueryRow(ctx, query, string(StatusDraft)).
			Scan(&summary.TotalBlogs, &summary.DraftBlogs, &summary.TotalUniqueTags)
		return dberr.Wrap(err, "blog_summary")
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// # Writes

/*
Create inserts the blog row, resolves every tag name (creating missing tags)
and links them, all inside one transaction.

Parameters:
  - ctx: context.Context
  - blog: *Blog (ID, scalar fields, Status and CreatedAt already set)
  - tagNames: []string (normalized, unique)

Returns:
  - error: dberr-classified failures; blog.Tags is set on success
*/
func (repository *PostgresRepository) Create(ctx context.Context, blog *Blog, tagNames []string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.CoreBlog.Table, strings.Join(schema.CoreBlog.Columns(), ", "))

	return postgres.WithRetry(ctx, func(ctx context.Context) error {
		transaction, err := repository.pool.Begin(ctx)
		if err != nil {
			return dberr.Wrap(err, "begin_create_blog")
		}
		defer transaction.Rollback(ctx)

		_, err = transaction.Exec(ctx, query,
			blog.ID,
			blog.Title,
			blog.Description,
			blog.Content,
			blog.ImageURL,
			string(blog.Status),
			blog.PublishedAt,
			blog.CreatedAt,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_blog")
		}

		tags, err := linkTags(ctx, transaction, blog.ID, tagNames)
		if err != nil {
			return err
		}

		if err := transaction.Commit(ctx); err != nil {
			return dberr.Wrap(err, "commit_create_blog")
		}

		blog.Tags = tags
		return nil
	})
}

/*
Update overwrites the scalar fields and, when requested, the tag set.

The previous cover URL is read under a row lock in the same statement so
the caller can clean up the old blob without racing another edit.

Returns:
  - *Blog: The updated aggregate
  - *string: The cover URL before the update
  - error: dberr.ErrNotFound if id does not exist
*/
func (repository *PostgresRepository) Update(ctx context.Context, id string, changes Changes) (*Blog, *string, error) {
	query := fmt.Sprintf(`
		UPDATE %s b
		SET %s = $2, %s = $3, %s = $4, %s = $5
		FROM (SELECT %s, %s FROM %s WHERE %s = $1 FOR UPDATE) previous
		WHERE b.%s = previous.%s
		RETURNING previous.%s`,
		schema.CoreBlog.Table,
		schema.CoreBlog.Title, schema.CoreBlog.Description, schema.CoreBlog.Content, schema.CoreBlog.ImageURL,
		schema.CoreBlog.ID, schema.CoreBlog.ImageURL, schema.CoreBlog.Table, schema.CoreBlog.ID,
		schema.CoreBlog.ID, schema.CoreBlog.ID,
		schema.CoreBlog.ImageURL,
	)
	reload := selectBlogSQL(schema.CoreBlog.Table) + fmt.Sprintf(" WHERE b.%s = $1", schema.CoreBlog.ID)

	var updated *Blog
	var previousImageURL *string

	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		transaction, err := repository.pool.Begin(ctx)
		if err != nil {
			return dberr.Wrap(err, "begin_update_blog")
		}
		defer transaction.Rollback(ctx)

		err = transaction.QueryRow(ctx, query,
			id, changes.Title, changes.Description, changes.Content, changes.ImageURL,
		).Scan(&previousImageURL)
		if err != nil {
			return dberr.Wrap(err, "update_blog")
		}

		if changes.ReplaceTags {
			if _, err := linkTags(ctx, transaction, id, changes.Tags); err != nil {
				return err
			}
		}

		updated, err = scanBlog(transaction.QueryRow(ctx, reload, id))
		if err != nil {
			return dberr.Wrap(err, "reload_blog")
		}

		if err := transaction.Commit(ctx); err != nil {
			return dberr.Wrap(err, "commit_update_blog")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, previousImageURL, nil
}

// SetStatus writes the status pair and returns the hydrated blog in one statement.
func (repository *PostgresRepository) SetStatus(ctx context.Context, id string, status Status, publishedAt *time.Time) (*Blog, error) {
	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 RETURNING *
		)`,
		schema.CoreBlog.Table, schema.CoreBlog.Status, schema.CoreBlog.PublishedAt, schema.CoreBlog.ID,
	) + selectBlogSQL("updated")

	var blog *Blog
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		found, err := scanBlog(repository.pool.QueryRow(ctx, query, id, string(status), publishedAt))
		if err != nil {
			return dberr.Wrap(err, "set_blog_status")
		}
		blog = found
		return nil
	})
	return blog, err
}

// Delete removes the blog. Junction rows cascade; tags themselves are kept.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) (*string, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.CoreBlog.Table, schema.CoreBlog.ID, schema.CoreBlog.ImageURL)

	var imageURL *string
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		return dberr.Wrap(repository.pool.QueryRow(ctx, query, id).Scan(&imageURL), "delete_blog")
	})
	if err != nil {
		return nil, err
	}
	return imageURL, nil
}

// # Junction

/*
linkTags resolves tagNames to rows and replaces the blog's tag set with them.

Description: Clears the junction for blogID, then queues one INSERT per tag
in a single pgx.Batch. Tag resolution goes through [tag.UpsertAll] on the
same transaction, so a concurrent creator of the same name is absorbed.

Returns:
  - []tag.Tag: The linked tags sorted by name
  - error: Junction or upsert failures
*/
func linkTags(ctx context.Context, transaction pgx.Tx, blogID string, tagNames []string) ([]tag.Tag, error) {
	tags, err := tag.UpsertAll(ctx, tag.NewTxRepository(transaction), tagNames)
	if err != nil {
		return nil, err
	}

	clearQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreBlogTag.Table, schema.CoreBlogTag.BlogID)
	if _, err := transaction.Exec(ctx, clearQuery, blogID); err != nil {
		return nil, dberr.Wrap(err, "clear_blog_tags")
	}

	if len(tags) == 0 {
		return tags, nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.CoreBlogTag.Table, schema.CoreBlogTag.BlogID, schema.CoreBlogTag.TagID)

	batch := &pgx.Batch{}
	for _, tagID := range slice.Map(tags, func(t tag.Tag) string { return t.ID }) {
		batch.Queue(insertQuery, blogID, tagID)
	}
	if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
		return nil, dberr.Wrap(err, "link_blog_tags")
	}

	sortTags(tags)
	return tags, nil
}

// sortTags orders tags by name in byte order.
func sortTags(tags []tag.Tag) {
	slices.SortFunc(tags, func(a, b tag.Tag) int { return strings.Compare(a.Name, b.Name) })
}
