// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreBlogTable represents the 'core.blog' table
type CoreBlogTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Content     string
	ImageURL    string
	Status      string
	PublishedAt string
	CreatedAt   string
}

// CoreBlog is the schema definition for core.blog
var CoreBlog = CoreBlogTable{
	Table:       "core.blog",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Content:     "content",
	ImageURL:    "imageurl",
	Status:      "status",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
}

// Columns returns the columns in scan order.
func (t CoreBlogTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Content, t.ImageURL,
		t.Status, t.PublishedAt, t.CreatedAt,
	}
}
