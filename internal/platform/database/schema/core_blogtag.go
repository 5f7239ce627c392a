// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreBlogTagTable represents the 'core.blogtag' junction table
type CoreBlogTagTable struct {
	Table  string
	BlogID string
	TagID  string
}

// CoreBlogTag is the schema definition for core.blogtag
var CoreBlogTag = CoreBlogTagTable{
	Table:  "core.blogtag",
	BlogID: "blogid",
	TagID:  "tagid",
}
