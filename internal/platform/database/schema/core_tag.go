// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTagTable represents the 'core.tag' table
type CoreTagTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// CoreTag is the schema definition for core.tag
var CoreTag = CoreTagTable{
	Table:     "core.tag",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
}

// Columns returns the columns selected into a domain Tag.
func (t CoreTagTable) Columns() []string {
	return []string{t.ID, t.Name}
}
