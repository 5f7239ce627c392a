// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/inkpost/pkg/slice"
)

// Tag is a label shared between blogs. Name is the case-sensitive natural key.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NormalizeName trims surrounding whitespace and converts name to Unicode NFC,
// so visually identical names map to the same row. Case is preserved.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NormalizeNames normalizes every name, drops empty ones and removes
// duplicates while keeping first-seen order.
func NormalizeNames(names []string) []string {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		if name = NormalizeName(name); name != "" {
			normalized = append(normalized, name)
		}
	}
	return slice.Unique(normalized)
}
