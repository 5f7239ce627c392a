// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII slugs from arbitrary Unicode strings. Cover
// image object keys embed the slug of the uploaded file name.
package slug

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// Accents are removed after NFD decomposition (é → e), everything else that
// is not a lowercase letter or digit becomes a single hyphen.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// File slugs the base of a file name and keeps its lowercased extension.
// An empty base becomes "file".
//
//	slug.File("Café Crème.JPG") // "cafe-creme.jpg"
func File(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))

	base := From(strings.TrimSuffix(name, path.Ext(name)))
	if base == "" {
		base = "file"
	}

	if ext != "" && From(ext[1:]) != ext[1:] {
		ext = ""
	}
	return base + ext
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
