// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkpost/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Crème brûlée!!", "creme-brulee"},
		{"  --Go__Lang--  ", "go-lang"},
		{"日本", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.in), tt.in)
	}
}

func TestFile(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Café Crème.JPG", "cafe-creme.jpg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\My Cover.png`, "my-cover.png"},
		{"日本.webp", "file.webp"},
		{"noext", "noext"},
		{"weird.p ng", "weird"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.File(tt.in), tt.in)
	}
}
