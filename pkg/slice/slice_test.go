// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkpost/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))
	assert.Equal(t, []string{"GO", "SQL"}, slice.Map([]string{"go", "sql"}, strings.ToUpper))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"X", "Y", "x"}, slice.Unique([]string{"X", "Y", "X", "x", "Y"}))
	assert.Empty(t, slice.Unique([]string{}))
}
