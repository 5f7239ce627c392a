// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkpost/internal/platform/migration"
)

/*
TestToPgx5DSN verifies scheme rewriting for the migrate driver.
*/
func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/inkpost", "pgx5://u:p@db:5432/inkpost"},
		{"postgresql://u:p@db/inkpost?sslmode=disable", "pgx5://u:p@db/inkpost?sslmode=disable"},
		{"pgx5://u:p@db/inkpost", "pgx5://u:p@db/inkpost"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in))
		})
	}
}
