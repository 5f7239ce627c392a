// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkpost/pkg/uuid"
)

func TestNew_IsValidAndOrdered(t *testing.T) {
	first, second := uuid.New(), uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.Equal(t, byte('7'), first[14])
	assert.LessOrEqual(t, first[:13], second[:13])
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid("01890a5d-ac96-774b-bcce-b302099a8057"))
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid("{01890a5d-ac96-774b-bcce-b302099a8057}"))
	assert.False(t, uuid.Valid(""))
}
