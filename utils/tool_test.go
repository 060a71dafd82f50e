package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := GenerateSessionID()
		require.NoError(t, err)
		assert.True(t, ValidateSessionID(id), id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestValidateSessionID(t *testing.T) {
	assert.False(t, ValidateSessionID(""))
	assert.False(t, ValidateSessionID("short"))
	assert.False(t, ValidateSessionID("!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"))
}
