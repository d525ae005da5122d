package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.True(t, IsUUID("550e8400-e29b-41d4-a716-446655440000"))
	})

	t.Run("invalid", func(t *testing.T) {
		assert.False(t, IsUUID("not-a-uuid"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.False(t, IsUUID(""))
	})
}
