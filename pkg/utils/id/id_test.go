package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUUID(t *testing.T) {
	id1 := NewUUID()
	id2 := NewUUID()

	assert.Len(t, id1, 36)
	assert.NotEqual(t, id1, id2)
	assert.True(t, IsValidUUID(id1))
}

func TestNewULID(t *testing.T) {
	id1 := NewULID()
	id2 := NewULID()

	assert.Len(t, id1, 26)
	assert.NotEqual(t, id1, id2)

	// 单调性：同一毫秒内生成的 ULID 仍然递增
	assert.Less(t, id1, id2)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
