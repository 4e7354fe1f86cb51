package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPagination(t *testing.T) {
	page, pageSize := DefaultPagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	page, pageSize = DefaultPagination(-3, -10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	page, pageSize = DefaultPagination(4, 50)
	assert.Equal(t, 4, page)
	assert.Equal(t, 50, pageSize)

	_, pageSize = DefaultPagination(1, 500)
	assert.Equal(t, 100, pageSize)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestParseObjectID(t *testing.T) {
	id, err := ParseObjectID("507f1f77bcf86cd799439011")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id.Hex())

	_, err = ParseObjectID("not-an-id")
	assert.Error(t, err)
}

func TestStringInSlice(t *testing.T) {
	list := []string{"admin", "citizen"}
	assert.True(t, StringInSlice("admin", list))
	assert.False(t, StringInSlice("rescue_team", list))
	assert.False(t, StringInSlice("admin", nil))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "lon...", TruncateString("long message", 6))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}
