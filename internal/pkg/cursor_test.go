package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeCursor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC)

	got, ok := DecodeTimeCursor(EncodeTimeCursor(now))
	require.True(t, ok)
	assert.True(t, got.Equal(now))

	t.Run("empty and garbage cursors are ignored", func(t *testing.T) {
		_, ok := DecodeTimeCursor("")
		assert.False(t, ok)

		_, ok = DecodeTimeCursor("!!!not-base64!!!")
		assert.False(t, ok)

		// 合法 base64 但不是时间
		_, ok = DecodeTimeCursor("aGVsbG8=")
		assert.False(t, ok)
	})
}

func TestFloorCursor(t *testing.T) {
	got, ok := DecodeFloorCursor(EncodeFloorCursor(42))
	require.True(t, ok)
	assert.EqualValues(t, 42, got)

	_, ok = DecodeFloorCursor("")
	assert.False(t, ok)

	// 非正数楼号不可作为游标
	_, ok = DecodeFloorCursor(EncodeFloorCursor(0))
	assert.False(t, ok)
	_, ok = DecodeFloorCursor(EncodeFloorCursor(-1))
	assert.False(t, ok)
}

func TestBarCursor(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	got, ok := DecodeBarCursor(EncodeBarCursor(128, created))
	require.True(t, ok)
	assert.EqualValues(t, 128, got.MemberCount)
	assert.True(t, got.CreatedAt.Equal(created))

	_, ok = DecodeBarCursor("???")
	assert.False(t, ok)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-5, 20, 100))
	assert.Equal(t, 50, ClampLimit(50, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
}
