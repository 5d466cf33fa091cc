package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidefind/internal/types"
)

func TestNewFromString_RoundTrip(t *testing.T) {
	for _, text := range []string{"", "one", "one\ntwo", "trailing\n", "\n\n", "héllo\nwörld\n"} {
		sb := NewFromString(text)
		assert.Equal(t, text, sb.String())
		assert.Equal(t, len([]rune(text)), sb.RuneCount(), "rune count of %q", text)
	}
}

func TestOffsetPositionConversion(t *testing.T) {
	sb := NewFromString("ab\ncdé\n")

	tests := []struct {
		offset int
		pos    types.Position
	}{
		{0, types.Position{Line: 0, Col: 0}},
		{2, types.Position{Line: 0, Col: 2}},
		{3, types.Position{Line: 1, Col: 0}},
		{6, types.Position{Line: 1, Col: 3}},
		{7, types.Position{Line: 2, Col: 0}},
	}
	for _, tt := range tests {
		pos, err := sb.OffsetToPosition(tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.pos, pos, "offset %d", tt.offset)

		off, err := sb.PositionToOffset(tt.pos)
		require.NoError(t, err)
		assert.Equal(t, tt.offset, off)
	}

	_, err := sb.OffsetToPosition(8)
	assert.Error(t, err)
	_, err = sb.PositionToOffset(types.Position{Line: 0, Col: 3})
	assert.Error(t, err)
}

func TestTextInRange(t *testing.T) {
	sb := NewFromString("alpha\nbeta\ngamma")

	got, err := sb.TextInRange(types.Range{Location: 3, Length: 10})
	require.NoError(t, err)
	assert.Equal(t, "ha\nbeta\nga", got)

	got, err = sb.TextInRange(types.Range{Location: 6, Length: 4})
	require.NoError(t, err)
	assert.Equal(t, "beta", got)

	_, err = sb.TextInRange(types.Range{Location: 10, Length: 10})
	assert.Error(t, err)
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name string
		text string
		r    types.Range
		with string
		want string
	}{
		{"same line", "hello world", types.Range{Location: 6, Length: 5}, "there", "hello there"},
		{"insert only", "ac", types.Range{Location: 1}, "b", "abc"},
		{"delete only", "abc", types.Range{Location: 1, Length: 1}, "", "ac"},
		{"join lines", "one\ntwo\nthree", types.Range{Location: 2, Length: 7}, "-", "on-hree"},
		{"split line", "onetwo", types.Range{Location: 3}, "\n", "one\ntwo"},
		{"multi-line for multi-line", "a\nb\nc", types.Range{Location: 2, Length: 1}, "x\ny", "a\nx\ny\nc"},
		{"multibyte", "héllo", types.Range{Location: 1, Length: 1}, "e", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewFromString(tt.text)
			require.NoError(t, sb.Replace(tt.r, tt.with))
			assert.Equal(t, tt.want, sb.String())
			assert.True(t, sb.IsModified())
		})
	}
}

func TestReplace_OutOfBounds(t *testing.T) {
	sb := NewFromString("abc")
	assert.Error(t, sb.Replace(types.Range{Location: 2, Length: 5}, "x"))
	assert.Equal(t, "abc", sb.String())
	assert.False(t, sb.IsModified())
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0644))

	sb := NewSliceBuffer()
	require.NoError(t, sb.Load(path))
	assert.Equal(t, "x\ny\n", sb.String())
	assert.Equal(t, path, sb.FilePath())

	require.NoError(t, sb.Replace(types.Range{Location: 0, Length: 1}, "z"))
	require.NoError(t, sb.Save(""))
	assert.False(t, sb.IsModified())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "z\ny\n", string(content))

	missing := NewSliceBuffer()
	require.NoError(t, missing.Load(filepath.Join(dir, "new.txt")))
	assert.Equal(t, "", missing.String())
}
