package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPlain(t *testing.T) {
	assert.Equal(t, "[-cat-]{+dog+} sat", RenderPlain("cat sat", "dog sat"))
	assert.Equal(t, "same", RenderPlain("same", "same"))
}

func TestRender_ColorsChanges(t *testing.T) {
	out := Render("cat sat", "dog sat")
	assert.Contains(t, out, "\x1b[31m")
	assert.Contains(t, out, "\x1b[32m")
	assert.Contains(t, out, " sat")
}

func TestCompute(t *testing.T) {
	s := Compute("cat sat", "dog sat")
	assert.Equal(t, Stats{Insertions: 3, Deletions: 3, Levenshtein: 3}, s)

	assert.Equal(t, Stats{}, Compute("x", "x"))
	assert.Equal(t, Stats{Insertions: 2, Levenshtein: 2}, Compute("ab", "abcd"))
}
