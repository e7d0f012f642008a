package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcesEmbedded(t *testing.T) {
	for name, src := range map[string]string{"lit": Lit, "line": Line} {
		assert.Contains(t, src, "fn vs_main", name)
		assert.Contains(t, src, "fn fs_main", name)
		assert.Contains(t, src, "@group(0) @binding(0) var<uniform> camera", name)
	}
	assert.Contains(t, Lit, "array<Light, 8>")
	assert.Contains(t, Lit, "@group(2) @binding(3) var normal_map")
}
