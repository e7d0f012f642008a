package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce[int]())
	assert.Equal(t, float32(2), Coalesce[float32](0, 2))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{3, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.v, tt.lo, tt.hi))
	}
}

func TestSnapToStep(t *testing.T) {
	tests := []struct {
		name                 string
		v, origin, step, want float64
	}{
		{"on grid", 0.3, 0, 0.1, 0.3},
		{"rounds up", 0.26, 0, 0.1, 0.3},
		{"rounds down", 0.24, 0, 0.1, 0.2},
		{"negative", -2.46, -10, 0.1, -2.5},
		{"offset origin", 0.37, 0.1, 0.1, 0.4},
		{"zero step", 0.123, 0, 0, 0.123},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SnapToStep(tt.v, tt.origin, tt.step), 1e-9)
		})
	}
}

func TestSolidTexture(t *testing.T) {
	tex := SolidTexture(128, 128, 255, 255)
	assert.True(t, tex.Valid())
	assert.Equal(t, []byte{128, 128, 255, 255}, tex.Pixels)

	var nilTex *TextureStagingData
	assert.False(t, nilTex.Valid())
	assert.False(t, (&TextureStagingData{Width: 2, Height: 2, Pixels: make([]byte, 4)}).Valid())
}
