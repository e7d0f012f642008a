package panel

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Roughness   float32
	NormalScale float64
	Count       int
	Wireframe   bool
	Name        string
	hidden      float32
}

func newFixture(t *testing.T) (Panel, *params, *Folder) {
	t.Helper()
	p := NewPanel(WithTitle("Test"))
	v := &params{Roughness: 0.5, NormalScale: 1, Count: 3}
	f := p.AddFolder("Material")
	return p, v, f
}

func TestAddMatchesFieldCaseInsensitively(t *testing.T) {
	_, v, f := newFixture(t)

	b := f.Add(v, "roughness", WithRange(0, 1), WithStep(0.01))
	require.NotNil(t, b)
	assert.Equal(t, "roughness", b.Label())
	assert.Equal(t, KindFloat, b.Kind())
	assert.InDelta(t, 0.5, b.Value(), 1e-6)

	b = f.Add(v, "NORMALSCALE", WithLabel("normal scale"))
	require.NotNil(t, b)
	assert.Equal(t, "normal scale", b.Label())

	assert.Equal(t, KindInt, f.Add(v, "count").Kind())
	assert.Equal(t, KindBool, f.Add(v, "wireframe").Kind())
	assert.Len(t, f.Bindings(), 4)
}

func TestAddOmitsUnbindableFields(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewPanel(WithLogger(logger))
	f := p.AddFolder("Mesh")
	v := &params{}

	var nilParams *params
	tests := []struct {
		name   string
		target any
		field  string
	}{
		{"nil target", nil, "roughness"},
		{"nil pointer", nilParams, "roughness"},
		{"non-pointer", *v, "roughness"},
		{"pointer to non-struct", new(float32), "roughness"},
		{"missing field", v, "metalness"},
		{"unexported field", v, "hidden"},
		{"unsupported kind", v, "name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, f.Add(tc.target, tc.field))
		})
	}
	assert.Empty(t, f.Bindings())
	assert.Contains(t, logs.String(), "panel binding skipped")
}

func TestSetStoresInRangeValuesExactly(t *testing.T) {
	_, v, f := newFixture(t)
	b := f.Add(v, "roughness", WithRange(0, 1), WithStep(0.01))
	require.NotNil(t, b)

	for _, want := range []float64{0, 0.37, 0.123456, 0.999, 1} {
		b.Set(want)
		assert.Equal(t, float32(want), v.Roughness)
	}

	b.Set(1.5)
	assert.Equal(t, float32(1), v.Roughness)
	b.Set(-2)
	assert.Equal(t, float32(0), v.Roughness)
}

func TestNudgeSnapsToStepGrid(t *testing.T) {
	_, v, f := newFixture(t)
	v.Roughness = 0.333
	b := f.Add(v, "roughness", WithRange(0, 1), WithStep(0.1))
	require.NotNil(t, b)

	b.Nudge(1)
	assert.InDelta(t, 0.4, v.Roughness, 1e-6)
	b.Nudge(-2)
	assert.InDelta(t, 0.2, v.Roughness, 1e-6)
	b.Nudge(50)
	assert.Equal(t, float32(1), v.Roughness)

	c := f.Add(v, "count", WithRange(0, 5))
	require.NotNil(t, c)
	c.Nudge(4)
	assert.Equal(t, 5, v.Count)
}

func TestBoolBindings(t *testing.T) {
	_, v, f := newFixture(t)
	b := f.Add(v, "wireframe")
	require.NotNil(t, b)

	b.Toggle()
	assert.True(t, v.Wireframe)
	b.Nudge(2)
	assert.True(t, v.Wireframe)
	b.Nudge(1)
	assert.False(t, v.Wireframe)
	b.SetBool(true)
	assert.True(t, v.Wireframe)
	assert.Equal(t, "true", b.String())

	b.Reset()
	assert.False(t, v.Wireframe)
}

func TestNavigation(t *testing.T) {
	p, v, f := newFixture(t)
	r := f.Add(v, "roughness", WithRange(0, 1), WithStep(0.01))
	w := f.Add(v, "wireframe")
	other := p.AddFolder("Mesh")
	c := other.Add(v, "count", WithRange(0, 10))
	assert.Same(t, other, p.AddFolder("Mesh"))

	assert.Same(t, r, p.Selected())
	p.Next()
	assert.Same(t, w, p.Selected())
	assert.True(t, p.ToggleSelected())
	assert.True(t, v.Wireframe)
	p.Next()
	assert.Same(t, c, p.Selected())
	assert.False(t, p.ToggleSelected())
	assert.True(t, p.NudgeSelected(2))
	assert.Equal(t, 5, v.Count)
	assert.True(t, p.ResetSelected())
	assert.Equal(t, 3, v.Count)
	p.Next()
	assert.Same(t, r, p.Selected())
	p.Prev()
	assert.Same(t, c, p.Selected())

	// Collapsing the selected folder moves the cursor to what is still visible.
	assert.True(t, p.ToggleFolder())
	assert.False(t, other.Open())
	assert.Len(t, p.Visible(), 2)
	assert.Same(t, r, p.Selected())

	p.ResetAll()
	assert.False(t, v.Wireframe)
}

func TestEmptyPanelNavigation(t *testing.T) {
	p := NewPanel()
	p.Next()
	assert.Nil(t, p.Selected())
	assert.False(t, p.NudgeSelected(1))
	assert.False(t, p.ResetSelected())
	assert.False(t, p.ToggleFolder())
}

func TestVersionTracksMutations(t *testing.T) {
	p, v, f := newFixture(t)
	b := f.Add(v, "roughness", WithRange(0, 1))
	before := p.Version()
	b.Set(0.1)
	assert.Greater(t, p.Version(), before)
	before = p.Version()
	p.Next()
	assert.Greater(t, p.Version(), before)
}

func TestTerminalViewRender(t *testing.T) {
	p, v, f := newFixture(t)
	f.Add(v, "roughness", WithRange(0, 1), WithStep(0.01))
	p.AddFolder("Mesh").SetOpen(false)

	var out bytes.Buffer
	view := newTerminalView(p, &out, -1, true, nil)
	text := view.Render(80)
	assert.Contains(t, text, "Test")
	assert.Contains(t, text, "▾ Material")
	assert.Contains(t, text, "> roughness")
	assert.Contains(t, text, "0.50")
	assert.Contains(t, text, "[0, 1]")
	assert.Contains(t, text, "▸ Mesh")

	for _, l := range strings.Split(view.Render(12), "\n") {
		assert.LessOrEqual(t, len([]rune(l)), 12)
	}

	assert.True(t, view.Refresh())
	assert.False(t, view.Refresh())
	assert.Contains(t, out.String(), "roughness")
	p.Next()
	assert.True(t, view.Refresh())
}

func TestTerminalViewLogsWhenNotATerminal(t *testing.T) {
	p, v, f := newFixture(t)
	b := f.Add(v, "roughness", WithRange(0, 1), WithStep(0.01))

	var logs, out bytes.Buffer
	view := newTerminalView(p, &out, -1, false, slog.New(slog.NewTextHandler(&logs, nil)))
	assert.False(t, view.Interactive())
	assert.False(t, view.Refresh())

	b.Set(0.25)
	assert.True(t, view.Refresh())
	assert.Contains(t, logs.String(), "field=roughness")
	assert.Contains(t, logs.String(), "value=0.25")
	assert.Empty(t, out.String())
}
