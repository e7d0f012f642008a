package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsAndOptions(t *testing.T) {
	w := newEngineWindow(WithTitle("demo"), WithWidth(640), WithHeight(0), WithMinSize(100, 80))
	assert.Equal(t, "demo", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 80, w.minHeight)
}

func TestUninitialisedWindow(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestDispatch(t *testing.T) {
	w := newEngineWindow()

	type keyEvent struct {
		key     int
		pressed bool
		mods    int
	}
	var keys []keyEvent
	w.SetKeyCallback(func(key int, pressed bool, mods int) {
		keys = append(keys, keyEvent{key, pressed, mods})
	})
	w.dispatchKey(65, 1, 1)
	w.dispatchKey(65, 2, 0)
	w.dispatchKey(65, 0, 0)
	w.dispatchKey(-1, 1, 0)
	assert.Equal(t, []keyEvent{{65, true, 1}, {65, true, 0}, {65, false, 0}}, keys)

	var sizes [][2]int
	w.SetResizeCallback(func(width, height int) { sizes = append(sizes, [2]int{width, height}) })
	w.dispatchResize(300, 200)
	assert.Equal(t, [][2]int{{300, 200}}, sizes)
	assert.Equal(t, 300, w.Width())
	assert.Equal(t, 200, w.Height())

	var scrolls []float32
	w.SetScrollCallback(func(d float32) { scrolls = append(scrolls, d) })
	w.dispatchScroll(0)
	w.dispatchScroll(-1.5)
	assert.Equal(t, []float32{-1.5}, scrolls)

	var buttons []bool
	w.SetMouseButtonCallback(func(button int, pressed bool, x, y float32) {
		assert.Equal(t, 0, button)
		assert.Equal(t, float32(10), x)
		assert.Equal(t, float32(20), y)
		buttons = append(buttons, pressed)
	})
	w.dispatchMouseButton(0, true, 10, 20)
	w.dispatchMouseButton(0, false, 10, 20)
	assert.Equal(t, []bool{true, false}, buttons)

	moved := false
	w.SetMouseMoveCallback(func(x, y float32) { moved = x == 1 && y == 2 })
	w.dispatchMouseMove(1, 2)
	assert.True(t, moved)
}
