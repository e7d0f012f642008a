package app

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// Poster queues work for the render goroutine and can stop it. engine.Engine satisfies it.
type Poster interface {
	Post(fn func())
	Quit()
}

// Input turns window events into scene and panel mutations. Its methods are called on the window thread;
// pointer state lives there, and everything that touches the Context is posted to the render goroutine.
type Input struct {
	ctx    *Context
	poster Poster

	dragging     bool
	lastX, lastY float32
}

// NewInput binds input handling to a Context.
//
// Parameters:
//   - c: the application context
//   - p: where mutations are posted
//
// Returns:
//   - *Input: the input handler
func NewInput(c *Context, p Poster) *Input {
	return &Input{ctx: c, poster: p}
}

// MouseButton starts a drag on left-button press and ends it on release.
func (in *Input) MouseButton(button int, pressed bool, x, y float32) {
	if button != common.MouseButtonLeft {
		return
	}
	in.dragging = pressed
	in.lastX, in.lastY = x, y
}

// MouseMove orbits the camera by the pointer delta while dragging.
func (in *Input) MouseMove(x, y float32) {
	if !in.dragging {
		return
	}
	dx, dy := x-in.lastX, y-in.lastY
	in.lastX, in.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	ctrl := in.ctx.Controller
	in.poster.Post(func() {
		ctrl.Rotate(dx, dy)
	})
}

// Scroll zooms: positive deltas (wheel up, pinch out) move the camera closer.
func (in *Input) Scroll(delta float32) {
	ctrl := in.ctx.Controller
	in.poster.Post(func() {
		ctrl.Zoom(delta)
	})
}

// Dragging reports whether a left-button drag is in progress.
func (in *Input) Dragging() bool {
	return in.dragging
}

// Key handles key presses and repeats; releases are ignored.
//
//	Esc                quit
//	Tab / Shift+Tab    next / previous control (also Down / Up)
//	Left / Right       nudge the selected value by one step, ten with Shift
//	Enter / Space      toggle the selected checkbox
//	Backspace          reset the selected control
//	F                  fold or unfold the selected control's folder
//	R                  reset every control
//	W A S D Q E        pan the camera forward, left, back, right, down, up
func (in *Input) Key(key int, pressed bool, mods int) {
	if !pressed {
		return
	}
	if key == common.KeyEsc {
		in.poster.Quit()
		return
	}

	p := in.ctx.Panel
	ctrl := in.ctx.Controller
	shift := mods&common.ModShift != 0
	steps := 1
	if shift {
		steps = 10
	}

	var fn func()
	switch key {
	case common.KeyTab:
		if shift {
			fn = p.Prev
		} else {
			fn = p.Next
		}
	case common.KeyDown:
		fn = p.Next
	case common.KeyUp:
		fn = p.Prev
	case common.KeyRight:
		fn = func() { p.NudgeSelected(steps) }
	case common.KeyLeft:
		fn = func() { p.NudgeSelected(-steps) }
	case common.KeyEnter, common.KeySpace:
		fn = func() { p.ToggleSelected() }
	case common.KeyBackspace:
		fn = func() { p.ResetSelected() }
	case common.KeyF:
		fn = func() { p.ToggleFolder() }
	case common.KeyR:
		fn = p.ResetAll
	case common.KeyW:
		fn = func() { ctrl.PanForward(1) }
	case common.KeyS:
		fn = func() { ctrl.PanForward(-1) }
	case common.KeyA:
		fn = func() { ctrl.PanRight(-1) }
	case common.KeyD:
		fn = func() { ctrl.PanRight(1) }
	case common.KeyE:
		fn = func() { ctrl.PanUp(1) }
	case common.KeyQ:
		fn = func() { ctrl.PanUp(-1) }
	default:
		return
	}
	in.poster.Post(fn)
}
