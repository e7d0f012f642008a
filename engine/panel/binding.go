package panel

import (
	"math"
	"reflect"
	"strconv"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
)

// Kind is the value category of a bound field.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

const (
	defaultFloatStep = 0.1
	defaultIntStep   = 1
)

// Binding is a control bound to one live struct field. Writes go straight into the field, so a
// value set between two frames is what the next frame reads.
type Binding struct {
	panel  *panelImpl
	folder *Folder

	label    string
	kind     Kind
	field    reflect.Value
	lo, hi   float64
	hasRange bool
	step     float64

	initial float64
}

// Label returns the display name of the binding.
func (b *Binding) Label() string {
	return b.label
}

// Kind returns the value category of the bound field.
func (b *Binding) Kind() Kind {
	return b.kind
}

// Folder returns the folder the binding belongs to.
func (b *Binding) Folder() *Folder {
	return b.folder
}

// Range returns the inclusive bounds and whether any were set.
func (b *Binding) Range() (lo, hi float64, ok bool) {
	return b.lo, b.hi, b.hasRange
}

// Step returns the nudge increment.
func (b *Binding) Step() float64 {
	return b.step
}

// Value returns the current field value as a float64. Booleans read as 0 or 1.
func (b *Binding) Value() float64 {
	switch b.kind {
	case KindBool:
		if b.field.Bool() {
			return 1
		}
		return 0
	case KindInt:
		return float64(b.field.Int())
	default:
		return b.field.Float()
	}
}

// Bool returns the current field value as a bool. Numeric fields are true when non-zero.
func (b *Binding) Bool() bool {
	return b.Value() != 0
}

// Set writes v into the field, clamped to the binding's range when it has one.
// Values inside the range are stored as given. Booleans are set to v != 0.
//
// Parameters:
//   - v: the new value
func (b *Binding) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	b.store(b.clamp(v))
}

// Nudge moves a numeric field by n steps and snaps the result to the step grid.
// For booleans an odd n toggles the value.
//
// Parameters:
//   - n: the number of steps, negative to decrease
func (b *Binding) Nudge(n int) {
	if b.kind == KindBool {
		if n%2 != 0 {
			b.Toggle()
		}
		return
	}
	origin := 0.0
	if b.hasRange {
		origin = b.lo
	}
	v := common.SnapToStep(b.Value()+float64(n)*b.step, origin, b.step)
	b.store(b.clamp(v))
}

// SetBool writes a boolean field. Numeric fields receive 0 or 1 subject to their range.
func (b *Binding) SetBool(v bool) {
	if v {
		b.Set(1)
	} else {
		b.Set(0)
	}
}

// Toggle flips a boolean field. It is a no-op on numeric fields.
func (b *Binding) Toggle() {
	if b.kind != KindBool {
		return
	}
	b.SetBool(!b.field.Bool())
}

// Reset restores the value the field held when the binding was created.
func (b *Binding) Reset() {
	b.store(b.initial)
}

// String formats the current value for display.
func (b *Binding) String() string {
	switch b.kind {
	case KindBool:
		return strconv.FormatBool(b.field.Bool())
	case KindInt:
		return strconv.FormatInt(b.field.Int(), 10)
	default:
		return strconv.FormatFloat(b.field.Float(), 'f', b.precision(), 64)
	}
}

// precision derives the number of decimals from the step, so a step of 0.01 shows two.
func (b *Binding) precision() int {
	if b.step <= 0 || b.step >= 1 {
		return 2
	}
	return min(6, max(1, int(math.Ceil(-math.Log10(b.step)-1e-9))))
}

func (b *Binding) clamp(v float64) float64 {
	if !b.hasRange {
		return v
	}
	return common.Clamp(v, b.lo, b.hi)
}

func (b *Binding) store(v float64) {
	switch b.kind {
	case KindBool:
		b.field.SetBool(v != 0)
	case KindInt:
		b.field.SetInt(int64(math.Round(v)))
	default:
		b.field.SetFloat(v)
	}
	b.panel.bump()
}

// kindOf maps a reflect kind onto a supported binding Kind.
func kindOf(k reflect.Kind) (Kind, bool) {
	switch k {
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, true
	case reflect.Bool:
		return KindBool, true
	default:
		return 0, false
	}
}
