package panel

// BindingOption configures a Binding created by Folder.Add.
type BindingOption func(*Binding)

// WithRange is an option builder that bounds a binding to [lo, hi]. Swapped bounds are reordered.
//
// Parameters:
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - BindingOption: a function that applies the range option to a binding
func WithRange(lo, hi float64) BindingOption {
	return func(b *Binding) {
		if lo > hi {
			lo, hi = hi, lo
		}
		b.lo, b.hi, b.hasRange = lo, hi, true
	}
}

// WithStep is an option builder that sets the nudge increment. Non-positive steps are ignored.
//
// Parameters:
//   - step: the increment
//
// Returns:
//   - BindingOption: a function that applies the step option to a binding
func WithStep(step float64) BindingOption {
	return func(b *Binding) {
		if step > 0 {
			b.step = step
		}
	}
}

// WithLabel is an option builder that overrides the display name, which defaults to the field name.
//
// Parameters:
//   - label: the display name
//
// Returns:
//   - BindingOption: a function that applies the label option to a binding
func WithLabel(label string) BindingOption {
	return func(b *Binding) {
		b.label = label
	}
}
