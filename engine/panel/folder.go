package panel

import (
	"reflect"
	"strings"
)

// Folder groups bindings under a collapsible heading.
type Folder struct {
	panel    *panelImpl
	name     string
	open     bool
	bindings []*Binding
}

// Name returns the folder heading.
func (f *Folder) Name() string {
	return f.name
}

// Open reports whether the folder's bindings are visible for navigation.
func (f *Folder) Open() bool {
	f.panel.mu.Lock()
	defer f.panel.mu.Unlock()
	return f.open
}

// SetOpen opens or collapses the folder.
func (f *Folder) SetOpen(open bool) {
	f.panel.mu.Lock()
	changed := f.open != open
	f.open = open
	f.panel.mu.Unlock()
	if changed {
		f.panel.bump()
	}
}

// Bindings returns the folder's bindings in the order they were added.
func (f *Folder) Bindings() []*Binding {
	f.panel.mu.Lock()
	defer f.panel.mu.Unlock()
	return append([]*Binding(nil), f.bindings...)
}

// Add binds a field of target to a new control. The field is matched case-insensitively against
// the exported fields of the struct target points to. When target is nil or not a struct pointer,
// the field is missing, or its kind is not float, int or bool, the control is omitted and Add returns nil.
//
// Parameters:
//   - target: pointer to the struct holding the field
//   - field: the field name
//   - opts: variadic list of BindingOption functions
//
// Returns:
//   - *Binding: the new binding, or nil if the field cannot be bound
func (f *Folder) Add(target any, field string, opts ...BindingOption) *Binding {
	logger := f.panel.logger
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		logger.Debug("panel binding skipped: target is not a struct pointer", "folder", f.name, "field", field)
		return nil
	}
	sv := rv.Elem()
	fv, name, ok := lookupField(sv, field)
	if !ok {
		logger.Debug("panel binding skipped: no such field", "folder", f.name, "field", field, "type", sv.Type().String())
		return nil
	}
	kind, ok := kindOf(fv.Kind())
	if !ok {
		logger.Debug("panel binding skipped: unsupported kind", "folder", f.name, "field", name, "kind", fv.Kind().String())
		return nil
	}

	b := &Binding{
		panel:  f.panel,
		folder: f,
		label:  name,
		kind:   kind,
		field:  fv,
	}
	switch kind {
	case KindInt:
		b.step = defaultIntStep
	case KindFloat:
		b.step = defaultFloatStep
	}
	for _, opt := range opts {
		opt(b)
	}
	b.initial = b.Value()

	f.panel.mu.Lock()
	f.bindings = append(f.bindings, b)
	f.panel.mu.Unlock()
	f.panel.bump()
	return b
}

func lookupField(sv reflect.Value, name string) (reflect.Value, string, bool) {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() || !strings.EqualFold(sf.Name, name) {
			continue
		}
		fv := sv.Field(i)
		if !fv.CanSet() {
			return reflect.Value{}, "", false
		}
		return fv, name, true
	}
	return reflect.Value{}, "", false
}
