package panel

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

type panelImpl struct {
	mu       sync.Mutex
	title    string
	logger   *slog.Logger
	folders  []*Folder
	selected *Binding
	version  atomic.Uint64
}

// Panel is a keyboard-driven set of controls bound to live struct fields, grouped into folders.
// Every mutation bumps a version counter that views poll to decide when to redraw.
// Bindings write their fields without synchronisation; callers drive a panel from the goroutine
// that owns the bound values.
type Panel interface {
	// Title returns the panel heading.
	Title() string

	// AddFolder returns the folder with the given name, creating it open if it does not exist.
	//
	// Parameters:
	//   - name: the folder heading
	//
	// Returns:
	//   - *Folder: the folder
	AddFolder(name string) *Folder

	// Folder looks up a folder by name.
	// Returns nil if not found.
	Folder(name string) *Folder

	// Folders returns every folder in creation order.
	Folders() []*Folder

	// Visible returns the bindings of open folders in display order.
	Visible() []*Binding

	// Selected returns the binding under the cursor, or nil when nothing is visible.
	Selected() *Binding

	// Next moves the cursor to the next visible binding, wrapping around.
	Next()

	// Prev moves the cursor to the previous visible binding, wrapping around.
	Prev()

	// NudgeSelected nudges the selected binding by n steps.
	// Returns false if nothing is selected.
	NudgeSelected(n int) bool

	// ToggleSelected flips the selected boolean binding.
	// Returns false if nothing is selected or the binding is numeric.
	ToggleSelected() bool

	// ResetSelected restores the selected binding's initial value.
	// Returns false if nothing is selected.
	ResetSelected() bool

	// ToggleFolder opens or collapses the folder holding the selected binding, or the first folder when
	// nothing is selected. A collapsed folder keeps its heading visible and the cursor moves on.
	//
	// Returns:
	//   - bool: true if a folder was toggled
	ToggleFolder() bool

	// ResetAll restores every binding's initial value.
	ResetAll()

	// Version returns the mutation counter.
	Version() uint64
}

var _ Panel = &panelImpl{}

// NewPanel creates an empty Panel configured with the provided options.
//
// Parameters:
//   - options: variadic list of PanelBuilderOption functions
//
// Returns:
//   - Panel: the new panel
func NewPanel(options ...PanelBuilderOption) Panel {
	p := &panelImpl{
		title:  "Controls",
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *panelImpl) Title() string {
	return p.title
}

func (p *panelImpl) AddFolder(name string) *Folder {
	p.mu.Lock()
	for _, f := range p.folders {
		if f.name == name {
			p.mu.Unlock()
			return f
		}
	}
	f := &Folder{panel: p, name: name, open: true}
	p.folders = append(p.folders, f)
	p.mu.Unlock()
	p.bump()
	return f
}

func (p *panelImpl) Folder(name string) *Folder {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.folders {
		if f.name == name {
			return f
		}
	}
	return nil
}

func (p *panelImpl) Folders() []*Folder {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Folder(nil), p.folders...)
}

func (p *panelImpl) Visible() []*Binding {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibleLocked()
}

func (p *panelImpl) Selected() *Binding {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectedLocked()
}

func (p *panelImpl) Next() {
	p.move(1)
}

func (p *panelImpl) Prev() {
	p.move(-1)
}

func (p *panelImpl) NudgeSelected(n int) bool {
	b := p.Selected()
	if b == nil {
		return false
	}
	b.Nudge(n)
	return true
}

func (p *panelImpl) ToggleSelected() bool {
	b := p.Selected()
	if b == nil || b.kind != KindBool {
		return false
	}
	b.Toggle()
	return true
}

func (p *panelImpl) ResetSelected() bool {
	b := p.Selected()
	if b == nil {
		return false
	}
	b.Reset()
	return true
}

func (p *panelImpl) ToggleFolder() bool {
	p.mu.Lock()
	var f *Folder
	if b := p.selectedLocked(); b != nil {
		f = b.folder
	} else if len(p.folders) > 0 {
		f = p.folders[0]
	}
	if f == nil {
		p.mu.Unlock()
		return false
	}
	f.open = !f.open
	p.mu.Unlock()
	p.bump()
	return true
}

func (p *panelImpl) ResetAll() {
	for _, f := range p.Folders() {
		for _, b := range f.Bindings() {
			b.Reset()
		}
	}
}

func (p *panelImpl) Version() uint64 {
	return p.version.Load()
}

func (p *panelImpl) bump() {
	p.version.Add(1)
}

func (p *panelImpl) move(dir int) {
	p.mu.Lock()
	vis := p.visibleLocked()
	if len(vis) == 0 {
		p.mu.Unlock()
		return
	}
	i := indexOf(vis, p.selectedLocked())
	i = (i + dir + len(vis)) % len(vis)
	p.selected = vis[i]
	p.mu.Unlock()
	p.bump()
}

func (p *panelImpl) visibleLocked() []*Binding {
	var out []*Binding
	for _, f := range p.folders {
		if f.open {
			out = append(out, f.bindings...)
		}
	}
	return out
}

// selectedLocked keeps the cursor on a visible binding, falling back to the first one.
func (p *panelImpl) selectedLocked() *Binding {
	vis := p.visibleLocked()
	if len(vis) == 0 {
		return nil
	}
	if p.selected != nil && indexOf(vis, p.selected) >= 0 {
		return p.selected
	}
	p.selected = vis[0]
	return p.selected
}

func indexOf(bs []*Binding, b *Binding) int {
	for i, x := range bs {
		if x == b {
			return i
		}
	}
	return -1
}
