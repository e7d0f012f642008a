package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/mesh"
)

// Object is anything that can live in a Scene. The scene assigns the ID on Add.
type Object interface {
	ID() uint64
	SetID(id uint64)
}

// Kind classifies scene objects for counting and filtering.
type Kind int

const (
	KindOther Kind = iota
	KindMesh
	KindLight
	KindHelper
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	case KindHelper:
		return "helper"
	default:
		return "other"
	}
}

// KindOf reports the Kind of obj.
func KindOf(obj Object) Kind {
	switch obj.(type) {
	case mesh.Mesh:
		return KindMesh
	case light.Light:
		return KindLight
	case *light.Helper:
		return KindHelper
	default:
		return KindOther
	}
}

type sceneImpl struct {
	mu     sync.RWMutex
	name   string
	cam    camera.Camera
	nextID uint64

	objects map[uint64]Object
	order   []uint64
}

// Scene is a flat, unordered set of objects plus the active camera. There is no hierarchy:
// every mesh, light and helper is a direct member. Objects keep the order they were added in
// when listed, which keeps draws deterministic.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Add inserts an object and assigns it the next ID. IDs start at 1 and are never reused.
	// Adding nil or an object that is already present returns its current ID without change.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the assigned object ID, 0 for nil
	Add(obj Object) uint64

	// Get retrieves an object by its ID.
	// Returns nil if not found.
	Get(id uint64) Object

	// Remove deletes an object by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - bool: true if an object was removed
	Remove(id uint64) bool

	// Clear removes all objects. The camera is kept.
	Clear()

	// Objects lists every object in insertion order.
	Objects() []Object

	// Count returns the total number of objects.
	Count() int

	// CountKind returns the number of objects of one kind.
	//
	// Parameters:
	//   - k: the kind to count
	//
	// Returns:
	//   - int: the number of matching objects
	CountKind(k Kind) int

	// Meshes lists the mesh objects in insertion order.
	Meshes() []mesh.Mesh

	// Lights lists the light objects in insertion order.
	Lights() []light.Light

	// Helpers lists the light helpers in insertion order.
	Helpers() []*light.Helper

	// ApplyTextures moves every loaded texture into its mesh material. Each texture handle is applied once;
	// pending and failed handles are skipped.
	//
	// Returns:
	//   - int: the number of maps applied by this call
	ApplyTextures() int
}

var _ Scene = &sceneImpl{}

// NewScene creates an empty Scene configured with the provided options.
//
// Parameters:
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &sceneImpl{
		objects: make(map[uint64]Object),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sceneImpl) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *sceneImpl) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *sceneImpl) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *sceneImpl) Add(obj Object) uint64 {
	if obj == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if id := obj.ID(); id != 0 {
		if existing, ok := s.objects[id]; ok && existing == obj {
			return id
		}
	}
	s.nextID++
	id := s.nextID
	obj.SetID(id)
	s.objects[id] = obj
	s.order = append(s.order, id)
	return id
}

func (s *sceneImpl) Get(id uint64) Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[id]
}

func (s *sceneImpl) Remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

func (s *sceneImpl) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[uint64]Object)
	s.order = nil
}

func (s *sceneImpl) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

func (s *sceneImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *sceneImpl) CountKind(k Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, obj := range s.objects {
		if KindOf(obj) == k {
			n++
		}
	}
	return n
}

func (s *sceneImpl) Meshes() []mesh.Mesh {
	return collect[mesh.Mesh](s)
}

func (s *sceneImpl) Lights() []light.Light {
	return collect[light.Light](s)
}

func (s *sceneImpl) Helpers() []*light.Helper {
	return collect[*light.Helper](s)
}

func (s *sceneImpl) ApplyTextures() int {
	applied := 0
	for _, m := range s.Meshes() {
		if mat := m.Material(); mat != nil {
			applied += mat.ApplyMaps()
		}
	}
	return applied
}

// collect returns the objects of type T in insertion order.
func collect[T any](s *sceneImpl) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.order {
		if v, ok := s.objects[id].(T); ok {
			out = append(out, v)
		}
	}
	return out
}
