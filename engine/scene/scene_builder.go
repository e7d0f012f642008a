package scene

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
)

// SceneBuilderOption is a functional option for configuring a Scene via NewScene.
type SceneBuilderOption func(*sceneImpl)

// WithName is an option builder that sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: a function that applies the name option to a scene
func WithName(name string) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.name = name
	}
}

// WithCamera is an option builder that sets the scene's camera.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: a function that applies the camera option to a scene
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.cam = cam
	}
}
