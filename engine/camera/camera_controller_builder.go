package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - CameraControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the orbit pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target.Set(x, y, z)
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: closest allowed distance to the target
//   - max: farthest allowed distance from the target
//
// Returns:
//   - CameraControllerOption: functional option to set the radius bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angle.
//
// Parameters:
//   - min: lowest elevation in radians
//   - max: highest elevation in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithRotateSpeed sets the drag-to-angle multiplier.
//
// Parameters:
//   - speed: 1 turns the camera by 2*pi per viewport height dragged
//
// Returns:
//   - CameraControllerOption: functional option to set the rotate speed
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithZoomScale sets the radius multiplier applied per scroll step.
//
// Parameters:
//   - scale: factor in (0, 1); smaller zooms faster
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom scale
func WithZoomScale(scale float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if scale > 0 {
			cc.zoomScale = scale
		}
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - CameraControllerOption: functional option to set the pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithDamping enables or disables inertial easing and sets its per-frame factor.
//
// Parameters:
//   - enabled: true to ease queued rotation over several frames
//   - factor: fraction of the queued rotation applied per frame, in (0, 1]
//
// Returns:
//   - CameraControllerOption: functional option to set damping
func WithDamping(enabled bool, factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.damping = enabled
		if factor > 0 && factor <= 1 {
			cc.dampingFactor = factor
		}
	}
}

// WithAutoRotate enables or disables automatic circling of the target.
//
// Parameters:
//   - enabled: true to auto-rotate
//   - speed: 1 is one revolution per minute at 60 frames per second
//
// Returns:
//   - CameraControllerOption: functional option to set auto-rotation
func WithAutoRotate(enabled bool, speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.autoRotate = enabled
		cc.autoRotateSpeed = speed
	}
}

// WithViewportHeight sets the initial viewport height in pixels.
//
// Parameters:
//   - height: the viewport height
//
// Returns:
//   - CameraControllerOption: functional option to set the viewport height
func WithViewportHeight(height float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if height > 0 {
			cc.viewportHeight = height
		}
	}
}
