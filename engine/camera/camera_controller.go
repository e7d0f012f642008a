package camera

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (position, target). Camera reads from controller
// and computes view/projection matrices. Embeds both orbitCameraController and
// planarCameraController, enabling orbit and planar controls to work simultaneously
// from a single controller instance.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Update advances damping, auto-rotation and queued zoom by one frame.
	// Must be called exactly once per rendered frame, before the camera reads the controller.
	//
	// Returns:
	//   - bool: true if position changed this frame
	Update() bool
}

// orbitCameraController defines orbit-specific control methods.
// Provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point. Pointer input queues angular deltas; Update applies them.
type orbitCameraController interface {
	// Rotate queues an orbit from a pointer drag. Dragging a full viewport height turns the camera
	// by 2*pi times the rotate speed. Dragging right turns the scene right (azimuth decreases);
	// dragging down raises the camera (elevation increases).
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	Rotate(dx, dy float32)

	// Zoom queues a multiplicative change of the orbit radius. Positive delta moves closer.
	//
	// Parameters:
	//   - delta: scroll steps; the radius is scaled by zoomScale^delta
	Zoom(delta float32)

	// SetViewportHeight sets the pixel height used to convert drag distance into angles.
	//
	// Parameters:
	//   - height: viewport height in pixels, ignored if not positive
	SetViewportHeight(height float32)

	// ViewportHeight returns the pixel height used for drag conversion.
	ViewportHeight() float32

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// Damping reports whether queued rotation eases out over several frames.
	//
	// Returns:
	//   - bool: true if damping is enabled
	Damping() bool

	// DampingFactor returns the fraction of the queued rotation applied per frame.
	//
	// Returns:
	//   - float32: the damping factor
	DampingFactor() float32

	// AutoRotate reports whether the camera circles the target on its own.
	//
	// Returns:
	//   - bool: true if auto-rotation is enabled
	AutoRotate() bool

	// Settled reports whether no rotation or zoom is queued.
	//
	// Returns:
	//   - bool: true once inertia has run out
	Settled() bool
}

// planarCameraController defines planar translation control methods.
// Provides first-person-style panning along the camera's local axes without
// changing orbit angles. Panning shifts both position and target by the same
// offset, preserving the orbit relationship.
type planarCameraController interface {
	// PanRight translates the camera along its local right axis.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates the camera along its local up axis.
	// Positive delta moves up, negative moves down.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates the camera along its local forward axis (dolly).
	// Positive delta moves toward the target, negative moves away.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32
}
