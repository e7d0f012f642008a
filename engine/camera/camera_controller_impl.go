package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/chewxy/math32"
)

// settleEpsilon is the queued delta below which inertia is considered finished.
const settleEpsilon = 1e-6

// cameraControllerImpl is the single implementation of CameraController.
// Supports both orbit and planar controls simultaneously. Orbit input is queued as pending
// spherical deltas and applied by Update; planar methods translate both position and target
// along local camera axes immediately, preserving the orbit relationship.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position common.Vec3
	target   common.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis, 0 = +Z
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Input scaling
	rotateSpeed    float32
	zoomScale      float32
	panSpeed       float32
	viewportHeight float32

	// Inertia
	damping         bool
	dampingFactor   float32
	autoRotate      bool
	autoRotateSpeed float32

	// Queued input, consumed by Update
	pendingAzimuth   float32
	pendingElevation float32
	pendingScale     float32

	// moved is set by direct setters and pans so the next Update reports a change.
	moved bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new orbit controller looking at the origin from (0, 0, 5).
// Damping is on with factor 0.01 and auto-rotation is off.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	const halfPi = float32(math.Pi / 2)
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    5.0,
		azimuth:   0.0,
		elevation: 0.0,

		minRadius:    0.01,
		maxRadius:    float32(math.Inf(1)),
		minElevation: -halfPi + settleEpsilon,
		maxElevation: halfPi - settleEpsilon,

		rotateSpeed:    1.0,
		zoomScale:      0.95,
		panSpeed:       0.1,
		viewportHeight: 720,

		damping:         true,
		dampingFactor:   0.01,
		autoRotate:      false,
		autoRotateSpeed: 2.0,

		pendingScale: 1,
	}

	for _, option := range options {
		option(cc)
	}

	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
	return cc
}

// NewOrbitController creates a new camera controller whose spherical coordinates reproduce
// the given eye position relative to target.
//
// Parameters:
//   - eye: initial camera position
//   - target: orbit pivot
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(eye, target common.Vec3, options ...CameraControllerOption) CameraController {
	offset := eye.Sub(target)
	radius := offset.Length()
	var azimuth, elevation float32
	if radius > 0 {
		azimuth = math32.Atan2(offset.X, offset.Z)
		elevation = math32.Asin(common.Clamp(offset.Y/radius, -1, 1))
	}
	opts := append([]CameraControllerOption{
		WithTarget(target.X, target.Y, target.Z),
		WithRadius(radius),
		WithAzimuth(azimuth),
		WithElevation(elevation),
	}, options...)
	return NewCameraController(opts...)
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	sinElev := math32.Sin(cc.elevation)
	cosAzim := math32.Cos(cc.azimuth)
	sinAzim := math32.Sin(cc.azimuth)

	cc.position.X = cc.target.X + cc.radius*cosElev*sinAzim
	cc.position.Y = cc.target.Y + cc.radius*sinElev
	cc.position.Z = cc.target.Z + cc.radius*cosElev*cosAzim
}

// localAxes computes the camera's local coordinate axes consistent with the LookAt matrix.
// If position and target coincide, all returned vectors are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward common.Vec3) {
	// backward matches LookAt's z-axis
	backward := cc.position.Sub(cc.target).Normalize()
	if backward == (common.Vec3{}) {
		return
	}
	right = common.V3(0, 1, 0).Cross(backward).Normalize()
	if right == (common.Vec3{}) {
		return common.Vec3{}, common.Vec3{}, common.Vec3{}
	}
	up = backward.Cross(right)
	forward = backward.Scale(-1)
	return
}

// settle zeroes a pending delta once it is too small to matter.
func settle(v float32) float32 {
	if math32.Abs(v) < settleEpsilon {
		return 0
	}
	return v
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position.X, cc.position.Y, cc.position.Z
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target.X, cc.target.Y, cc.target.Z
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target.Set(x, y, z)
	cc.updatePosition()
	cc.moved = true
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	before := cc.position
	if cc.autoRotate {
		// One revolution per minute at speed 1, assuming 60 frames per second.
		cc.pendingAzimuth -= 2 * math.Pi / 60 / 60 * cc.autoRotateSpeed
	}

	if cc.damping {
		cc.azimuth += cc.pendingAzimuth * cc.dampingFactor
		cc.elevation += cc.pendingElevation * cc.dampingFactor
		cc.pendingAzimuth = settle(cc.pendingAzimuth * (1 - cc.dampingFactor))
		cc.pendingElevation = settle(cc.pendingElevation * (1 - cc.dampingFactor))
	} else {
		cc.azimuth += cc.pendingAzimuth
		cc.elevation += cc.pendingElevation
		cc.pendingAzimuth, cc.pendingElevation = 0, 0
	}
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)

	if cc.pendingScale != 1 {
		cc.radius = common.Clamp(cc.radius*cc.pendingScale, cc.minRadius, cc.maxRadius)
		cc.pendingScale = 1
	}

	cc.updatePosition()
	moved := cc.moved || cc.position != before
	cc.moved = false
	return moved
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	perPixel := 2 * math.Pi / cc.viewportHeight * cc.rotateSpeed
	cc.pendingAzimuth -= dx * perPixel
	cc.pendingElevation += dy * perPixel
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingScale *= math32.Pow(cc.zoomScale, delta)
}

func (cc *cameraControllerImpl) SetViewportHeight(height float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if height > 0 {
		cc.viewportHeight = height
	}
}

func (cc *cameraControllerImpl) ViewportHeight() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.viewportHeight
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
	cc.moved = true
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
	cc.moved = true
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
	cc.moved = true
}

func (cc *cameraControllerImpl) Damping() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.damping
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) AutoRotate() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.autoRotate
}

func (cc *cameraControllerImpl) Settled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pendingAzimuth == 0 && cc.pendingElevation == 0 && cc.pendingScale == 1
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.translate(right.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.translate(up.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.translate(forward.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

// translate shifts position and target together. Caller must hold the mutex.
func (cc *cameraControllerImpl) translate(offset common.Vec3) {
	if offset == (common.Vec3{}) {
		return
	}
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
	cc.moved = true
}
