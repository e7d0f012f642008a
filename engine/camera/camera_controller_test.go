package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultControllerLooksFromPlusZ(t *testing.T) {
	cc := NewCameraController()
	x, y, z := cc.Position()
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, 5, z, 1e-6)
	assert.True(t, cc.Damping())
	assert.Equal(t, float32(0.01), cc.DampingFactor())
	assert.False(t, cc.AutoRotate())
	assert.True(t, cc.Settled())
}

func TestNewOrbitControllerRecoversEye(t *testing.T) {
	eye := common.V3(3, 4, 5)
	cc := NewOrbitController(eye, common.Vec3{})
	x, y, z := cc.Position()
	assert.InDelta(t, 3, x, 1e-5)
	assert.InDelta(t, 4, y, 1e-5)
	assert.InDelta(t, 5, z, 1e-5)
	assert.InDelta(t, math.Sqrt(50), cc.Radius(), 1e-5)
}

func TestDragIsMonotonicAndConverges(t *testing.T) {
	cc := NewCameraController(WithViewportHeight(720))

	// Drag right by 100 pixels, then release.
	cc.Rotate(100, 0)
	start := cc.Azimuth()

	prev := start
	frames, moving := 0, 0
	for ; frames < 10000 && !cc.Settled(); frames++ {
		cc.Update()
		az := cc.Azimuth()
		require.LessOrEqual(t, az, prev, "azimuth must only decrease after a rightward drag")
		if az < prev {
			moving++
		}
		prev = az
	}

	assert.Greater(t, moving, 1, "damping should spread the rotation over several frames")
	assert.Less(t, frames, 10000, "inertia must end in a finite number of frames")
	assert.True(t, cc.Settled())

	// Total rotation approaches the full drag angle.
	want := -2 * math.Pi * 100 / 720
	assert.InDelta(t, want, float64(cc.Azimuth()-start), 1e-3)

	// Once settled, further updates change nothing.
	assert.False(t, cc.Update())
}

func TestDragLeftIncreasesAzimuth(t *testing.T) {
	cc := NewCameraController()
	cc.Rotate(-50, 0)
	before := cc.Azimuth()
	require.True(t, cc.Update())
	assert.Greater(t, cc.Azimuth(), before)
}

func TestWithoutDampingAppliesAtOnce(t *testing.T) {
	cc := NewCameraController(WithDamping(false, 0), WithViewportHeight(100))
	cc.Rotate(25, 0)
	require.True(t, cc.Update())
	assert.InDelta(t, -math.Pi/2, cc.Azimuth(), 1e-5)
	assert.True(t, cc.Settled())
	assert.False(t, cc.Update())
}

func TestElevationClamped(t *testing.T) {
	cc := NewCameraController(WithDamping(false, 0), WithViewportHeight(100))
	cc.Rotate(0, 1000)
	cc.Update()
	assert.Less(t, cc.Elevation(), float32(math.Pi/2))
	assert.Greater(t, cc.Elevation(), float32(math.Pi/2-1e-3))

	cc.SetElevation(-10)
	assert.Greater(t, cc.Elevation(), float32(-math.Pi/2))
}

func TestZoom(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(1, 10))
	cc.Zoom(1)
	assert.False(t, cc.Settled())
	cc.Update()
	assert.InDelta(t, 5*0.95, cc.Radius(), 1e-5)

	cc.Zoom(-1000)
	cc.Update()
	assert.Equal(t, float32(10), cc.Radius())

	cc.Zoom(1000)
	cc.Update()
	assert.Equal(t, float32(1), cc.Radius())
}

func TestAutoRotate(t *testing.T) {
	cc := NewCameraController(WithAutoRotate(true, 1), WithDamping(false, 0))
	before := cc.Azimuth()
	assert.True(t, cc.Update())
	assert.InDelta(t, -2*math.Pi/3600, cc.Azimuth()-before, 1e-7)
}

func TestPanMovesTargetAndPosition(t *testing.T) {
	cc := NewCameraController(WithPanSpeed(1))
	cc.PanRight(2)
	tx, ty, tz := cc.Target()
	assert.InDelta(t, 2, tx, 1e-6)
	assert.InDelta(t, 0, ty, 1e-6)
	assert.InDelta(t, 0, tz, 1e-6)

	x, _, z := cc.Position()
	assert.InDelta(t, 2, x, 1e-6)
	assert.InDelta(t, 5, z, 1e-6)
	assert.True(t, cc.Update())

	cc.PanForward(1)
	_, _, tz = cc.Target()
	assert.InDelta(t, -1, tz, 1e-6)

	cc.PanUp(1)
	_, ty, _ = cc.Target()
	assert.InDelta(t, 1, ty, 1e-6)
	assert.Equal(t, float32(1), cc.PanSpeed())
}

func TestSetViewportHeightScalesDrag(t *testing.T) {
	cc := NewCameraController(WithDamping(false, 0))
	cc.SetViewportHeight(200)
	cc.SetViewportHeight(0) // ignored
	cc.Rotate(100, 0)
	cc.Update()
	assert.InDelta(t, -math.Pi, cc.Azimuth(), 1e-5)
}
