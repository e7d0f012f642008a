package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	assert.Equal(t, LightTypePoint, l.Type())
	assert.Equal(t, [3]float32{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(0), l.Range())
	assert.True(t, l.Enabled())
}

func TestDirectionalPointsAtTarget(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(10, 10, 10), WithIntensity(3))
	d := l.Direction()
	inv := float32(1 / math.Sqrt(3))
	assert.InDelta(t, -inv, d.X, 1e-6)
	assert.InDelta(t, -inv, d.Y, 1e-6)
	assert.InDelta(t, -inv, d.Z, 1e-6)

	l.SetTarget(10, 0, 10)
	assert.Equal(t, common.V3(0, -1, 0), l.Direction())

	// Coincident position and target fall back to straight down.
	l.SetTarget(10, 10, 10)
	assert.Equal(t, common.V3(0, -1, 0), l.Direction())
}

func TestParseLightType(t *testing.T) {
	for _, lt := range []LightType{LightTypeDirectional, LightTypePoint, LightTypeAmbient} {
		got, ok := ParseLightType(lt.String())
		require.True(t, ok)
		assert.Equal(t, lt, got)
	}
	_, ok := ParseLightType("spot")
	assert.False(t, ok)
}

func TestMarshalLights(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeDirectional, WithPosition(10, 10, 10), WithIntensity(3)),
		NewLight(LightTypeAmbient, WithIntensity(0.5)),
		NewLight(LightTypeDirectional, WithPosition(5, 5, 5)),
		NewLight(LightTypePoint, WithPosition(-5, -5, -5)),
		NewLight(LightTypePoint, WithEnabled(false)),
	}
	buf, header := MarshalLights(lights)
	require.Len(t, buf, GPULightBlockSize)
	assert.Equal(t, uint32(3), header.LightCount)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, header.AmbientColor)

	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(buf[12:16]))
	// First slot is the bright directional light.
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[16+28:16+32])))
	// Third slot is the point light.
	assert.Equal(t, uint32(LightTypePoint), binary.LittleEndian.Uint32(buf[16+2*48+12:16+2*48+16]))
}

func TestMarshalLightsCapsSlots(t *testing.T) {
	lights := make([]Light, 0, MaxGPULights+3)
	for i := 0; i < MaxGPULights+3; i++ {
		lights = append(lights, NewLight(LightTypePoint))
	}
	_, header := MarshalLights(lights)
	assert.Equal(t, uint32(MaxGPULights), header.LightCount)
}

func TestGPULightSize(t *testing.T) {
	var g GPULight
	assert.Equal(t, 48, g.Size())
	assert.Len(t, g.Marshal(), 48)
	var h GPULightHeader
	assert.Equal(t, 16, h.Size())
}
