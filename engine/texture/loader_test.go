package texture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solid(w, h int, c color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h, c), &jpeg.Options{Quality: 100}))
	return buf.Bytes()
}

// stopCountingPool records Stop calls on a real pool.
type stopCountingPool struct {
	worker.DynamicWorkerPool
	stops atomic.Int32
}

func (p *stopCountingPool) Stop() {
	p.stops.Add(1)
	p.DynamicWorkerPool.Stop()
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoaderLoadsPNG(t *testing.T) {
	fsys := fstest.MapFS{
		"text/color.png": {Data: encodePNG(t, 4, 2, color.RGBA{R: 255, A: 255})},
	}
	l := NewLoader(WithFS(fsys), WithWorkers(2))
	defer l.Close()

	h := l.Load("text/color.png")
	data, err := h.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, uint32(4), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.True(t, data.Valid())
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[:4])
	assert.Equal(t, StateLoaded, h.State())
}

func TestLoaderLoadsJPEG(t *testing.T) {
	fsys := fstest.MapFS{
		"text/color.jpg": {Data: encodeJPEG(t, 16, 8, color.RGBA{R: 200, G: 120, B: 40, A: 255})},
	}
	l := NewLoader(WithFS(fsys))
	defer l.Close()

	h := l.Load("text/color.jpg")
	data, err := h.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, uint32(16), data.Width)
	assert.Equal(t, uint32(8), data.Height)
	assert.True(t, data.Valid())
	assert.InDelta(t, 200, data.Pixels[0], 4)
	assert.InDelta(t, 120, data.Pixels[1], 4)
	assert.InDelta(t, 40, data.Pixels[2], 4)
	assert.Equal(t, byte(255), data.Pixels[3])
	assert.Equal(t, StateLoaded, h.State())
}

func TestDecodeFormats(t *testing.T) {
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	var tgaBuf bytes.Buffer
	require.NoError(t, tga.Encode(&tgaBuf, solid(3, 2, c)))

	tests := []struct {
		name string
		raw  []byte
	}{
		{"text/normal.png", encodePNG(t, 3, 2, c)},
		{"text/normal.jpg", encodeJPEG(t, 3, 2, c)},
		{"text/normal.tga", tgaBuf.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Decode(tt.name, tt.raw, 0)
			require.NoError(t, err)
			assert.Equal(t, uint32(3), data.Width)
			assert.Equal(t, uint32(2), data.Height)
			assert.InDelta(t, 10, data.Pixels[0], 4)
			assert.InDelta(t, 20, data.Pixels[1], 4)
			assert.InDelta(t, 30, data.Pixels[2], 4)
		})
	}
}

func TestDecodeRejectsUnsupportedImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black}), nil))

	_, err := Decode("text/color.gif", buf.Bytes(), 0)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(WithFS(fstest.MapFS{}))
	defer l.Close()

	h := l.Load("text/normal.jpg")
	_, err := h.Wait(waitCtx(t))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, StateFailed, h.State())
}

func TestLoaderRejectsNonImage(t *testing.T) {
	fsys := fstest.MapFS{"text/roughness.jpg": {Data: []byte("definitely not a jpeg")}}
	l := NewLoader(WithFS(fsys))
	defer l.Close()

	_, err := l.Load("text/roughness.jpg").Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoaderOnSettledAndPending(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": {Data: encodePNG(t, 1, 1, color.RGBA{A: 255})},
		"b.png": {Data: encodePNG(t, 1, 1, color.RGBA{A: 255})},
	}
	var settled atomic.Int32
	l := NewLoader(WithFS(fsys), WithOnSettled(func(*Handle) { settled.Add(1) }))

	a, b := l.Load("a.png"), l.Load("b.png")
	l.Close()

	assert.Equal(t, StateLoaded, a.State())
	assert.Equal(t, StateLoaded, b.State())
	assert.Equal(t, int32(2), settled.Load())
	assert.Equal(t, 0, l.Pending())
}

func TestLoaderClosed(t *testing.T) {
	l := NewLoader(WithFS(fstest.MapFS{}))
	l.Close()

	h := l.Load("a.png")
	assert.Equal(t, StateFailed, h.State())
	assert.ErrorIs(t, h.Err(), ErrClosed)
}

func TestLoaderCloseStopsPoolOnce(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: encodePNG(t, 1, 1, color.RGBA{A: 255})}}
	l := NewLoader(WithFS(fsys)).(*loader)
	pool := &stopCountingPool{DynamicWorkerPool: l.pool}
	l.pool = pool

	h := l.Load("a.png")
	l.Close()
	l.Close()

	assert.Equal(t, StateLoaded, h.State())
	assert.Equal(t, int32(1), pool.stops.Load())
}

func TestDecodeDownscales(t *testing.T) {
	raw := encodePNG(t, 64, 16, color.RGBA{G: 255, A: 255})
	data, err := Decode("big.png", raw, 32)
	require.NoError(t, err)
	assert.Equal(t, uint32(32), data.Width)
	assert.Equal(t, uint32(8), data.Height)
	assert.True(t, data.Valid())
}

func TestDecodeKeepsSmallImages(t *testing.T) {
	raw := encodePNG(t, 8, 8, color.RGBA{B: 255, A: 255})
	data, err := Decode("small.png", raw, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), data.Width)
	assert.Equal(t, uint32(8), data.Height)
}

func TestFitWithin(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 4096, 2048), fitWithin(8192, 4096, 4096))
	assert.Equal(t, image.Rect(0, 0, 1024, 4096), fitWithin(2048, 8192, 4096))
	assert.Equal(t, image.Rect(0, 0, 1, 10), fitWithin(1, 1000, 10))
}
