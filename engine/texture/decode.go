package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decoders maps sniffed content types to their decoder. Formats are never resolved through image.Decode:
// the tga package registers an empty magic string that would claim every file.
var decoders = map[types.Type]func(io.Reader) (image.Image, error){
	matchers.TypeJpeg: jpeg.Decode,
	matchers.TypePng:  png.Decode,
	matchers.TypeBmp:  bmp.Decode,
	matchers.TypeTiff: tiff.Decode,
	matchers.TypeWebp: webp.Decode,
}

// ErrNotImage is returned when a file's content is not a recognised image format.
var ErrNotImage = errors.New("not an image")

// Decode converts encoded image bytes into RGBA staging data, downscaling images whose larger side exceeds
// maxDim while keeping the aspect ratio. A maxDim of zero disables downscaling.
//
// Parameters:
//   - name: file name, used to recognise formats without a magic number (TGA)
//   - raw: the encoded file contents
//   - maxDim: the largest width or height the GPU accepts
//
// Returns:
//   - *common.TextureStagingData: RGBA pixels, 4 bytes per pixel, row-major
//   - error: ErrNotImage for non-image content, or the decoder error
func Decode(name string, raw []byte, maxDim int) (*common.TextureStagingData, error) {
	format, decode, err := decoderFor(name, raw)
	if err != nil {
		return nil, err
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s (%s): %w", name, format, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode %s (%s): empty image", name, format)
	}

	dst := image.Rect(0, 0, w, h)
	if maxDim > 0 && max(w, h) > maxDim {
		dst = fitWithin(w, h, maxDim)
	}

	rgba := image.NewRGBA(dst)
	if dst.Dx() == w && dst.Dy() == h {
		draw.Draw(rgba, dst, img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(rgba, dst, img, bounds, draw.Src, nil)
	}

	return &common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(dst.Dx()),
		Height: uint32(dst.Dy()),
	}, nil
}

// decoderFor picks the decoder from the file's magic number. TGA has no signature, so it is trusted by
// extension alone.
func decoderFor(name string, raw []byte) (string, func(io.Reader) (image.Image, error), error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		return "tga", tga.Decode, nil
	}
	kind, err := filetype.Match(raw)
	if err != nil || kind == filetype.Unknown {
		return "", nil, fmt.Errorf("%s: %w", name, ErrNotImage)
	}
	decode, ok := decoders[kind]
	if !ok {
		return "", nil, fmt.Errorf("%s: %w: unsupported format %s", name, ErrNotImage, kind.Extension)
	}
	return kind.Extension, decode, nil
}

// fitWithin returns the largest rectangle with the aspect of w x h whose sides are at most maxDim.
func fitWithin(w, h, maxDim int) image.Rectangle {
	if w >= h {
		return image.Rect(0, 0, maxDim, max(1, h*maxDim/w))
	}
	return image.Rect(0, 0, max(1, w*maxDim/h), maxDim)
}
