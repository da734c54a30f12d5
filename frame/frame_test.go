package frame

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	for i := range pixels {
		pixels[i] = byte(i * 7 % 251)
	}
	// Opaque alpha so the encoder cannot premultiply anything away.
	for i := 3; i < len(pixels); i += 4 {
		pixels[i] = 0xff
	}
	return pixels
}

func TestNewRejectsShortBuffer(t *testing.T) {
	_, err := New(make([]byte, 10), 4, 4)
	var malformed *ErrMalformedFrame
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 64, malformed.Want)
	assert.Equal(t, 10, malformed.Got)
}

func TestEncodePNGRoundTrip(t *testing.T) {
	const width, height = 12, 9
	pixels := testPixels(width, height)
	f, err := New(pixels, width, height)
	require.NoError(t, err)

	encoded, err := EncodePNG(f)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	bounds := img.Bounds()
	require.Equal(t, width, bounds.Dx())
	require.Equal(t, height, bounds.Dy())

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}
	assert.Equal(t, pixels, rgba.Pix)
}

func TestEncodePNGMalformed(t *testing.T) {
	f := Frame{Pixels: make([]byte, 3), Width: 2, Height: 2}
	_, err := EncodePNG(f)
	var malformed *ErrMalformedFrame
	assert.ErrorAs(t, err, &malformed)
}

func TestFullRegion(t *testing.T) {
	f := Frame{Width: 100, Height: 80}
	assert.Equal(t, Region{X: 0, Y: 0, Width: 100, Height: 80}, f.Full())
}
