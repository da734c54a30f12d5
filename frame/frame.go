// Package frame holds the raw pixel data model shared by capture, OCR and
// vision encoding. Frames arrive from the platform core as RGBA buffers and
// are immutable once captured.
package frame

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// bytesPerPixel is fixed by the platform core capture format (RGBA).
const bytesPerPixel = 4

// Frame is a captured screen buffer plus its dimensions.
type Frame struct {
	Pixels []byte
	Width  int
	Height int
}

// Region is a sub-rectangle in frame coordinates. Bounds are a caller
// contract and are not validated here.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ErrMalformedFrame reports a pixel buffer whose length disagrees with the
// declared dimensions. This indicates a collaborator contract violation and
// is the one failure that should not be absorbed silently.
type ErrMalformedFrame struct {
	Want int
	Got  int
}

func (e *ErrMalformedFrame) Error() string {
	return fmt.Sprintf("malformed frame: expected %d bytes, got %d", e.Want, e.Got)
}

// New builds a Frame and checks the buffer length against the dimensions.
func New(pixels []byte, width, height int) (Frame, error) {
	want := width * height * bytesPerPixel
	if len(pixels) != want {
		return Frame{}, &ErrMalformedFrame{Want: want, Got: len(pixels)}
	}
	return Frame{Pixels: pixels, Width: width, Height: height}, nil
}

// Full returns the region covering the whole frame.
func (f Frame) Full() Region {
	return Region{X: 0, Y: 0, Width: f.Width, Height: f.Height}
}

// EncodePNG compresses the frame to PNG and returns it base64 encoded, ready
// to embed in a JSON inference request. The encoding is lossless: decoding
// the PNG reproduces the original pixel content exactly.
func EncodePNG(f Frame) (string, error) {
	want := f.Width * f.Height * bytesPerPixel
	if len(f.Pixels) != want {
		return "", &ErrMalformedFrame{Want: want, Got: len(f.Pixels)}
	}
	img := &image.RGBA{
		Pix:    f.Pixels,
		Stride: f.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("png encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
