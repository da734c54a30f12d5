// Package platform defines the contract with the native capture/input core.
// The core itself (screen capture, OCR, synthetic key events) is an opaque
// collaborator; this package only fixes its call surface and makes its
// availability explicit so the agent loop can degrade without per-call
// existence checks.
package platform

// Core is the capability surface the agent loop exercises. The native core
// also exposes color/arrow/highlight detection, mouse control and raw text
// typing, but nothing in the loop orchestrates those.
type Core interface {
	// CaptureScreen grabs the full screen and returns width, height and the
	// RGBA pixel buffer.
	CaptureScreen() (int, int, []byte, error)
	// CaptureRegion grabs exactly the requested rectangle.
	CaptureRegion(x, y, width, height int) ([]byte, error)
	// OCRRegion extracts text from a sub-rectangle of a captured buffer.
	OCRRegion(pixels []byte, width, height, x, y, w, h int) (string, error)
	// PressKey delivers one synthetic key press by key name.
	PressKey(key string) error
}

// Status is the result of capability negotiation at construction time.
type Status struct {
	Available bool
	Reason    string
}

// Detect negotiates platform availability once, at construction. This build
// ships without a linked native core, so detection always reports the
// unavailable stub; callers get the same degraded-mode behavior they would
// see on a machine missing the native library.
func Detect() (Core, Status) {
	return Unavailable(), Status{
		Available: false,
		Reason:    "platform core not linked in this build",
	}
}

// Unavailable returns a Core whose every call fails with ErrUnavailable.
// It stands in for a missing native library and keeps the loop running in a
// degraded, always-fails mode instead of crashing.
func Unavailable() Core {
	return unavailableCore{}
}

// ErrUnavailable is returned by every method of the unavailable stub.
var ErrUnavailable = errUnavailable{}

type errUnavailable struct{}

func (errUnavailable) Error() string { return "platform core not available" }

type unavailableCore struct{}

func (unavailableCore) CaptureScreen() (int, int, []byte, error) {
	return 0, 0, nil, ErrUnavailable
}

func (unavailableCore) CaptureRegion(x, y, width, height int) ([]byte, error) {
	return nil, ErrUnavailable
}

func (unavailableCore) OCRRegion(pixels []byte, width, height, x, y, w, h int) (string, error) {
	return "", ErrUnavailable
}

func (unavailableCore) PressKey(key string) error {
	return ErrUnavailable
}
