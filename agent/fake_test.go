package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gillimo/agent-core/platform"
)

// fakeCore is an in-memory platform core for tests.
type fakeCore struct {
	width, height int
	pixels        []byte
	captureErr    error

	ocrText string
	ocrErr  error
	ocrArgs []int

	pressed  []string
	pressErr error

	regionArgs []int
}

func newFakeCore(width, height int) *fakeCore {
	return &fakeCore{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
	}
}

func (c *fakeCore) CaptureScreen() (int, int, []byte, error) {
	if c.captureErr != nil {
		return 0, 0, nil, c.captureErr
	}
	return c.width, c.height, c.pixels, nil
}

func (c *fakeCore) CaptureRegion(x, y, width, height int) ([]byte, error) {
	if c.captureErr != nil {
		return nil, c.captureErr
	}
	c.regionArgs = []int{x, y, width, height}
	return make([]byte, width*height*4), nil
}

func (c *fakeCore) OCRRegion(pixels []byte, width, height, x, y, w, h int) (string, error) {
	c.ocrArgs = []int{width, height, x, y, w, h}
	if c.ocrErr != nil {
		return "", c.ocrErr
	}
	return c.ocrText, nil
}

func (c *fakeCore) PressKey(key string) error {
	if c.pressErr != nil {
		return c.pressErr
	}
	c.pressed = append(c.pressed, key)
	return nil
}

var errFakeCore = errors.New("fake core failure")

func availableStatus() *platform.Status {
	return &platform.Status{Available: true}
}

// backendReply captures what the stub backend saw in the last request.
type backendReply struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Stream bool     `json:"stream"`
	Images []string `json:"images"`
}

// stubBackend serves canned generate responses and records requests.
func stubBackend(t *testing.T, response func(req backendReply) (int, string)) (*httptest.Server, *[]backendReply) {
	t.Helper()
	var seen []backendReply
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req backendReply
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		seen = append(seen, req)
		status, body := response(req)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}
