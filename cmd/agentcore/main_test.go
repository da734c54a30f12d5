package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gillimo/agent-core/agent"
	"github.com/gillimo/agent-core/frame"
	"github.com/gillimo/agent-core/platform"
)

func TestParseRegion(t *testing.T) {
	r, err := parseRegion("10, 20,30,40")
	require.NoError(t, err)
	assert.Equal(t, frame.Region{X: 10, Y: 20, Width: 30, Height: 40}, r)

	_, err = parseRegion("10,20,30")
	assert.Error(t, err)
	_, err = parseRegion("a,b,c,d")
	assert.Error(t, err)
}

func TestParseContextPairs(t *testing.T) {
	ctx, err := parseContextPairs([]string{"hp=12", "zone=cave"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"hp": "12", "zone": "cave"}, ctx)

	ctx, err = parseContextPairs(nil)
	require.NoError(t, err)
	assert.Nil(t, ctx)

	_, err = parseContextPairs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseContextPairs([]string{"=x"})
	assert.Error(t, err)
}

func TestParseDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseDelay(-time.Second))
	assert.Equal(t, time.Second, parseDelay(time.Second))
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "agentcore")
}

func TestDecideUsesConfiguredOrders(t *testing.T) {
	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		prompts = append(prompts, payload.Prompt)
		_, _ = w.Write([]byte(`{"response":"xyz"}`))
	}))
	t.Cleanup(srv.Close)

	cfgPath := filepath.Join(t.TempDir(), "agentcore.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
endpoint: %s
actions:
  prompt_order: [UP, DOWN]
  parse_order: [UP, B]
`, srv.URL)), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"decide", "--context", "a fork in the road", "--config", cfgPath})
	require.NoError(t, root.Execute())

	// The prompt carried the configured prompt order; the unmatched reply
	// fell back to the configured parse order's last member.
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "AVAILABLE ACTIONS: UP, DOWN")
	assert.Contains(t, out.String(), "B")
}

type stubCore struct {
	text string
}

func (s stubCore) CaptureScreen() (int, int, []byte, error) {
	return 4, 4, make([]byte, 4*4*4), nil
}

func (s stubCore) CaptureRegion(x, y, width, height int) ([]byte, error) {
	return make([]byte, width*height*4), nil
}

func (s stubCore) OCRRegion(pixels []byte, width, height, x, y, w, h int) (string, error) {
	return s.text, nil
}

func (s stubCore) PressKey(key string) error { return nil }

func TestRunReadAppendsTranscript(t *testing.T) {
	tr := agent.NewTranscript()
	core := stubCore{text: "HELLO"}

	text, err := runRead(core, platform.Status{Available: true}, tr, zap.NewNop(), agent.LocationBottom)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", text)
	records := tr.Tail(0)
	require.Len(t, records, 1)
	assert.Equal(t, "HELLO", records[0].Observation)
	assert.Equal(t, "ocr", records[0].Source)
}

func TestRunReadUnavailablePlatform(t *testing.T) {
	_, err := runRead(stubCore{}, platform.Status{Available: false, Reason: "no core"}, agent.NewTranscript(), zap.NewNop(), agent.LocationFull)
	assert.ErrorContains(t, err, "no core")
}

func TestExecRequiresExactlyOneInput(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"exec"})
	assert.Error(t, root.Execute())

	root = newRootCmd()
	root.SetArgs([]string{"exec", "--action", "A", "--intent", "{}"})
	assert.Error(t, root.Execute())
}
