package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntentPressKey(t *testing.T) {
	intent, err := ParseIntent([]byte(`{"action":"press_key","key":"z"}`))
	require.NoError(t, err)
	assert.Equal(t, "press_key", intent.Action)
	assert.Equal(t, "z", intent.Key)
}

func TestParseIntentRejectsBadJSON(t *testing.T) {
	_, err := ParseIntent([]byte(`{not json`))
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestParseIntentRejectsUnknownAction(t *testing.T) {
	_, err := ParseIntent([]byte(`{"action":"teleport"}`))
	assert.ErrorContains(t, err, "unknown action")
}

func TestParseIntentRequiredFields(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"action":"press_key"}`, "missing or invalid 'key'"},
		{`{"action":"press_key","key":"   "}`, "missing or invalid 'key'"},
		{`{"action":"type_text"}`, "missing or invalid 'text'"},
		{`{"action":"move_mouse","x":10}`, "missing or invalid coordinates"},
		{`{"action":"click","x":10}`, "missing or invalid coordinates"},
		{`{"action":"click","button":"side"}`, "invalid 'button'"},
		{`{"action":""}`, "missing or invalid 'action'"},
	}
	for _, tc := range cases {
		_, err := ParseIntent([]byte(tc.raw))
		assert.ErrorContains(t, err, tc.want, "raw: %s", tc.raw)
	}
}

func TestParseIntentClickVariants(t *testing.T) {
	for _, raw := range []string{
		`{"action":"click"}`,
		`{"action":"click","button":"LEFT"}`,
		`{"action":"click","x":5,"y":7}`,
		`{"action":"move_mouse","x":0,"y":0}`,
	} {
		_, err := ParseIntent([]byte(raw))
		assert.NoError(t, err, "raw: %s", raw)
	}
}

func TestIntentTiming(t *testing.T) {
	now := time.Now().UnixMilli()

	_, err := ParseIntent([]byte(fmt.Sprintf(
		`{"action":"press_key","key":"z","deadline_ms":%d}`, now-1000)))
	assert.ErrorContains(t, err, "deadline exceeded")

	_, err = ParseIntent([]byte(fmt.Sprintf(
		`{"action":"press_key","key":"z","timestamp_ms":%d,"max_age_ms":100}`, now-5000)))
	assert.ErrorContains(t, err, "too old")

	_, err = ParseIntent([]byte(fmt.Sprintf(
		`{"action":"press_key","key":"z","timestamp_ms":%d,"max_age_ms":60000,"deadline_ms":%d}`,
		now, now+60000)))
	assert.NoError(t, err)
}

func TestUnavailableCore(t *testing.T) {
	core, status := Detect()
	assert.False(t, status.Available)
	assert.NotEmpty(t, status.Reason)

	_, _, _, err := core.CaptureScreen()
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = core.CaptureRegion(0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = core.OCRRegion(nil, 0, 0, 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, core.PressKey("z"), ErrUnavailable)
}
