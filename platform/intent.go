package platform

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Intent is a JSON action request as produced by external drivers of the
// native core. Validation happens before dispatch so a stale or malformed
// intent never reaches the input layer.
type Intent struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Text   string `json:"text,omitempty"`
	Button string `json:"button,omitempty"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`

	TimestampMS uint64 `json:"timestamp_ms,omitempty"`
	MaxAgeMS    uint64 `json:"max_age_ms,omitempty"`
	DeadlineMS  uint64 `json:"deadline_ms,omitempty"`
}

var allowedButtons = map[string]bool{
	"left":   true,
	"right":  true,
	"middle": true,
}

// ParseIntent decodes and validates a raw intent document.
func ParseIntent(raw []byte) (*Intent, error) {
	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	return &intent, nil
}

// Validate checks timing constraints and per-action required fields.
func (i *Intent) Validate() error {
	if strings.TrimSpace(i.Action) == "" {
		return fmt.Errorf("missing or invalid 'action'")
	}
	if err := i.validateTiming(); err != nil {
		return err
	}
	switch i.Action {
	case "press_key":
		if strings.TrimSpace(i.Key) == "" {
			return fmt.Errorf("missing or invalid 'key'")
		}
	case "type_text":
		if strings.TrimSpace(i.Text) == "" {
			return fmt.Errorf("missing or invalid 'text'")
		}
	case "move_mouse":
		if i.X == nil || i.Y == nil {
			return fmt.Errorf("missing or invalid coordinates")
		}
	case "click":
		if i.Button != "" && !allowedButtons[strings.ToLower(i.Button)] {
			return fmt.Errorf("invalid 'button'")
		}
		// Coordinates are optional for click, but must come as a pair.
		if (i.X == nil) != (i.Y == nil) {
			return fmt.Errorf("missing or invalid coordinates")
		}
	default:
		return fmt.Errorf("unknown action: %s", i.Action)
	}
	return nil
}

func (i *Intent) validateTiming() error {
	now := uint64(time.Now().UnixMilli())
	if i.DeadlineMS > 0 && now > i.DeadlineMS {
		return fmt.Errorf("deadline exceeded")
	}
	if i.TimestampMS > 0 && i.MaxAgeMS > 0 && now > i.TimestampMS && now-i.TimestampMS > i.MaxAgeMS {
		return fmt.Errorf("action intent too old")
	}
	return nil
}
