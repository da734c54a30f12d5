package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gillimo/agent-core/frame"
	"github.com/gillimo/agent-core/llm"
	"github.com/gillimo/agent-core/platform"
)

// DefaultSpotterModel is the vision model used when none is configured.
const DefaultSpotterModel = "moondream"

// DefaultSpotterTimeout bounds one vision call.
const DefaultSpotterTimeout = 120 * time.Second

// DefaultSeePrompt is sent when the caller supplies no prompt.
const DefaultSeePrompt = "Describe what you see on this screen. Be brief and specific."

// sentinelPlatformMissing flows forward when no platform core is linked.
const sentinelPlatformMissing = "Error: platform core not available"

// Spotter captures the screen and asks the vision model to describe it. It
// performs no interpretation of the model's answer; whatever text comes back
// (sentinel errors included) is stored and returned verbatim.
type Spotter struct {
	Model   string
	Timeout time.Duration

	client *llm.Client
	core   platform.Core
	status platform.Status
	logger *zap.Logger

	lastDescription string
}

// NewSpotter builds a Spotter with default model identity and timeout.
// Callers adjust the exported fields before first use if they need to.
func NewSpotter(client *llm.Client, core platform.Core, status platform.Status, logger *zap.Logger) *Spotter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Spotter{
		Model:   DefaultSpotterModel,
		Timeout: DefaultSpotterTimeout,
		client:  client,
		core:    core,
		status:  status,
		logger:  logger,
	}
}

// See captures the screen (or the given bounds), encodes it and asks the
// vision model for a description. Failures come back as error-text
// sentinels, never as raised errors: the loop is expected to keep moving.
func (s *Spotter) See(ctx context.Context, prompt string, bounds *frame.Region) string {
	if !s.status.Available {
		return sentinelPlatformMissing
	}

	var (
		f   frame.Frame
		err error
	)
	if bounds != nil {
		var pixels []byte
		pixels, err = s.core.CaptureRegion(bounds.X, bounds.Y, bounds.Width, bounds.Height)
		if err == nil {
			f, err = frame.New(pixels, bounds.Width, bounds.Height)
		}
	} else {
		var width, height int
		var pixels []byte
		width, height, pixels, err = s.core.CaptureScreen()
		if err == nil {
			f, err = frame.New(pixels, width, height)
		}
	}
	if err != nil {
		s.logger.Error("capture failed", zap.Error(err))
		return "Error: capture failed: " + err.Error()
	}

	encoded, err := frame.EncodePNG(f)
	if err != nil {
		// A malformed frame means the capture collaborator broke its
		// contract; log loudly but keep the loop alive.
		s.logger.Error("frame encode failed", zap.Error(err))
		return "Error: frame encode failed: " + err.Error()
	}

	if prompt == "" {
		prompt = DefaultSeePrompt
	}

	res := s.client.Generate(ctx, llm.GenerateRequest{
		Model:   s.Model,
		Prompt:  prompt,
		Images:  []string{encoded},
		Timeout: s.Timeout,
	})
	if res.Failed() {
		s.logger.Warn("vision call failed", zap.String("model", s.Model), zap.String("error", res.Err))
	}
	s.lastDescription = res.Sentinel()
	return s.lastDescription
}

// LastDescription returns the most recent description without re-capturing.
func (s *Spotter) LastDescription() string {
	return s.lastDescription
}
