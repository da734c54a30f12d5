package agent

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gillimo/agent-core/frame"
	"github.com/gillimo/agent-core/platform"
)

// Text box locations understood by SelectRegion.
const (
	LocationBottom = "bottom"
	LocationTop    = "top"
	LocationFull   = "full"
)

// TextReader extracts on-screen text through the platform core's OCR
// capability. Region selection uses edge-anchored quartile heuristics:
// dialogue and status text conventionally hugs the top or bottom of the
// screen, which avoids per-application layout knowledge.
type TextReader struct {
	// Transcript, when set, records every non-empty successful read.
	Transcript *Transcript

	core   platform.Core
	logger *zap.Logger
}

// NewTextReader builds a reader over the given platform core.
func NewTextReader(core platform.Core, logger *zap.Logger) *TextReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextReader{core: core, logger: logger}
}

// SelectRegion maps a named location to a frame sub-rectangle. "bottom" and
// "top" each cover the full width at a quarter of the frame height, anchored
// to their edge; any other value yields the whole frame.
func SelectRegion(f frame.Frame, location string) frame.Region {
	regionH := f.Height / 4
	switch location {
	case LocationBottom:
		return frame.Region{X: 0, Y: f.Height - regionH, Width: f.Width, Height: regionH}
	case LocationTop:
		return frame.Region{X: 0, Y: 0, Width: f.Width, Height: regionH}
	default:
		return f.Full()
	}
}

// Read extracts text from one region of the frame. OCR failures become an
// error-text sentinel, never a raised error.
func (r *TextReader) Read(f frame.Frame, reg frame.Region) string {
	text, err := r.core.OCRRegion(f.Pixels, f.Width, f.Height, reg.X, reg.Y, reg.Width, reg.Height)
	if err != nil {
		r.logger.Warn("ocr failed", zap.Error(err))
		return "OCR Error: " + err.Error()
	}
	if r.Transcript != nil && strings.TrimSpace(text) != "" {
		r.Transcript.Append(Record{
			ID:          uuid.NewString(),
			At:          time.Now(),
			Observation: text,
			Source:      "ocr",
		})
	}
	return text
}

// ReadTextBox reads a conventional text box location from the frame.
func (r *TextReader) ReadTextBox(f frame.Frame, location string) string {
	return r.Read(f, SelectRegion(f, location))
}
