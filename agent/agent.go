// Package agent implements the perception-decision loop: a Spotter describes
// the screen through a vision model, an Executor picks one action from a
// fixed vocabulary, and the Agent executes it as a synthetic key press.
// Failure never halts the loop; error text flows forward through the same
// channels as real observations so the next cycle can self-correct.
package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gillimo/agent-core/llm"
	"github.com/gillimo/agent-core/platform"
)

// keyMap translates vocabulary actions to platform key names. Unmapped
// actions fall back to the confirm key.
var keyMap = map[string]string{
	"UP":     "up",
	"DOWN":   "down",
	"LEFT":   "left",
	"RIGHT":  "right",
	"A":      "z",
	"B":      "x",
	"START":  "return",
	"SELECT": "space",
}

const fallbackKey = "z"

// Config assembles an Agent. Zero values pick the component defaults.
type Config struct {
	Endpoint        string
	SpotterModel    string
	ExecutorModel   string
	SpotterTimeout  time.Duration
	ExecutorTimeout time.Duration
	Logger          *zap.Logger

	// Core and Status come from platform.Detect when nil/zero. Tests
	// inject fakes here.
	Core   platform.Core
	Status *platform.Status

	// Client overrides the inference client built from Endpoint.
	Client *llm.Client

	// PromptOrder and ParseOrder override the default vocabularies used
	// when a StepRequest carries no explicit options. They are separate
	// on purpose: the legacy defaults differ between the two phases.
	PromptOrder Vocabulary
	ParseOrder  Vocabulary
}

// Agent composes one Spotter and one Executor into a single
// perceive-decide-act cycle and tracks the most recent observation and
// action. Instances share nothing; run one per goroutine for parallel loops.
type Agent struct {
	Spotter  *Spotter
	Executor *Executor

	core        platform.Core
	status      platform.Status
	transcript  *Transcript
	logger      *zap.Logger
	promptOrder Vocabulary
	parseOrder  Vocabulary

	lastObservation string
	lastAction      string
	lastRecordID    string
}

// New wires an Agent from configuration.
func New(cfg Config) *Agent {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	core := cfg.Core
	var status platform.Status
	if cfg.Status != nil {
		status = *cfg.Status
	}
	if core == nil {
		core, status = platform.Detect()
	}
	client := cfg.Client
	if client == nil {
		client = llm.NewClient(cfg.Endpoint, logger.Named("llm"))
	}

	spotter := NewSpotter(client, core, status, logger.Named("spotter"))
	if cfg.SpotterModel != "" {
		spotter.Model = cfg.SpotterModel
	}
	if cfg.SpotterTimeout > 0 {
		spotter.Timeout = cfg.SpotterTimeout
	}

	executor := NewExecutor(client, logger.Named("executor"))
	if cfg.ExecutorModel != "" {
		executor.Model = cfg.ExecutorModel
	}
	if cfg.ExecutorTimeout > 0 {
		executor.Timeout = cfg.ExecutorTimeout
	}

	return &Agent{
		Spotter:     spotter,
		Executor:    executor,
		core:        core,
		status:      status,
		transcript:  NewTranscript(),
		logger:      logger,
		promptOrder: cfg.PromptOrder,
		parseOrder:  cfg.ParseOrder,
	}
}

// StepRequest parameterizes one cycle. All fields are optional.
type StepRequest struct {
	Goal      string
	Context   map[string]any
	Options   Vocabulary
	SeePrompt string
}

// Step runs one complete perception-decision cycle and returns the chosen
// action. Observing strictly precedes deciding; the decision prompt is built
// from the observation's output. Explicit request options apply to both the
// prompt and the parse; when omitted, the configured prompt and parse orders
// each apply to their own phase. Sentinel error text from either model call
// flows into the next stage instead of halting the cycle.
func (a *Agent) Step(ctx context.Context, req StepRequest) string {
	observation := a.Spotter.See(ctx, req.SeePrompt, nil)
	a.lastObservation = observation

	situation := observation
	if len(req.Context) > 0 {
		situation = observation + "\nGame state: " + renderContext(req.Context)
	}

	decideOpts, parseOpts := req.Options, req.Options
	if len(req.Options) == 0 {
		decideOpts, parseOpts = a.promptOrder, a.parseOrder
	}
	decision := a.Executor.Decide(ctx, situation, decideOpts, req.Goal)
	action := a.Executor.ParseAction(decision, parseOpts)
	a.lastAction = action

	id := uuid.NewString()
	a.lastRecordID = id
	a.transcript.Append(Record{
		ID:          id,
		At:          time.Now(),
		Observation: observation,
		Decision:    decision,
		Action:      action,
		Source:      "step",
	})
	a.logger.Info("step complete",
		zap.String("action", action),
		zap.Int("observation_len", len(observation)))
	return action
}

// Execute presses the key mapped to the action name, case-insensitively.
// Unmapped names press the confirm key. Returns false when the platform core
// is unavailable or the press fails; there is no verification that the press
// had any effect.
func (a *Agent) Execute(action string) bool {
	if !a.status.Available {
		return false
	}
	key, ok := keyMap[strings.ToUpper(action)]
	if !ok {
		key = fallbackKey
	}
	if err := a.core.PressKey(key); err != nil {
		a.logger.Warn("key press failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if a.lastRecordID != "" {
		a.transcript.markExecuted(a.lastRecordID)
	}
	return true
}

// Status reports the platform availability fixed at construction.
func (a *Agent) Status() platform.Status { return a.status }

// LastObservation returns the most recent Spotter output.
func (a *Agent) LastObservation() string { return a.lastObservation }

// LastAction returns the most recent parsed action.
func (a *Agent) LastAction() string { return a.lastAction }

// Transcript exposes the bounded step history.
func (a *Agent) Transcript() *Transcript { return a.transcript }

// renderContext flattens caller context into a stable "k=v, k=v" line.
// Keys are sorted so identical context renders identically.
func renderContext(ctx map[string]any) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}
