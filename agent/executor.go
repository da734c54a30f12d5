package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gillimo/agent-core/llm"
)

// DefaultExecutorModel is the reasoning model used when none is configured.
const DefaultExecutorModel = "phi3"

// DefaultExecutorTimeout bounds one reasoning call.
const DefaultExecutorTimeout = 60 * time.Second

// DefaultGoal is the fallback objective when the caller supplies none.
const DefaultGoal = "Make progress in the game."

const decidePromptFormat = `Based on this situation, decide what to do.

SITUATION: %s

GOAL: %s

AVAILABLE ACTIONS: %s

What single action should be taken? Reply with just the action name.`

// Executor turns a situation description plus a goal into one action from a
// fixed vocabulary. Decide returns the model's raw reply; ParseAction
// constrains it.
type Executor struct {
	Model   string
	Timeout time.Duration

	client *llm.Client
	logger *zap.Logger

	lastDecision string
}

// NewExecutor builds an Executor with default model identity and timeout.
func NewExecutor(client *llm.Client, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		Model:   DefaultExecutorModel,
		Timeout: DefaultExecutorTimeout,
		client:  client,
		logger:  logger,
	}
}

// Decide queries the reasoning model with a structured prompt and returns
// the raw reply text (or an error-text sentinel). No image is attached.
func (e *Executor) Decide(ctx context.Context, situation string, options Vocabulary, goal string) string {
	if len(options) == 0 {
		options = DefaultPromptOrder()
	}
	if goal == "" {
		goal = DefaultGoal
	}

	prompt := fmt.Sprintf(decidePromptFormat, situation, goal, options.Join())

	res := e.client.Generate(ctx, llm.GenerateRequest{
		Model:   e.Model,
		Prompt:  prompt,
		Timeout: e.Timeout,
	})
	if res.Failed() {
		e.logger.Warn("reasoning call failed", zap.String("model", e.Model), zap.String("error", res.Err))
	}
	e.lastDecision = res.Sentinel()
	return e.lastDecision
}

// ParseAction constrains a free-form reply to one vocabulary member. The
// scan is ordered first-match over options, not over the reply: when the
// reply mentions several actions, the one earliest in options wins. An empty
// reply, or one that names no option, falls back to the last member.
func (e *Executor) ParseAction(response string, options Vocabulary) string {
	if len(options) == 0 {
		options = DefaultParseOrder()
	}
	if response == "" {
		return options.Last()
	}
	upper := strings.ToUpper(response)
	for _, opt := range options {
		if strings.Contains(upper, opt) {
			return opt
		}
	}
	return options.Last()
}

// LastDecision returns the most recent raw reply without re-querying.
func (e *Executor) LastDecision() string {
	return e.lastDecision
}
