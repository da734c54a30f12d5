package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gillimo/agent-core/agent"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	actionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func newStepCmd() *cobra.Command {
	var goal string
	var contextPairs []string
	var options []string
	var seePrompt string
	var steps int
	var delay time.Duration
	var execute bool
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Run perception-decision cycles and print each chosen action",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, a, err := loadRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if goal == "" {
				goal = cfg.Goal
			}
			stepCtx, err := parseContextPairs(contextPairs)
			if err != nil {
				return err
			}
			if steps < 1 {
				steps = 1
			}
			delay = parseDelay(delay)

			for i := 0; i < steps; i++ {
				if i > 0 && delay > 0 {
					time.Sleep(delay)
				}
				action := a.Step(cmd.Context(), agent.StepRequest{
					Goal:      goal,
					Context:   stepCtx,
					Options:   agent.Vocabulary(options),
					SeePrompt: seePrompt,
				})
				cmd.Println(headerStyle.Render(fmt.Sprintf("step %d/%d", i+1, steps)))
				cmd.Println(dimStyle.Render(a.LastObservation()))
				cmd.Println(actionStyle.Render("-> " + action))
				if execute && !a.Execute(action) {
					cmd.Println(errStyle.Render("execute failed (platform unavailable?)"))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "", "Objective (defaults to the configured goal)")
	cmd.Flags().StringSliceVar(&contextPairs, "context", nil, "Extra context as key=value pairs")
	cmd.Flags().StringSliceVar(&options, "options", nil, "Action vocabulary override")
	cmd.Flags().StringVar(&seePrompt, "see-prompt", "", "Custom prompt for the vision call")
	cmd.Flags().IntVar(&steps, "steps", 1, "Number of cycles to run")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Pause between cycles")
	cmd.Flags().BoolVar(&execute, "execute", false, "Press the chosen key after each cycle")
	return cmd
}

func parseContextPairs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, found := strings.Cut(p, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("context entry %q is not key=value", p)
		}
		out[key] = value
	}
	return out, nil
}
