package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gillimo/agent-core/agent"
	"github.com/gillimo/agent-core/frame"
	"github.com/gillimo/agent-core/platform"
)

func newSeeCmd() *cobra.Command {
	var prompt string
	var regionSpec string
	cmd := &cobra.Command{
		Use:   "see",
		Short: "Capture the screen and print the vision model's description",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, a, err := loadRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var bounds *frame.Region
			if regionSpec != "" {
				r, err := parseRegion(regionSpec)
				if err != nil {
					return err
				}
				bounds = &r
			}
			cmd.Println(a.Spotter.See(cmd.Context(), prompt, bounds))
			return nil
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "Custom descriptive prompt")
	cmd.Flags().StringVar(&regionSpec, "region", "", "Capture region as x,y,width,height")
	return cmd
}

func newDecideCmd() *cobra.Command {
	var situation string
	var goal string
	var options []string
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Run one reasoning call over a situation and print the parsed action",
		RunE: func(cmd *cobra.Command, args []string) error {
			if situation == "" {
				return errors.New("--context is required")
			}
			cfg, logger, a, err := loadRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if goal == "" {
				goal = cfg.Goal
			}
			// Explicit options drive both phases; otherwise each phase
			// uses its configured order.
			promptOpts := agent.Vocabulary(options)
			parseOpts := promptOpts
			if len(options) == 0 {
				promptOpts = cfg.PromptOrder()
				parseOpts = cfg.ParseOrder()
			}
			raw := a.Executor.Decide(cmd.Context(), situation, promptOpts, goal)
			action := a.Executor.ParseAction(raw, parseOpts)
			cmd.Println(dimStyle.Render(raw))
			cmd.Println(actionStyle.Render(action))
			return nil
		},
	}
	cmd.Flags().StringVar(&situation, "context", "", "Situation description to reason over")
	cmd.Flags().StringVar(&goal, "goal", "", "Objective (defaults to the configured goal)")
	cmd.Flags().StringSliceVar(&options, "options", nil, "Action vocabulary override")
	return cmd
}

func newReadCmd() *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "read",
		Short: "OCR a conventional text box location from the screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, a, err := loadRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			core, status := platform.Detect()
			text, err := runRead(core, status, a.Transcript(), logger, location)
			if err != nil {
				return err
			}
			cmd.Println(text)
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "location", agent.LocationBottom, "Text box location: bottom, top or full")
	return cmd
}

// runRead captures the screen and OCRs one text box location. Successful
// reads land in the shared transcript.
func runRead(core platform.Core, status platform.Status, tr *agent.Transcript, logger *zap.Logger, location string) (string, error) {
	if !status.Available {
		return "", errors.New(status.Reason)
	}
	width, height, pixels, err := core.CaptureScreen()
	if err != nil {
		return "", err
	}
	f, err := frame.New(pixels, width, height)
	if err != nil {
		return "", err
	}
	reader := agent.NewTextReader(core, logger)
	reader.Transcript = tr
	return reader.ReadTextBox(f, location), nil
}

func newExecCmd() *cobra.Command {
	var action string
	var intentJSON string
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute one action or a validated action intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (action == "") == (intentJSON == "") {
				return errors.New("exactly one of --action or --intent is required")
			}
			_, logger, a, err := loadRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if action != "" {
				if !a.Execute(action) {
					return fmt.Errorf("execute %q failed", action)
				}
				cmd.Println(okStyle.Render("pressed"))
				return nil
			}

			intent, err := platform.ParseIntent([]byte(intentJSON))
			if err != nil {
				return err
			}
			if intent.Action != "press_key" {
				return fmt.Errorf("action %q is not orchestrated by this loop", intent.Action)
			}
			core, status := platform.Detect()
			if !status.Available {
				return errors.New(status.Reason)
			}
			if err := core.PressKey(intent.Key); err != nil {
				return err
			}
			cmd.Println(okStyle.Render("pressed"))
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "Vocabulary action name (UP, DOWN, A, ...)")
	cmd.Flags().StringVar(&intentJSON, "intent", "", "JSON action intent to validate and dispatch")
	return cmd
}

func parseRegion(spec string) (frame.Region, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return frame.Region{}, fmt.Errorf("region must be x,y,width,height, got %q", spec)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return frame.Region{}, fmt.Errorf("region component %q: %w", p, err)
		}
		vals[i] = v
	}
	return frame.Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}
