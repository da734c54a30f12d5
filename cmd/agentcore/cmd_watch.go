package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gillimo/agent-core/agent"
)

func newWatchCmd() *cobra.Command {
	var goal string
	var delay time.Duration
	var execute bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view over the perception-decision loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, a, err := loadRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if goal == "" {
				goal = cfg.Goal
			}
			m := newWatchModel(cmd.Context(), a, goal, parseDelay(delay), execute)
			program := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "", "Objective (defaults to the configured goal)")
	cmd.Flags().DurationVar(&delay, "delay", 2*time.Second, "Pause between automatic cycles")
	cmd.Flags().BoolVar(&execute, "execute", false, "Press the chosen key after each cycle")
	return cmd
}

type stepDoneMsg struct {
	action      string
	observation string
	executed    bool
}

type autoTickMsg struct{}

type watchModel struct {
	ctx     context.Context
	agent   *agent.Agent
	goal    string
	delay   time.Duration
	execute bool

	viewport viewport.Model
	ready    bool
	stepping bool
	auto     bool
	steps    int
}

var (
	watchTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	watchStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	watchActionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	watchErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newWatchModel(ctx context.Context, a *agent.Agent, goal string, delay time.Duration, execute bool) watchModel {
	return watchModel{
		ctx:     ctx,
		agent:   a,
		goal:    goal,
		delay:   delay,
		execute: execute,
	}
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) stepCmd() tea.Cmd {
	return func() tea.Msg {
		action := m.agent.Step(m.ctx, agent.StepRequest{Goal: m.goal})
		executed := false
		if m.execute {
			executed = m.agent.Execute(action)
		}
		return stepDoneMsg{
			action:      action,
			observation: m.agent.LastObservation(),
			executed:    executed,
		}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerH := 2
		footerH := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerH-footerH)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerH - footerH
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if !m.stepping {
				m.stepping = true
				return m, m.stepCmd()
			}
		case " ":
			m.auto = !m.auto
			if m.auto && !m.stepping {
				m.stepping = true
				return m, m.stepCmd()
			}
		case "c":
			m.agent.Transcript().Clear()
			m.refresh()
		}

	case stepDoneMsg:
		m.stepping = false
		m.steps++
		m.refresh()
		m.viewport.GotoBottom()
		if m.auto {
			return m, tea.Tick(m.delay, func(time.Time) tea.Msg { return autoTickMsg{} })
		}
		return m, nil

	case autoTickMsg:
		if m.auto && !m.stepping {
			m.stepping = true
			return m, m.stepCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *watchModel) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, rec := range m.agent.Transcript().Tail(100) {
		b.WriteString(watchStatusStyle.Render(rec.At.Format("15:04:05")))
		b.WriteString(" ")
		if strings.HasPrefix(rec.Observation, "Error: ") {
			b.WriteString(watchErrStyle.Render(rec.Observation))
		} else {
			b.WriteString(rec.Observation)
		}
		if rec.Action != "" {
			b.WriteString("\n  ")
			b.WriteString(watchActionStyle.Render("-> " + rec.Action))
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func (m watchModel) View() string {
	if !m.ready {
		return "starting..."
	}
	title := watchTitleStyle.Render("agentcore") + watchStatusStyle.Render(fmt.Sprintf("  goal: %s  steps: %d", m.goal, m.steps))
	mode := "manual"
	if m.auto {
		mode = fmt.Sprintf("auto (%s)", m.delay)
	}
	if m.stepping {
		mode += " · thinking"
	}
	footer := watchStatusStyle.Render(fmt.Sprintf("[s] step  [space] %s  [c] clear  [q] quit", mode))
	return title + "\n\n" + m.viewport.View() + "\n" + footer
}
