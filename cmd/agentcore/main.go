package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gillimo/agent-core/agent"
	"github.com/gillimo/agent-core/config"
	"github.com/gillimo/agent-core/observability"
)

var version = "dev"

var (
	flagConfig        string
	flagEndpoint      string
	flagSpotterModel  string
	flagExecutorModel string
	flagLogLevel      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agentcore",
		Short: "Perception-decision loop for driving a screen with local models",
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", envOrDefault("AGENTCORE_CONFIG", config.DefaultPath), "Configuration file")
	root.PersistentFlags().StringVar(&flagEndpoint, "endpoint", envOrDefault("OLLAMA_ENDPOINT", ""), "Inference backend endpoint")
	root.PersistentFlags().StringVar(&flagSpotterModel, "spotter-model", envOrDefault("AGENTCORE_SPOTTER_MODEL", ""), "Vision model identity")
	root.PersistentFlags().StringVar(&flagExecutorModel, "executor-model", envOrDefault("AGENTCORE_EXECUTOR_MODEL", ""), "Reasoning model identity")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Override configured log level")

	root.AddCommand(newSeeCmd(), newDecideCmd(), newStepCmd(), newReadCmd(), newExecCmd(), newWatchCmd(), newVersionCmd())
	return root
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadRuntime resolves config plus flag overrides and builds the shared
// logger and agent.
func loadRuntime() (*config.Config, *zap.Logger, *agent.Agent, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	if flagEndpoint != "" {
		cfg.Endpoint = flagEndpoint
	}
	if flagSpotterModel != "" {
		cfg.Spotter.Model = flagSpotterModel
	}
	if flagExecutorModel != "" {
		cfg.Executor.Model = flagExecutorModel
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}

	logger := observability.NewLogger(cfg.Logging)
	a := agent.New(agent.Config{
		Endpoint:        cfg.Endpoint,
		SpotterModel:    cfg.Spotter.Model,
		ExecutorModel:   cfg.Executor.Model,
		SpotterTimeout:  cfg.Spotter.Timeout.Std(),
		ExecutorTimeout: cfg.Executor.Timeout.Std(),
		Logger:          logger,
		PromptOrder:     cfg.PromptOrder(),
		ParseOrder:      cfg.ParseOrder(),
	})
	return cfg, logger, a, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the agentcore version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("agentcore " + version)
		},
	}
}

// parseDelay guards the loop delay flag against negative values.
func parseDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
