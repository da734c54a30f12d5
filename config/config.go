// Package config loads agentcore.yaml. A missing file yields the built-in
// defaults; CLI flags override whatever is loaded.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gillimo/agent-core/agent"
	"github.com/gillimo/agent-core/llm"
)

// DefaultPath is the conventional config location in the working directory.
const DefaultPath = "agentcore.yaml"

// Config matches agentcore.yaml.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Spotter  ModelConfig   `yaml:"spotter"`
	Executor ModelConfig   `yaml:"executor"`
	Goal     string        `yaml:"goal"`
	Actions  ActionsConfig `yaml:"actions"`
	Logging  LoggingConfig `yaml:"logging"`
}

// ModelConfig identifies one model role and its call timeout.
type ModelConfig struct {
	Model   string   `yaml:"model"`
	Timeout Duration `yaml:"timeout"`
}

// Duration adds YAML support for "120s"-style values to time.Duration.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML accepts Go duration strings and bare second counts.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds float64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds * float64(time.Second)))
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as its Go string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// ActionsConfig overrides the action vocabulary. An empty parse order keeps
// the legacy parse-time default rather than mirroring the prompt order.
type ActionsConfig struct {
	PromptOrder []string `yaml:"prompt_order"`
	ParseOrder  []string `yaml:"parse_order"`
}

// LoggingConfig describes log output.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "console" or "json"
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint: llm.DefaultEndpoint,
		Spotter: ModelConfig{
			Model:   agent.DefaultSpotterModel,
			Timeout: Duration(agent.DefaultSpotterTimeout),
		},
		Executor: ModelConfig{
			Model:   agent.DefaultExecutorModel,
			Timeout: Duration(agent.DefaultExecutorTimeout),
		},
		Goal: agent.DefaultGoal,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the config at path, or returns defaults when the file does not
// exist. Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PromptOrder returns the configured prompt vocabulary or the default.
func (c *Config) PromptOrder() agent.Vocabulary {
	if len(c.Actions.PromptOrder) > 0 {
		return agent.Vocabulary(c.Actions.PromptOrder)
	}
	return agent.DefaultPromptOrder()
}

// ParseOrder returns the configured parse vocabulary or the default.
func (c *Config) ParseOrder() agent.Vocabulary {
	if len(c.Actions.ParseOrder) > 0 {
		return agent.Vocabulary(c.Actions.ParseOrder)
	}
	return agent.DefaultParseOrder()
}
