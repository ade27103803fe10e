// Package config loads and validates the chainkit YAML configuration:
// logging settings, metrics monitoring settings, and declarative chain
// definitions (ordered handler steps, optionally on a cron schedule).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nomis52/chainkit/logging"
)

const (
	// Default monitoring settings
	defaultMetricsPrefix = "chainkit"
	defaultJobName       = "chainkit"

	// Default logging settings
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
	defaultLogOutput = "stdout"
)

// Config represents the complete application configuration.
type Config struct {
	Logging    logging.Config   `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Chains     []ChainConfig    `yaml:"chains"`
}

// MonitoringConfig holds metrics settings. When RemoteWriteURL is empty,
// push-mode metrics are disabled.
type MonitoringConfig struct {
	RemoteWriteURL string `yaml:"remote_write_url"`
	MetricsPrefix  string `yaml:"metrics_prefix"`
	JobName        string `yaml:"jobname"`
}

// ChainConfig declares a single named chain: an ordered list of handler
// steps and an optional cron schedule. Guard conditions are code, not
// configuration, and are attached programmatically.
type ChainConfig struct {
	Name     string       `yaml:"name"`
	Schedule string       `yaml:"schedule"`
	Steps    []StepConfig `yaml:"steps"`
}

// StepConfig declares one handler step. Handler is the registry key;
// Result marks the step as a result-returning handler that goes through
// the result adapter.
type StepConfig struct {
	Handler string `yaml:"handler"`
	Result  bool   `yaml:"result"`
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Chains))
	for i, cc := range c.Chains {
		if cc.Name == "" {
			return fmt.Errorf("chain %d: name is required", i)
		}
		if seen[cc.Name] {
			return fmt.Errorf("chain %q: duplicate name", cc.Name)
		}
		seen[cc.Name] = true

		if len(cc.Steps) == 0 {
			return fmt.Errorf("chain %q: at least one step is required", cc.Name)
		}
		for j, step := range cc.Steps {
			if step.Handler == "" {
				return fmt.Errorf("chain %q step %d: handler is required", cc.Name, j)
			}
		}
	}
	return nil
}

// SetDefaults sets reasonable default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Monitoring.MetricsPrefix == "" {
		c.Monitoring.MetricsPrefix = defaultMetricsPrefix
	}
	if c.Monitoring.JobName == "" {
		c.Monitoring.JobName = defaultJobName
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Output == "" {
		c.Logging.Output = defaultLogOutput
	}
}

// LoadConfig reads the YAML config file at the given path and returns a
// Config struct.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
