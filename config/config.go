/*
   Copyright 2026 The Axisgate Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads faultline runtime settings from defaults, an optional
// configuration file and FAULTLINE_* environment variables, in ascending
// precedence. The resulting Config implements apis.Settings.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration. Values are fixed after Load;
// reload by constructing a new Config.
type Config struct {
	// Debug allows debug payloads on classifications, reports and
	// responses. Never enable in production.
	Debug bool `mapstructure:"debug"`

	// VerboseLogging turns on per-operation detail logging.
	VerboseLogging bool `mapstructure:"verbose_logging"`

	// ClassifierWindowSize is the classifier's latency sample window.
	ClassifierWindowSize int `mapstructure:"classifier_window_size"`

	// ValidatorWindowSize is the validator's latency sample window.
	ValidatorWindowSize int `mapstructure:"validator_window_size"`

	// HistoryCap bounds the completed-request history.
	HistoryCap int `mapstructure:"history_cap"`

	// SweepInterval is how often the tracking sweeper runs.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`

	// StaleAfter is the age past which an active request is presumed
	// abandoned.
	StaleAfter time.Duration `mapstructure:"stale_after"`

	// CorrelationCap bounds correlation entries per request.
	CorrelationCap int `mapstructure:"correlation_cap"`

	// SchemaDir, when set, is scanned for *.yaml schema documents at
	// startup.
	SchemaDir string `mapstructure:"schema_dir"`
}

// DebugMode implements apis.Settings.
func (c *Config) DebugMode() bool { return c.Debug }

// Verbose implements apis.Settings.
func (c *Config) Verbose() bool { return c.VerboseLogging }

// Load resolves the configuration. path may name a config file (YAML, TOML
// or JSON, by extension); empty path skips file loading. Environment
// variables override the file: FAULTLINE_DEBUG, FAULTLINE_HISTORY_CAP and
// so on.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("debug", false)
	v.SetDefault("verbose_logging", false)
	v.SetDefault("classifier_window_size", 100)
	v.SetDefault("validator_window_size", 1000)
	v.SetDefault("history_cap", 10000)
	v.SetDefault("sweep_interval", 5*time.Minute)
	v.SetDefault("stale_after", time.Hour)
	v.SetDefault("correlation_cap", 64)
	v.SetDefault("schema_dir", "")

	v.SetEnvPrefix("FAULTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.ClassifierWindowSize < 1 {
		return fmt.Errorf("classifier_window_size must be positive, got %d", c.ClassifierWindowSize)
	}
	if c.ValidatorWindowSize < 1 {
		return fmt.Errorf("validator_window_size must be positive, got %d", c.ValidatorWindowSize)
	}
	if c.HistoryCap < 1 {
		return fmt.Errorf("history_cap must be positive, got %d", c.HistoryCap)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval)
	}
	if c.StaleAfter <= 0 {
		return fmt.Errorf("stale_after must be positive, got %s", c.StaleAfter)
	}
	if c.CorrelationCap < 1 {
		return fmt.Errorf("correlation_cap must be positive, got %d", c.CorrelationCap)
	}
	return nil
}
