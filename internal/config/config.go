// Package config handles configuration loading and management for Conductor.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default model and sampling settings.
const (
	// DefaultPlannerModel is the model used for goal decomposition.
	DefaultPlannerModel = "claude-sonnet-4-20250514"
	// DefaultAgentModel is the model used for agent execution.
	DefaultAgentModel = "claude-sonnet-4-20250514"
	// DefaultPlanningTemperature is the sampling temperature for planning.
	// Planning runs cooler than execution so plans stay structured.
	DefaultPlanningTemperature = 0.3
	// DefaultExecutionTemperature is the sampling temperature for agents.
	DefaultExecutionTemperature = 0.7
)

// Config holds all configuration for Conductor.
type Config struct {
	Anthropic    AnthropicConfig    `mapstructure:"anthropic"`
	Models       ModelsConfig       `mapstructure:"models"`
	Temperatures TemperaturesConfig `mapstructure:"temperatures"`
	Bedrock      BedrockConfig      `mapstructure:"bedrock"`
	Agents       AgentsConfig       `mapstructure:"agents"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// ModelsConfig holds model selection settings.
type ModelsConfig struct {
	// Planner is the model used for goal decomposition.
	Planner string `mapstructure:"planner"`
	// Agent is the default model for agent execution.
	Agent string `mapstructure:"agent"`
}

// TemperaturesConfig holds sampling temperature settings.
type TemperaturesConfig struct {
	// Planning is the temperature for the decomposition call.
	Planning float64 `mapstructure:"planning"`
	// Execution is the temperature for agent subtask calls.
	Execution float64 `mapstructure:"execution"`
}

// BedrockConfig holds AWS Bedrock settings as an alternative to the direct API.
type BedrockConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// AgentsConfig holds agent roster settings.
type AgentsConfig struct {
	// File is an optional path to a YAML roster of custom agents.
	File string `mapstructure:"file"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY)
// 2. Project config (.conductor.yaml in current directory or parent)
// 3. User config (~/.config/conductor/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Project config overrides user config
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("models.planner", cfg.Models.Planner)
	v.Set("models.agent", cfg.Models.Agent)
	v.Set("temperatures.planning", cfg.Temperatures.Planning)
	v.Set("temperatures.execution", cfg.Temperatures.Execution)
	v.Set("bedrock.enabled", cfg.Bedrock.Enabled)
	v.Set("bedrock.region", cfg.Bedrock.Region)
	v.Set("bedrock.profile", cfg.Bedrock.Profile)
	v.Set("agents.file", cfg.Agents.File)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("models.planner", DefaultPlannerModel)
	v.SetDefault("models.agent", DefaultAgentModel)
	v.SetDefault("temperatures.planning", DefaultPlanningTemperature)
	v.SetDefault("temperatures.execution", DefaultExecutionTemperature)
	v.SetDefault("bedrock.enabled", false)
	v.SetDefault("bedrock.region", "")
	v.SetDefault("bedrock.profile", "")
	v.SetDefault("agents.file", "")
}

// getUserConfigDir returns the XDG config directory for Conductor.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "conductor")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "conductor")
	}
	return filepath.Join(home, ".config", "conductor")
}

// findProjectConfig searches for .conductor.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".conductor.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			Planner: DefaultPlannerModel,
			Agent:   DefaultAgentModel,
		},
		Temperatures: TemperaturesConfig{
			Planning:  DefaultPlanningTemperature,
			Execution: DefaultExecutionTemperature,
		},
	}
}
