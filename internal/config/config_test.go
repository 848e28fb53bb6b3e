package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
anthropic:
  api_key: sk-ant-file-key-00000000
models:
  planner: planner-model
  agent: agent-model
temperatures:
  planning: 0.2
  execution: 0.9
bedrock:
  enabled: true
  region: us-west-2
agents:
  file: /etc/conductor/agents.yaml
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "sk-ant-file-key-00000000" {
		t.Errorf("APIKey = %q", cfg.Anthropic.APIKey)
	}
	if cfg.Models.Planner != "planner-model" || cfg.Models.Agent != "agent-model" {
		t.Errorf("Models = %+v", cfg.Models)
	}
	if cfg.Temperatures.Planning != 0.2 || cfg.Temperatures.Execution != 0.9 {
		t.Errorf("Temperatures = %+v", cfg.Temperatures)
	}
	if !cfg.Bedrock.Enabled || cfg.Bedrock.Region != "us-west-2" {
		t.Errorf("Bedrock = %+v", cfg.Bedrock)
	}
	if cfg.Agents.File != "/etc/conductor/agents.yaml" {
		t.Errorf("Agents.File = %q", cfg.Agents.File)
	}
}

func TestLoadFromPath_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Models.Planner != DefaultPlannerModel {
		t.Errorf("Planner = %q, want default", cfg.Models.Planner)
	}
	if cfg.Temperatures.Planning != DefaultPlanningTemperature {
		t.Errorf("Planning temperature = %g, want %g", cfg.Temperatures.Planning, DefaultPlanningTemperature)
	}
	if cfg.Temperatures.Execution != DefaultExecutionTemperature {
		t.Errorf("Execution temperature = %g, want %g", cfg.Temperatures.Execution, DefaultExecutionTemperature)
	}
	if cfg.Bedrock.Enabled {
		t.Error("Bedrock should be disabled by default")
	}
}

func TestLoadFromPath_ExpandsEnv(t *testing.T) {
	t.Setenv("CONDUCTOR_TEST_KEY", "sk-ant-from-env-0000000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "anthropic:\n  api_key: ${CONDUCTOR_TEST_KEY}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Anthropic.APIKey != "sk-ant-from-env-0000000" {
		t.Errorf("APIKey = %q, want expanded env value", cfg.Anthropic.APIKey)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Models.Planner != DefaultPlannerModel {
		t.Errorf("Planner = %q", cfg.Models.Planner)
	}
	if cfg.Temperatures.Planning != DefaultPlanningTemperature {
		t.Errorf("Planning = %g", cfg.Temperatures.Planning)
	}
}
