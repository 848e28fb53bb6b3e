package config

import (
	"errors"
	"testing"
)

func TestGetAPIKey_ExplicitWins(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env-key-00000000")

	cfg := &Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-cfg-key-00000000"}}
	key, err := GetAPIKey("sk-ant-explicit-0000000", cfg)
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if key != "sk-ant-explicit-0000000" {
		t.Errorf("key = %q, explicit key must take precedence", key)
	}
}

func TestGetAPIKey_EnvOverConfig(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env-key-00000000")

	cfg := &Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-cfg-key-00000000"}}
	key, err := GetAPIKey("", cfg)
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if key != "sk-ant-env-key-00000000" {
		t.Errorf("key = %q, env must beat config", key)
	}
}

func TestGetAPIKey_ConfigFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := &Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-cfg-key-00000000"}}
	key, err := GetAPIKey("", cfg)
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if key != "sk-ant-cfg-key-00000000" {
		t.Errorf("key = %q", key)
	}
}

func TestGetAPIKey_NoneIsError(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := GetAPIKey("", &Config{})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got %v", err)
	}

	_, err = GetAPIKey("", nil)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey with nil config, got %v", err)
	}
}

func TestGetAPIKey_UnexpandedReferenceIgnored(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := &Config{Anthropic: AnthropicConfig{APIKey: "${UNSET_CONDUCTOR_VAR}"}}
	_, err := GetAPIKey("", cfg)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Unexpanded reference should not count as a key, got %v", err)
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "sk-ant-REDACTED", false},
		{"empty", "", true},
		{"wrong prefix", "sk-openai-0123456789abcdef", true},
		{"too short", "sk-ant-x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKey(%q) error = %v, wantErr %t", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := MaskAPIKey(""); got != "(not set)" {
		t.Errorf("MaskAPIKey(empty) = %q", got)
	}
	if got := MaskAPIKey("short"); got != "***" {
		t.Errorf("MaskAPIKey(short) = %q", got)
	}

	masked := MaskAPIKey("sk-ant-REDACTED")
	if masked != "sk-ant-...cdef" {
		t.Errorf("MaskAPIKey = %q", masked)
	}
}

func TestGetAPIKeySource(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if src := GetAPIKeySource("sk-ant-x-00000000000000", nil); src != KeySourceFlag {
		t.Errorf("source = %s, want flag", src)
	}
	if src := GetAPIKeySource("", nil); src != KeySourceNone {
		t.Errorf("source = %s, want none", src)
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env-00000000000")
	if src := GetAPIKeySource("", nil); src != KeySourceEnv {
		t.Errorf("source = %s, want environment", src)
	}
}
