package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.MaxTokens, DefaultMaxTokens)
	}
	if cfg.ReasoningEffort != DefaultReasoningEffort {
		t.Errorf("ReasoningEffort = %q, want %q", cfg.ReasoningEffort, DefaultReasoningEffort)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "model: o3-pro\nmax_tokens: 5000\nbase_url: http://localhost:8080\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "o3-pro" {
		t.Errorf("Model = %q, want o3-pro", cfg.Model)
	}
	if cfg.MaxTokens != 5000 {
		t.Errorf("MaxTokens = %d, want 5000", cfg.MaxTokens)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	// Unset fields keep their defaults.
	if cfg.SystemPrompt != DefaultSystemPrompt {
		t.Errorf("SystemPrompt = %q, want default", cfg.SystemPrompt)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model: [unclosed"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestAPIKeyMissing(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := APIKey()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	key, err := APIKey()
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key = %q", key)
	}
}

func TestNormalizeReasoningEffort(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"none", ""},
		{"NONE", ""},
		{"off", ""},
		{"false", ""},
		{"0", ""},
		{"disable", ""},
		{"disabled", ""},
		{"  none  ", ""},
		{"low", "low"},
		{"Medium", "medium"},
		{"HIGH", "high"},
		{"xhigh", "xhigh"},
	}
	for _, tc := range cases {
		if got := NormalizeReasoningEffort(tc.in); got != tc.want {
			t.Errorf("NormalizeReasoningEffort(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
