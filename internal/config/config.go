// Package config loads oaibatch settings from the optional YAML config
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey indicates no API credential is available.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable not set")

// Defaults for new requests.
const (
	DefaultModel           = "gpt-5.2-pro"
	DefaultSystemPrompt    = "You are a helpful assistant."
	DefaultMaxTokens       = 100000
	DefaultReasoningEffort = "xhigh"
)

// Config holds user-adjustable settings. The API key is deliberately
// not part of the file; credentials come from the environment only.
type Config struct {
	BaseURL         string `yaml:"base_url,omitempty"`
	Model           string `yaml:"model,omitempty"`
	SystemPrompt    string `yaml:"system_prompt,omitempty"`
	MaxTokens       int    `yaml:"max_tokens,omitempty"`
	ReasoningEffort string `yaml:"reasoning_effort,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Model:           DefaultModel,
		SystemPrompt:    DefaultSystemPrompt,
		MaxTokens:       DefaultMaxTokens,
		ReasoningEffort: DefaultReasoningEffort,
	}
}

// DefaultPath returns ~/.oaibatch/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".oaibatch", "config.yaml"), nil
}

// Load reads the config file at path, filling unset fields with
// defaults. A missing file yields the defaults; a malformed file is an
// error so that typos are not silently ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if fileCfg.BaseURL != "" {
		cfg.BaseURL = fileCfg.BaseURL
	}
	if fileCfg.Model != "" {
		cfg.Model = fileCfg.Model
	}
	if fileCfg.SystemPrompt != "" {
		cfg.SystemPrompt = fileCfg.SystemPrompt
	}
	if fileCfg.MaxTokens > 0 {
		cfg.MaxTokens = fileCfg.MaxTokens
	}
	if fileCfg.ReasoningEffort != "" {
		cfg.ReasoningEffort = fileCfg.ReasoningEffort
	}
	return cfg, nil
}

// APIKey returns the OpenAI credential from the environment.
func APIKey() (string, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

// NormalizeReasoningEffort maps a user-provided effort string to the
// value sent in the request's reasoning block. An empty return means
// the reasoning block is omitted entirely.
func NormalizeReasoningEffort(effort string) string {
	value := strings.ToLower(strings.TrimSpace(effort))
	switch value {
	case "", "none", "off", "false", "0", "disable", "disabled":
		return ""
	}
	return value
}
