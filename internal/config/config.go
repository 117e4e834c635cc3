// Package config resolves runtime settings in three layers: built-in
// defaults, an optional TOML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"voiceprint/internal/xai"
)

const FileName = "config.toml"

type Config struct {
	// Workers bounds per-sample concurrency; 0 means one per CPU.
	Workers     int    `toml:"workers"`
	LexiconPath string `toml:"lexicon_path,omitempty"`
	// WindowWords > 0 cuts each input file into windows of that many words.
	WindowWords int `toml:"window_words"`
	// Verbose logs every stage, not only RISK lines.
	Verbose bool   `toml:"verbose"`
	Remote  Remote `toml:"remote"`
}

type Remote struct {
	Enabled       bool   `toml:"enabled"`
	BaseURL       string `toml:"base_url"`
	APIKey        string `toml:"api_key,omitempty"`
	Model         string `toml:"model"`
	TimeoutMs     int    `toml:"timeout_ms"`
	RatePerMinute int    `toml:"rate_per_minute"`
}

func Default() Config {
	return Config{
		Workers: 0,
		Remote: Remote{
			BaseURL:       xai.DefaultBaseURL,
			Model:         xai.DefaultModel,
			TimeoutMs:     8000,
			RatePerMinute: 30,
		},
	}
}

// Load applies path (when it exists) and then the environment on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	return ApplyEnv(cfg), nil
}

func ApplyEnv(cfg Config) Config {
	cfg.Workers = getenvInt("VOICEPRINT_WORKERS", cfg.Workers)
	cfg.LexiconPath = getenvString("VOICEPRINT_LEXICON", cfg.LexiconPath)
	cfg.WindowWords = getenvInt("VOICEPRINT_WINDOW_WORDS", cfg.WindowWords)
	cfg.Verbose = getenvBool("VOICEPRINT_VERBOSE", cfg.Verbose)
	cfg.Remote.APIKey = getenvString("XAI_API_KEY", cfg.Remote.APIKey)
	cfg.Remote.BaseURL = getenvString("VOICEPRINT_XAI_BASE_URL", cfg.Remote.BaseURL)
	cfg.Remote.Model = getenvString("VOICEPRINT_XAI_MODEL", cfg.Remote.Model)
	cfg.Remote.TimeoutMs = getenvInt("VOICEPRINT_EMBED_TIMEOUT_MS", cfg.Remote.TimeoutMs)
	cfg.Remote.RatePerMinute = getenvInt("VOICEPRINT_RATE_PER_MINUTE", cfg.Remote.RatePerMinute)
	cfg.Remote.Enabled = getenvBool("VOICEPRINT_REMOTE", cfg.Remote.Enabled || cfg.Remote.APIKey != "")
	return cfg
}

func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// RemoteReady reports whether a remote analyzer call can be attempted at all.
func (c Config) RemoteReady() bool {
	return c.Remote.Enabled && c.Remote.APIKey != "" && c.Remote.BaseURL != "" && c.Remote.Model != ""
}

func (r Remote) Timeout() time.Duration {
	if r.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

func getenvString(name, fallback string) string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return raw
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	return raw == "1" || raw == "true" || raw == "yes" || raw == "on"
}
