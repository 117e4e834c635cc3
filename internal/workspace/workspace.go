package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"voiceprint/internal/config"
)

const BaseDirName = ".voiceprint"

// DefaultRoot is ~/.voiceprint, or $VOICEPRINT_HOME when set.
func DefaultRoot() (string, error) {
	if env := os.Getenv("VOICEPRINT_HOME"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, BaseDirName), nil
}

func EnsureDefault() (string, error) {
	base, err := DefaultRoot()
	if err != nil {
		return "", err
	}
	return EnsureAt(base)
}

// EnsureAt creates the workspace layout under base and writes a default
// config.toml if none exists yet.
func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "logs"),
		filepath.Join(base, "profiles"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	configPath := ConfigPath(base)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		raw, marshalErr := config.Marshal(config.Default())
		if marshalErr != nil {
			return "", fmt.Errorf("marshal config: %w", marshalErr)
		}
		if writeErr := os.WriteFile(configPath, raw, 0o644); writeErr != nil {
			return "", fmt.Errorf("write config: %w", writeErr)
		}
	}

	return base, nil
}

func ConfigPath(base string) string {
	return filepath.Join(base, config.FileName)
}

func LogsDir(base string) string {
	return filepath.Join(base, "logs")
}
