// Package cli implements the voiceprint commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"voiceprint/internal/config"
	"voiceprint/internal/lexicon"
	"voiceprint/internal/logger"
	"voiceprint/internal/workspace"
)

var (
	configPath  string
	lexiconPath string
	verbose     bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "voiceprint",
	Short: "Profile a writer's style from sample texts",
	Long: "Computes stylometric metrics and a semantic signature over one or more writing samples " +
		"and turns them into signature traits, pitfalls and target ranges.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.voiceprint/config.toml)")
	RootCmd.PersistentFlags().StringVar(&lexiconPath, "lexicon", "", "YAML lexicon overrides (default: $VOICEPRINT_LEXICON)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every stage to stderr")
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		root, err := workspace.DefaultRoot()
		if err == nil {
			path = workspace.ConfigPath(root)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if lexiconPath != "" {
		cfg.LexiconPath = lexiconPath
	}
	return cfg, nil
}

func loadLexicon(cfg config.Config) (*lexicon.Lexicon, error) {
	if cfg.LexiconPath == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return lex, nil
}

// newLogger honours --verbose, then the config file's verbose setting.
func newLogger(cmd *cobra.Command, cfg config.Config) *logger.Logger {
	l := logger.New(cmd.ErrOrStderr(), verbose)
	if cfg.Verbose {
		l.SetVerbose(true)
	}
	return l
}

// readInput returns the named file, or stdin for "" and "-". An interactive
// terminal on stdin is treated as no input.
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name != "" && name != "-" {
		raw, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return string(raw), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no input: pass a file or pipe text on stdin")
		}
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(raw), nil
}
