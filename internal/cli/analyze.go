package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"voiceprint/internal/analysis"
	"voiceprint/internal/chunk"
	"voiceprint/internal/logger"
	"voiceprint/internal/workspace"
)

var (
	analyzeFormat  string
	analyzeOffline bool
	analyzeSave    bool
	analyzeProfile string
	analyzeWorkers int
	analyzeWindow  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE...]",
	Short: "Build a voiceprint from writing samples",
	Long: "Build a voiceprint from writing samples. Each file is one sample; inside a file or on stdin, " +
		"a line holding only --- starts a new sample. With no files, samples are read from stdin.",
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "Output format: json or text")
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "Never call the remote analyzer")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the report into the workspace")
	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", workspace.DefaultProfile, "Workspace profile to save under")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "Concurrent sample workers (default: config or one per CPU)")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "Cut each input into windows of N words instead of splitting on ---")

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFormat != "json" && analyzeFormat != "text" {
		return fmt.Errorf("unknown format %q (want json or text)", analyzeFormat)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeOffline {
		cfg.Remote.Enabled = false
	}
	if analyzeWorkers > 0 {
		cfg.Workers = analyzeWorkers
	}
	if analyzeWindow > 0 {
		cfg.WindowWords = analyzeWindow
	}
	lex, err := loadLexicon(cfg)
	if err != nil {
		return err
	}

	segments, err := readSamples(cmd, args, cfg.WindowWords)
	if err != nil {
		return err
	}

	log := newLogger(cmd, cfg)
	var profile *workspace.ProfileInfo
	if analyzeSave {
		root, err := workspace.EnsureDefault()
		if err != nil {
			return err
		}
		if archive, err := logger.OpenArchive(workspace.LogsDir(root), time.Now()); err == nil {
			defer archive.Close()
			log.SetArchive(archive)
		} else {
			log.Log(logger.LevelRisk, "WORKSPACE", "Session log unavailable", err.Error())
		}
		if profile, err = workspace.CreateProfile(root, analyzeProfile); err != nil {
			return err
		}
	}

	embedder := analysis.NewEmbedder(cfg, lex, log)
	report := analysis.Analyze(cmd.Context(), analysis.Input{Samples: segments}, analysis.Config{
		Workers: cfg.Workers,
		Lexicon: lex,
	}, embedder, log)

	if profile != nil {
		path, err := profile.SaveReport(report.RunID, report)
		if err != nil {
			return err
		}
		log.Log(logger.LevelInfo, "WORKSPACE", "Report saved", path)
		fmt.Fprintln(cmd.ErrOrStderr(), "saved", path)
	}

	out := cmd.OutOrStdout()
	if analyzeFormat == "text" {
		_, err := fmt.Fprintln(out, renderReport(report))
		return err
	}
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func readSamples(cmd *cobra.Command, args []string, window int) ([]chunk.Segment, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var segments []chunk.Segment
	for _, name := range args {
		text, err := readInput(cmd, name)
		if err != nil {
			return nil, err
		}
		source := name
		if source == "-" {
			source = "stdin"
		}
		if window > 0 {
			segments = append(segments, chunk.SlidingWindow(source, text, window, 0)...)
			continue
		}
		segments = append(segments, chunk.Split(source, text)...)
	}
	return chunk.Reindex(segments), nil
}
