package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"voiceprint/internal/stylometry"
	"voiceprint/internal/textstat"
)

type statsOutput struct {
	Stats   textstat.Stats     `json:"stats"`
	Metrics stylometry.Metrics `json:"metrics"`
}

var statsCmd = &cobra.Command{
	Use:   "stats [FILE]",
	Short: "Print basic counts and stylometric metrics for one text",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func init() {
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lex, err := loadLexicon(cfg)
	if err != nil {
		return err
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	text, err := readInput(cmd, name)
	if err != nil {
		return err
	}

	m := stylometry.NewExtractor(lex).Extract(text)
	b, err := json.MarshalIndent(statsOutput{Stats: textstat.BasicStats(text), Metrics: m}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
