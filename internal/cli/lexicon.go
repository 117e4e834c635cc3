package cli

import (
	"github.com/spf13/cobra"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Print the effective marker lexicon as YAML",
	Long:  "Print the effective marker lexicon as YAML. Edit the output and pass it back with --lexicon to retune the word lists.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lex, err := loadLexicon(cfg)
		if err != nil {
			return err
		}
		raw, err := lex.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	},
}

func init() {
	RootCmd.AddCommand(lexiconCmd)
}
