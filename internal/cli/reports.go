package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"voiceprint/internal/workspace"
)

var reportsProfile string

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List saved reports for a profile, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runReports,
}

func init() {
	reportsCmd.Flags().StringVarP(&reportsProfile, "profile", "p", workspace.DefaultProfile, "Workspace profile to list")

	RootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, _ []string) error {
	root, err := workspace.EnsureDefault()
	if err != nil {
		return err
	}
	profile, err := workspace.CreateProfile(root, reportsProfile)
	if err != nil {
		return err
	}
	paths, err := profile.Reports()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range paths {
		if _, err := fmt.Fprintln(out, p); err != nil {
			return err
		}
	}
	return nil
}
