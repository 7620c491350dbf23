package licensecheck

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/varalys/licensecheck/internal/policy"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ignore <glob>...",
		Short: "Add package name globs to the project's " + policy.IgnoreFileName,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIgnore,
	}
	cmd.Flags().StringVarP(&flagDir, "dir", "C", ".", "project directory holding the ignore file")
	rootCmd.AddCommand(cmd)
}

func runIgnore(cmd *cobra.Command, args []string) error {
	abs, err := filepath.Abs(flagDir)
	if err != nil {
		return err
	}
	for _, g := range args {
		changed, err := policy.AppendIgnore(abs, g)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), "Ignoring", g)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Already ignored:", g)
		}
	}
	return nil
}
