package licensecheck

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varalys/licensecheck/internal/checker"
	"github.com/varalys/licensecheck/internal/policy"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline [python|node|ruby|java]",
		Short: "Accept the current findings by writing them to the baseline file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBaseline,
	}
	rootCmd.AddCommand(cmd)
	addProjectFlags(cmd)
}

func runBaseline(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(args)
	if err != nil {
		return err
	}
	if err := chooseEcosystem(&s); err != nil {
		return err
	}
	opts, err := checkerOptions(cmd, s, newLogger(cmd))
	if err != nil {
		return err
	}
	opts.NoReport = true

	ctx, cancel := withTimeout(cmd.Context(), s.timeout)
	defer cancel()
	res, err := checker.Run(ctx, opts)
	switch {
	case errors.Is(err, checker.ErrUnsupported), errors.Is(err, checker.ErrNoLicenses):
		return nil
	case err != nil:
		return err
	}
	if err := policy.SaveBaseline(s.baselinePath, res.Findings); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %s (%d accepted)\n", s.baselinePath, len(res.Findings))
	return nil
}
