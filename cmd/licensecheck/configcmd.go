package licensecheck

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/varalys/licensecheck/internal/config"
	"github.com/varalys/licensecheck/internal/policy"
	"github.com/varalys/licensecheck/internal/report"
	"github.com/varalys/licensecheck/internal/types"
)

var (
	cfgOutput    string
	cfgEcosystem string
	cfgFormat    string
	cfgIgnore    string
	cfgFailOn    bool
	cfgForce     bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .licensecheck.yml for this project",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().StringVar(&cfgEcosystem, "type", "", "default project type: python|node|ruby|java")
	initCmd.Flags().StringVar(&cfgFormat, "format", string(report.FormatHTML), "default report format")
	initCmd.Flags().StringVar(&cfgIgnore, "ignore", "", "comma-separated package name globs to skip")
	initCmd.Flags().BoolVar(&cfgFailOn, "fail-on-findings", false, "exit 1 on new findings by default")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	fc := config.FileConfig{
		Format:         strPtr(cfgFormat),
		Output:         strPtr("."),
		Baseline:       strPtr(policy.DefaultBaselinePath),
		FailOnFindings: boolPtr(cfgFailOn),
	}
	if cfgEcosystem != "" {
		eco, err := types.ParseEcosystem(cfgEcosystem)
		if err != nil {
			return err
		}
		fc.Ecosystem = strPtr(string(eco))
	}
	if _, err := report.ParseFormat(cfgFormat); err != nil {
		return err
	}
	if globs := policy.ParseGlobs(cfgIgnore); len(globs) > 0 {
		fc.Ignore = strPtr(strings.Join(globs, ","))
	}

	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
		}
	}
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}
