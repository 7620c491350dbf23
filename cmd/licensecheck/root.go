package licensecheck

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/varalys/licensecheck/internal/log"
)

var (
	flagNoColor  bool
	flagVerbose  bool
	flagJSONLogs bool

	version = "0.1.0"

	// exit is replaced in tests.
	exit = os.Exit
)

// rootCmd is the base Cobra command for the licensecheck CLI.
var rootCmd = &cobra.Command{
	Use:   "licensecheck",
	Short: "Check dependency licenses for incompatibilities",
	Long: "licensecheck runs your ecosystem's license tool (pip-licenses, license-checker, " +
		"license_finder or the Maven license plugin), flags GPL-family licenses and writes a compliance report.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the licensecheck CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "log diagnostics as JSON")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return log.New(cmd.ErrOrStderr(), flagVerbose, flagJSONLogs)
}
