package licensecheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/varalys/licensecheck/internal/checker"
	"github.com/varalys/licensecheck/internal/config"
	"github.com/varalys/licensecheck/internal/policy"
	"github.com/varalys/licensecheck/internal/prompt"
	"github.com/varalys/licensecheck/internal/report"
	"github.com/varalys/licensecheck/internal/types"
)

var (
	flagType           string
	flagFormat         string
	flagDir            string
	flagOut            string
	flagIgnore         string
	flagBaseline       string
	flagFailOnFindings bool
	flagPreview        bool
	flagCopy           bool
	flagSummary        bool
	flagTimeout        time.Duration

	// Swapped in tests; the real pickers need a terminal.
	interactive = prompt.IsTerminal
	choose      = prompt.Choose
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [python|node|ruby|java]",
		Short: "Check dependency licenses and generate a report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	addProjectFlags(cmd)
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "report format: html|pdf|json|cyclonedx (prompted when omitted on a terminal)")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "directory for the report file (default: current directory)")
	cmd.Flags().BoolVar(&flagFailOnFindings, "fail-on-findings", false, "exit 1 when findings not in the baseline exist")
	cmd.Flags().BoolVar(&flagPreview, "preview", false, "print the report to stdout instead of writing a file")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "copy a plain-text summary to the clipboard")
	cmd.Flags().BoolVar(&flagSummary, "summary", false, "print a dependency table after the check")
}

// addProjectFlags registers the flags shared by scan and baseline.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagType, "type", "t", "", "project type: python|node|ruby|java")
	cmd.Flags().StringVarP(&flagDir, "dir", "C", ".", "project directory the license tool runs in")
	cmd.Flags().StringVar(&flagIgnore, "ignore", "", "comma-separated package name globs to skip")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "baseline file (default "+policy.DefaultBaselinePath+")")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "abort the license tool after this long (0 = no limit)")
}

// settings is the resolved CLI > local > global configuration for a run.
type settings struct {
	dir            string
	ecosystem      string
	format         string
	outDir         string
	ignore         []string
	baselinePath   string
	failOnFindings bool
	noColor        bool
	timeout        time.Duration
	tools          config.ToolsConfig
}

func loadSettings(args []string) (settings, error) {
	abs, err := filepath.Abs(flagDir)
	if err != nil {
		return settings{}, err
	}
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	tag := flagType
	if len(args) > 0 {
		tag = args[0]
	}
	timeout, err := pickDuration(flagTimeout, lcfg.Timeout, gcfg.Timeout)
	if err != nil {
		return settings{}, err
	}
	s := settings{
		dir:            abs,
		ecosystem:      pickString(tag, lcfg.Ecosystem, gcfg.Ecosystem),
		format:         pickString(flagFormat, lcfg.Format, gcfg.Format),
		outDir:         pickString(flagOut, lcfg.Output, gcfg.Output),
		ignore:         policy.ParseGlobs(pickString(flagIgnore, lcfg.Ignore, gcfg.Ignore)),
		baselinePath:   pickString(flagBaseline, lcfg.Baseline, gcfg.Baseline),
		failOnFindings: pickBool(flagFailOnFindings, lcfg.FailOnFindings, gcfg.FailOnFindings),
		noColor:        pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		timeout:        timeout,
		tools:          config.MergeTools(lcfg.GetTools(), gcfg.GetTools()),
	}
	fileGlobs, err := policy.LoadIgnoreFile(abs)
	if err != nil {
		return settings{}, fmt.Errorf("failed to read %s: %w", policy.IgnoreFileName, err)
	}
	s.ignore = append(s.ignore, fileGlobs...)
	if s.outDir == "" {
		s.outDir = "."
	}
	if s.baselinePath == "" {
		s.baselinePath = policy.DefaultBaselinePath
	}
	// the baseline lives with the project, like the config and ignore file
	if !filepath.IsAbs(s.baselinePath) {
		s.baselinePath = filepath.Join(s.dir, s.baselinePath)
	}
	return s, nil
}

// chooseEcosystem asks for the project type when none was given.
func chooseEcosystem(s *settings) error {
	if s.ecosystem != "" || !interactive() {
		return nil
	}
	var opts []string
	for _, e := range types.Ecosystems() {
		opts = append(opts, string(e))
	}
	c, err := choose("Project type", opts)
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return nil
		}
		return err
	}
	s.ecosystem = c
	return nil
}

func checkerOptions(cmd *cobra.Command, s settings, logger *slog.Logger) (checker.Options, error) {
	base, err := policy.LoadBaseline(s.baselinePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return checker.Options{}, err
	}
	return checker.Options{
		Ecosystem: s.ecosystem,
		Dir:       s.dir,
		OutDir:    s.outDir,
		Format:    s.format,
		Ignore:    s.ignore,
		Baseline:  base,
		Tools:     s.tools,
		Version:   version,
		Out:       cmd.OutOrStdout(),
		Logger:    logger,
	}, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(args)
	if err != nil {
		return err
	}
	if f := strings.TrimSpace(s.format); flagPreview && f != "" {
		if pf, err := report.ParseFormat(f); err == nil && pf == report.FormatPDF {
			return fmt.Errorf("--preview is not available for pdf reports")
		}
	}
	if err := chooseEcosystem(&s); err != nil {
		return err
	}

	logger := newLogger(cmd)
	opts, err := checkerOptions(cmd, s, logger)
	if err != nil {
		return err
	}
	opts.Preview = flagPreview
	opts.Color = !s.noColor && isTerminal(cmd.OutOrStdout())
	if s.format == "" && interactive() {
		opts.ChooseFormat = func() (string, error) {
			var names []string
			for _, f := range report.Formats() {
				if flagPreview && f == report.FormatPDF {
					continue
				}
				names = append(names, string(f))
			}
			return choose("Report format", names)
		}
	}

	ctx, cancel := withTimeout(cmd.Context(), s.timeout)
	defer cancel()
	res, err := checker.Run(ctx, opts)
	switch {
	case errors.Is(err, checker.ErrUnsupported), errors.Is(err, checker.ErrNoLicenses):
		return nil
	case err != nil:
		return err
	}

	if flagSummary || flagCopy {
		r := report.New(res.Record, res.Findings, report.Meta{Ecosystem: res.Ecosystem})
		if res.Report != nil {
			r = *res.Report
		}
		if flagSummary {
			if err := report.WriteSummary(cmd.OutOrStdout(), r, report.SummaryOptions{
				NoColor: !opts.Color,
				New:     markedFindings(res.New, opts.Baseline),
			}); err != nil {
				return err
			}
		}
		if flagCopy {
			if err := clipboard.WriteAll(report.PlainSummary(r)); err != nil {
				logger.Warn("copy to clipboard failed", slog.Any("error", err))
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "Summary copied to clipboard.")
			}
		}
	}

	if s.failOnFindings && len(res.New) > 0 {
		exit(1)
	}
	return nil
}

// markedFindings returns nil when there is no baseline so the summary shows
// no [new]/[baseline] marks.
func markedFindings(fresh []types.Finding, base policy.Baseline) []types.Finding {
	if len(base.Items) == 0 {
		return nil
	}
	if fresh == nil {
		return []types.Finding{}
	}
	return fresh
}
