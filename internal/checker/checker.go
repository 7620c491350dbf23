// Package checker runs one license check: it resolves the ecosystem, runs
// the tool, filters the result, prints the outcome and writes the report.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/varalys/licensecheck/internal/config"
	"github.com/varalys/licensecheck/internal/git"
	"github.com/varalys/licensecheck/internal/log"
	"github.com/varalys/licensecheck/internal/policy"
	"github.com/varalys/licensecheck/internal/report"
	"github.com/varalys/licensecheck/internal/scanner/factory"
	"github.com/varalys/licensecheck/internal/types"
)

var (
	// ErrUnsupported is returned when the ecosystem tag is not recognised.
	ErrUnsupported = errors.New("unsupported project type")
	// ErrNoLicenses is returned when the tool yields no dependencies.
	ErrNoLicenses = errors.New("no licenses found")
)

// Options configure a single Run.
type Options struct {
	// Ecosystem is the user-supplied tag, parsed case-insensitively.
	Ecosystem string
	// Dir is the project directory the tool runs in.
	Dir string
	// OutDir receives the report file. Empty means the current directory.
	OutDir string
	// Format is the report format. When empty, ChooseFormat is asked.
	Format string
	// ChooseFormat supplies a format when Format is empty. Nil means no
	// report is generated.
	ChooseFormat func() (string, error)
	// Preview prints the rendered report to Out instead of writing a file.
	Preview bool
	// Color enables syntax highlighting of previews.
	Color bool
	// NoReport stops after the findings are printed.
	NoReport bool

	Ignore   []string
	Baseline policy.Baseline
	Tools    config.ToolsConfig

	// Version is recorded in the report metadata.
	Version string

	Out    io.Writer
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result describes what a Run found and produced.
type Result struct {
	Ecosystem types.Ecosystem
	Record    *types.Record
	// Ignored lists package names removed by ignore globs.
	Ignored []string
	// Findings are every incompatible dependency, in Record order.
	Findings []types.Finding
	// New are the findings not accepted by the baseline.
	New []types.Finding
	// ScanErr is the adapter error, if any. The run continues with an
	// empty Record when it is set.
	ScanErr error

	// Report is nil when no report was generated.
	Report     *report.Report
	Format     report.Format
	ReportPath string
}

// Run performs the check. Terminal early exits print their message and
// return ErrUnsupported or ErrNoLicenses; any other error is unexpected.
func Run(ctx context.Context, opts Options) (Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var res Result
	src, err := factory.New(opts.Ecosystem, factory.Config{Dir: opts.Dir, Tools: opts.Tools})
	if err != nil {
		fmt.Fprintln(out, "Unsupported project type. Use 'python', 'node', 'ruby', or 'java'.")
		return res, fmt.Errorf("%w: %q", ErrUnsupported, opts.Ecosystem)
	}
	eco := src.Ecosystem()
	res.Ecosystem = eco
	ctx = log.ContextAttrs(ctx, slog.String("ecosystem", string(eco)), slog.String("dir", opts.Dir))

	logger.DebugContext(ctx, "running license tool", slog.String("tool", src.Tool().Name))
	start := now()
	rec, err := src.Licenses(ctx)
	if rec == nil {
		rec = types.NewRecord()
	}
	if err != nil {
		res.ScanErr = err
		fmt.Fprintf(out, "Error fetching %s licenses: %v\n", eco.Title(), err)
		logger.WarnContext(ctx, "license tool failed", slog.Any("error", err))
	}
	logger.DebugContext(ctx, "license tool finished",
		slog.Int("dependencies", rec.Len()),
		slog.Duration("elapsed", now().Sub(start)))

	res.Ignored = policy.Ignore(rec, opts.Ignore)
	if len(res.Ignored) > 0 {
		logger.DebugContext(ctx, "ignored dependencies", slog.Any("names", res.Ignored))
	}
	res.Record = rec
	if rec.Len() == 0 {
		fmt.Fprintln(out, "No licenses found.")
		return res, ErrNoLicenses
	}

	fmt.Fprintf(out, "Found %d dependencies.\n", rec.Len())
	res.Findings = policy.Check(rec)
	res.New = policy.FilterNew(res.Findings, opts.Baseline)
	if len(res.Findings) > 0 {
		fmt.Fprintln(out, "\nIncompatible Licenses Found:")
		for _, f := range res.Findings {
			fmt.Fprintf(out, " - %s\n", f)
		}
	} else {
		fmt.Fprintln(out, "\nNo incompatible licenses found. Your project is compliant!")
	}

	if opts.NoReport {
		return res, nil
	}
	format, ok := resolveFormat(ctx, opts, logger)
	if !ok {
		fmt.Fprintln(out, "Invalid report type. No report generated.")
		return res, nil
	}
	res.Format = format

	meta := report.Meta{
		GeneratedAt: now(),
		Ecosystem:   eco,
		ProjectDir:  opts.Dir,
		Tool:        "licensecheck",
		ToolVersion: opts.Version,
	}
	gitDir := opts.Dir
	if gitDir == "" {
		gitDir = "."
	}
	if md, err := git.RepoMetadata(gitDir); err == nil {
		meta.Repo, meta.Branch, meta.Commit = md.Repo, md.Branch, md.Commit
	} else {
		logger.DebugContext(ctx, "no git metadata", slog.Any("error", err))
	}
	r := report.New(rec, res.Findings, meta)
	res.Report = &r

	if opts.Preview {
		var buf bytes.Buffer
		if err := report.Render(&buf, format, r); err != nil {
			return res, fmt.Errorf("render %s report: %w", format, err)
		}
		if opts.Color {
			fmt.Fprintln(out, report.Highlight(format, buf.Bytes()))
		} else {
			_, _ = out.Write(buf.Bytes())
		}
		return res, nil
	}

	path, err := report.Write(opts.OutDir, format, r)
	if err != nil {
		return res, err
	}
	res.ReportPath = path
	fmt.Fprintf(out, "%s report generated: %s\n", format.Display(), path)
	return res, nil
}

func resolveFormat(ctx context.Context, opts Options, logger *slog.Logger) (report.Format, bool) {
	choice := opts.Format
	if strings.TrimSpace(choice) == "" && opts.ChooseFormat != nil {
		c, err := opts.ChooseFormat()
		if err != nil {
			logger.DebugContext(ctx, "format selection failed", slog.Any("error", err))
			return "", false
		}
		choice = c
	}
	f, err := report.ParseFormat(choice)
	if err != nil {
		logger.DebugContext(ctx, "invalid report format", slog.String("format", choice))
		return "", false
	}
	return f, true
}
