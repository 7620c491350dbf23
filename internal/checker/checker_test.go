package checker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalys/licensecheck/internal/config"
	"github.com/varalys/licensecheck/internal/policy"
	"github.com/varalys/licensecheck/internal/report"
	"github.com/varalys/licensecheck/internal/types"
)

const twoPackages = `{
  "pkgA@1.0.0": {"licenses": "MIT"},
  "pkgB@2.0.0": {"licenses": "GPL-3.0"}
}`

func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools need a POSIX shell")
	}
	p := filepath.Join(t.TempDir(), "license-checker")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755))
	return p
}

func nodeTools(bin string) config.ToolsConfig {
	return config.ToolsConfig{Node: &config.ToolConfig{Binary: &bin}}
}

func catTool(t *testing.T, out string) string {
	t.Helper()
	data := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(data, []byte(out), 0o644))
	return fakeTool(t, "cat '"+data+"'\n")
}

func baseOptions(t *testing.T, bin string) (Options, *bytes.Buffer) {
	var out bytes.Buffer
	return Options{
		Ecosystem: "node",
		Dir:       t.TempDir(),
		OutDir:    t.TempDir(),
		Tools:     nodeTools(bin),
		Out:       &out,
		Version:   "test",
		Now:       func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}, &out
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_HTMLWithFinding(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, twoPackages))
	opts.Format = "html"

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, types.Node, res.Ecosystem)
	assert.Equal(t, 2, res.Record.Len())
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "pkgB", res.Findings[0].Package)
	assert.Equal(t, res.Findings, res.New)

	want := "Found 2 dependencies.\n" +
		"\nIncompatible Licenses Found:\n" +
		" - pkgB: GPL-3.0 (Incompatible with many commercial uses)\n" +
		"HTML report generated: " + filepath.Join(opts.OutDir, "license_report.html") + "\n"
	assert.Equal(t, want, out.String())

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("<tr><td>")))
	assert.Equal(t, 1, bytes.Count(data, []byte("<li>")))
}

func TestRun_Compliant(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, `{"left-pad@1.3.0": {"licenses": "WTFPL"}}`))
	opts.Format = "json"

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
	assert.Contains(t, out.String(), "\nNo incompatible licenses found. Your project is compliant!\n")
	assert.Equal(t, filepath.Join(opts.OutDir, "license_report.json"), res.ReportPath)
}

func TestRun_Unsupported(t *testing.T) {
	opts, out := baseOptions(t, "/nonexistent")
	opts.Ecosystem = "rust"
	opts.Format = "html"

	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "Unsupported project type. Use 'python', 'node', 'ruby', or 'java'.\n", out.String())
	assertEmptyDir(t, opts.OutDir)
}

func TestRun_EmptyRecord(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, `{}`))
	opts.Format = "html"

	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNoLicenses)
	assert.Equal(t, "No licenses found.\n", out.String())
	assertEmptyDir(t, opts.OutDir)
}

func TestRun_ToolFailure(t *testing.T) {
	opts, out := baseOptions(t, fakeTool(t, "echo 'npm ERR! missing' >&2\nexit 1\n"))
	opts.Format = "html"

	res, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNoLicenses)
	require.Error(t, res.ScanErr)
	assert.Contains(t, out.String(), "Error fetching Node.js licenses: ")
	assert.Contains(t, out.String(), "npm ERR! missing")
	assert.Contains(t, out.String(), "No licenses found.\n")
	assertEmptyDir(t, opts.OutDir)
}

func TestRun_ToolMissing(t *testing.T) {
	opts, out := baseOptions(t, filepath.Join(t.TempDir(), "missing"))
	opts.Format = "html"

	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNoLicenses)
	assert.Contains(t, out.String(), "Error fetching Node.js licenses:")
}

func TestRun_InvalidFormat(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, twoPackages))
	opts.Format = "xml"

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Nil(t, res.Report)
	assert.Empty(t, res.ReportPath)
	assert.Contains(t, out.String(), "Invalid report type. No report generated.\n")
	assertEmptyDir(t, opts.OutDir)
}

func TestRun_ChooseFormat(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, twoPackages))
	called := 0
	opts.ChooseFormat = func() (string, error) {
		called++
		return "PDF", nil
	}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, called)
	assert.Equal(t, report.FormatPDF, res.Format)
	assert.Contains(t, out.String(), "PDF report generated: ")

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRun_ChooseFormatCancelled(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, twoPackages))
	opts.ChooseFormat = func() (string, error) { return "", errors.New("cancelled") }

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Nil(t, res.Report)
	assert.Contains(t, out.String(), "Invalid report type. No report generated.\n")
}

func TestRun_NoFormatNoChooser(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, twoPackages))

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Invalid report type. No report generated.\n")
	assertEmptyDir(t, opts.OutDir)
}

func TestRun_IgnoreAndBaseline(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, `{
  "pkgA@1.0.0": {"licenses": "GPL-2.0"},
  "pkgB@2.0.0": {"licenses": "AGPL-3.0"},
  "internal-x@0.1.0": {"licenses": "GPL-3.0"}
}`))
	opts.Format = "json"
	opts.Ignore = []string{"internal-*"}
	opts.Baseline = policy.Baseline{Items: map[string]string{
		policy.Fingerprint(types.Finding{Ecosystem: types.Node, Package: "pkgA", License: "GPL-2.0"}): "accepted",
	}}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"internal-x"}, res.Ignored)
	assert.Len(t, res.Findings, 2)
	require.Len(t, res.New, 1)
	assert.Equal(t, "pkgB", res.New[0].Package)
	assert.Contains(t, out.String(), "Found 2 dependencies.\n")
}

func TestRun_Preview(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, twoPackages))
	opts.Format = "html"
	opts.Preview = true

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, res.ReportPath)
	require.NotNil(t, res.Report)
	assert.Contains(t, out.String(), "<tr><td>pkgA</td><td>MIT</td></tr>")
	assertEmptyDir(t, opts.OutDir)
}

func TestRun_MetaFromNow(t *testing.T) {
	opts, _ := baseOptions(t, catTool(t, twoPackages))
	opts.Format = "json"

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, res.Report)
	assert.Equal(t, opts.Now(), res.Report.Meta.GeneratedAt)
	assert.Equal(t, "test", res.Report.Meta.ToolVersion)
	assert.Equal(t, types.Node, res.Report.Meta.Ecosystem)
}

func TestRun_NoReport(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, twoPackages))
	opts.NoReport = true
	opts.ChooseFormat = func() (string, error) {
		t.Fatal("format chooser must not be called")
		return "", nil
	}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, res.Findings, 1)
	assert.Nil(t, res.Report)
	assert.NotContains(t, out.String(), "Invalid report type")
	assertEmptyDir(t, opts.OutDir)
}

func TestRun_MultipleVersionsKeepEveryEntry(t *testing.T) {
	opts, out := baseOptions(t, catTool(t, `{
  "foo@1.0.0": {"licenses": "GPL-3.0"},
  "foo@2.0.0": {"licenses": "MIT"}
}`))
	opts.Format = "html"

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Record.Len())
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "foo", res.Findings[0].Package)
	assert.Contains(t, out.String(), "Found 2 dependencies.\n")
	assert.Contains(t, out.String(), " - foo: GPL-3.0 (Incompatible with many commercial uses)\n")

	data, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("<tr><td>")))
}
