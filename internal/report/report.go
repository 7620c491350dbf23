package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/varalys/licensecheck/internal/types"
)

// Title heads every rendered report.
const Title = "Open Source License Compliance Report"

// Format selects a report renderer.
type Format string

const (
	FormatHTML      Format = "html"
	FormatPDF       Format = "pdf"
	FormatJSON      Format = "json"
	FormatCycloneDX Format = "cyclonedx"
)

// Formats lists every format in display order.
func Formats() []Format {
	return []Format{FormatHTML, FormatPDF, FormatJSON, FormatCycloneDX}
}

// ParseFormat parses a format name case-insensitively. "cdx" is accepted
// for CycloneDX.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatPDF, FormatJSON, FormatCycloneDX:
		return f, nil
	case "cdx":
		return FormatCycloneDX, nil
	default:
		return "", fmt.Errorf("invalid report type: %q", s)
	}
}

// FileName is the output file name for f.
func (f Format) FileName() string {
	switch f {
	case FormatCycloneDX:
		return "license_report.cdx.json"
	default:
		return "license_report." + string(f)
	}
}

// Display is the upper-case label used in "<label> report generated" messages.
func (f Format) Display() string {
	if f == FormatCycloneDX {
		return "CycloneDX"
	}
	return strings.ToUpper(string(f))
}

// Meta describes the run a report was generated from.
type Meta struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Ecosystem   types.Ecosystem `json:"ecosystem"`
	ProjectDir  string          `json:"project_dir,omitempty"`
	Repo        string          `json:"repo,omitempty"`
	Branch      string          `json:"branch,omitempty"`
	Commit      string          `json:"commit,omitempty"`
	Tool        string          `json:"tool"`
	ToolVersion string          `json:"tool_version"`
}

// Report is an immutable snapshot of one run's dependencies and findings.
type Report struct {
	Meta         Meta               `json:"meta"`
	Dependencies []types.Dependency `json:"dependencies"`
	Findings     []types.Finding    `json:"findings"`
}

// New builds a report from a record and the findings produced for it.
func New(rec *types.Record, findings []types.Finding, meta Meta) Report {
	deps := rec.Dependencies()
	if deps == nil {
		deps = []types.Dependency{}
	}
	fs := make([]types.Finding, len(findings))
	copy(fs, findings)
	return Report{Meta: meta, Dependencies: deps, Findings: fs}
}

// Render writes r to w in format f.
func Render(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatHTML:
		return WriteHTML(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatCycloneDX:
		return WriteCycloneDX(w, r)
	default:
		return fmt.Errorf("invalid report type: %q", f)
	}
}

// Write renders r into dir/f.FileName() and returns the path written.
func Write(dir string, f Format, r Report) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, f.FileName())
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	if err := Render(out, f, r); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
