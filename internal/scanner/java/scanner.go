package java

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

const (
	// DefaultBinary is the Maven executable name.
	DefaultBinary = "mvn"
	// ReportName is the file license-maven-plugin writes.
	ReportName = "THIRD-PARTY.txt"
)

// Scanner lists Java dependency licenses with license-maven-plugin.
type Scanner struct {
	tool       *scanner.Tool
	dir        string
	reportFile string
}

// NewScanner creates a Maven license source.
func NewScanner(opts scanner.Options) *Scanner {
	return &Scanner{
		tool:       scanner.NewTool(DefaultBinary, opts.Binary, "install Apache Maven from https://maven.apache.org/download.cgi", "--version"),
		dir:        opts.Dir,
		reportFile: opts.ReportFile,
	}
}

// Ecosystem implements scanner.Source.
func (s *Scanner) Ecosystem() types.Ecosystem { return types.Java }

// Tool implements scanner.Source.
func (s *Scanner) Tool() *scanner.Tool { return s.tool }

// Licenses implements scanner.Source. The plugin writes its report to disk,
// so the file is read after mvn exits.
func (s *Scanner) Licenses(ctx context.Context) (*types.Record, error) {
	if _, err := s.tool.Run(ctx, s.dir, "license:add-third-party"); err != nil {
		return types.NewRecord(), fmt.Errorf("mvn license:add-third-party: %w", err)
	}
	path, err := s.locateReport()
	if err != nil {
		return types.NewRecord(), err
	}
	f, err := os.Open(path)
	if err != nil {
		return types.NewRecord(), fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ParseThirdParty(f)
}

// ReportCandidates lists where the report is looked up, in order.
func (s *Scanner) ReportCandidates() []string {
	if s.reportFile != "" {
		if filepath.IsAbs(s.reportFile) {
			return []string{s.reportFile}
		}
		return []string{filepath.Join(s.dir, s.reportFile)}
	}
	return []string{
		filepath.Join(s.dir, ReportName),
		filepath.Join(s.dir, "target", "generated-sources", "license", ReportName),
	}
}

func (s *Scanner) locateReport() (string, error) {
	candidates := s.ReportCandidates()
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found (looked in %v): %w", ReportName, candidates, os.ErrNotExist)
}
