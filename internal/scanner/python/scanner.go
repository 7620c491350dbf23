package python

import (
	"context"
	"fmt"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

// DefaultBinary is the pip-licenses executable name.
const DefaultBinary = "pip-licenses"

// Scanner lists Python dependency licenses with pip-licenses.
type Scanner struct {
	tool *scanner.Tool
	dir  string
}

// NewScanner creates a pip-licenses source.
func NewScanner(opts scanner.Options) *Scanner {
	return &Scanner{
		tool: scanner.NewTool(DefaultBinary, opts.Binary, "pip install pip-licenses", "--version"),
		dir:  opts.Dir,
	}
}

// Ecosystem implements scanner.Source.
func (s *Scanner) Ecosystem() types.Ecosystem { return types.Python }

// Tool implements scanner.Source.
func (s *Scanner) Tool() *scanner.Tool { return s.tool }

// Licenses implements scanner.Source.
func (s *Scanner) Licenses(ctx context.Context) (*types.Record, error) {
	res, err := s.tool.Run(ctx, s.dir, "--format=json")
	if err != nil {
		return types.NewRecord(), fmt.Errorf("pip-licenses: %w", err)
	}
	return ParsePipLicenses([]byte(res.Stdout))
}
