package ruby

import (
	"context"
	"fmt"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

// DefaultBinary is the license_finder executable name.
const DefaultBinary = "license_finder"

// Scanner lists Ruby dependency licenses with license_finder.
type Scanner struct {
	tool *scanner.Tool
	dir  string
}

// NewScanner creates a license_finder source.
func NewScanner(opts scanner.Options) *Scanner {
	return &Scanner{
		tool: scanner.NewTool(DefaultBinary, opts.Binary, "gem install license_finder", "version"),
		dir:  opts.Dir,
	}
}

// Ecosystem implements scanner.Source.
func (s *Scanner) Ecosystem() types.Ecosystem { return types.Ruby }

// Tool implements scanner.Source.
func (s *Scanner) Tool() *scanner.Tool { return s.tool }

// Licenses implements scanner.Source.
func (s *Scanner) Licenses(ctx context.Context) (*types.Record, error) {
	res, err := s.tool.Run(ctx, s.dir, "--format=json")
	if err != nil {
		return types.NewRecord(), fmt.Errorf("license_finder: %w", err)
	}
	return ParseLicenseFinder([]byte(res.Stdout))
}
