package node

import (
	"context"
	"fmt"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

// DefaultBinary is the license-checker executable name.
const DefaultBinary = "license-checker"

// Scanner lists Node.js dependency licenses with license-checker.
type Scanner struct {
	tool *scanner.Tool
	dir  string
}

// NewScanner creates a license-checker source.
func NewScanner(opts scanner.Options) *Scanner {
	return &Scanner{
		tool: scanner.NewTool(DefaultBinary, opts.Binary, "npm install -g license-checker", "--version"),
		dir:  opts.Dir,
	}
}

// Ecosystem implements scanner.Source.
func (s *Scanner) Ecosystem() types.Ecosystem { return types.Node }

// Tool implements scanner.Source.
func (s *Scanner) Tool() *scanner.Tool { return s.tool }

// Licenses implements scanner.Source.
func (s *Scanner) Licenses(ctx context.Context) (*types.Record, error) {
	res, err := s.tool.Run(ctx, s.dir, "--json")
	if err != nil {
		return types.NewRecord(), fmt.Errorf("license-checker: %w", err)
	}
	return ParseLicenseChecker([]byte(res.Stdout))
}
