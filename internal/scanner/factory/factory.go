package factory

import (
	"errors"
	"fmt"

	"github.com/varalys/licensecheck/internal/config"
	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/scanner/java"
	"github.com/varalys/licensecheck/internal/scanner/node"
	"github.com/varalys/licensecheck/internal/scanner/python"
	"github.com/varalys/licensecheck/internal/scanner/ruby"
	"github.com/varalys/licensecheck/internal/types"
)

// Config is the subset of configuration needed to create a source.
type Config struct {
	Dir   string
	Tools config.ToolsConfig
}

type constructor func(scanner.Options) scanner.Source

var sources = map[types.Ecosystem]constructor{
	types.Python: func(o scanner.Options) scanner.Source { return python.NewScanner(o) },
	types.Node:   func(o scanner.Options) scanner.Source { return node.NewScanner(o) },
	types.Ruby:   func(o scanner.Options) scanner.Source { return ruby.NewScanner(o) },
	types.Java:   func(o scanner.Options) scanner.Source { return java.NewScanner(o) },
}

// ErrUnsupported is returned by New for tags outside the supported set.
var ErrUnsupported = errors.New("unsupported ecosystem")

// New creates the source for tag.
func New(tag string, cfg Config) (scanner.Source, error) {
	eco, err := types.ParseEcosystem(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, tag)
	}
	tc := cfg.Tools.For(eco)
	return sources[eco](scanner.Options{
		Dir:        cfg.Dir,
		Binary:     tc.GetBinary(),
		ReportFile: tc.GetReportFile(),
	}), nil
}

// All creates one source per supported ecosystem, in display order.
func All(cfg Config) []scanner.Source {
	out := make([]scanner.Source, 0, len(sources))
	for _, eco := range types.Ecosystems() {
		s, _ := New(string(eco), cfg)
		out = append(out, s)
	}
	return out
}
