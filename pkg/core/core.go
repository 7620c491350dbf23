package core

import (
	"context"

	"github.com/varalys/licensecheck/internal/policy"
	"github.com/varalys/licensecheck/internal/scanner/factory"
	"github.com/varalys/licensecheck/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Dependency = types.Dependency
type Finding = types.Finding
type Ecosystem = types.Ecosystem

// Ecosystems lists the supported project types.
func Ecosystems() []Ecosystem { return types.Ecosystems() }

// Licenses runs the license tool for eco in dir and returns its
// dependencies in the tool's output order.
func Licenses(ctx context.Context, eco, dir string) ([]Dependency, error) {
	src, err := factory.New(eco, factory.Config{Dir: dir})
	if err != nil {
		return nil, err
	}
	rec, err := src.Licenses(ctx)
	if err != nil {
		return nil, err
	}
	return rec.Dependencies(), nil
}

// Check returns the dependencies whose license is GPL-family.
func Check(deps []Dependency) []Finding {
	rec := types.NewRecord()
	for _, d := range deps {
		rec.Set(d)
	}
	return policy.Check(rec)
}
