package scanner

import (
	"context"

	"github.com/varalys/licensecheck/internal/types"
)

// Source enumerates the licenses of one ecosystem's dependencies by running
// an external tool. Implementations never return a nil Record: on failure
// they return an empty Record together with the error describing it.
type Source interface {
	// Ecosystem reports the tag this source serves.
	Ecosystem() types.Ecosystem

	// Licenses runs the tool and normalizes its output.
	Licenses(ctx context.Context) (*types.Record, error)

	// Tool exposes the underlying binary for diagnostics.
	Tool() *Tool
}

// Options configure a Source.
type Options struct {
	// Dir is the project directory the tool runs in. Empty means the
	// current working directory.
	Dir string

	// Binary overrides the tool binary. Empty means a $PATH lookup of the
	// tool's default name.
	Binary string

	// ReportFile overrides where file-based tools leave their output.
	// Only the java source uses it.
	ReportFile string
}
