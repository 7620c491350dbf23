package report

import (
	"encoding/json"
	"io"

	"github.com/varalys/licensecheck/internal/types"
)

// WriteJSON writes r as indented JSON. Empty lists are emitted as [] rather than null.
func WriteJSON(w io.Writer, r Report) error {
	if r.Findings == nil {
		r.Findings = []types.Finding{}
	}
	if r.Dependencies == nil {
		r.Dependencies = []types.Dependency{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
