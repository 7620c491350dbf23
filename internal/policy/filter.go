package policy

import (
	"strings"

	"github.com/varalys/licensecheck/internal/types"
)

// Markers are the substrings that flag a license as incompatible. "AGPL"
// contains "GPL"; it is listed because the rule names it.
var Markers = []string{"GPL", "AGPL"}

// Check returns one finding per dependency whose uppercased license contains
// a marker, in the Record's order. It does not modify rec.
func Check(rec *types.Record) []types.Finding {
	var out []types.Finding
	for _, d := range rec.Dependencies() {
		license := strings.ToUpper(d.License)
		if !matchesMarker(license) {
			continue
		}
		out = append(out, types.Finding{
			Package:   d.Name,
			License:   license,
			Reason:    types.IncompatibleReason,
			Ecosystem: d.Ecosystem,
		})
	}
	return out
}

func matchesMarker(license string) bool {
	for _, m := range Markers {
		if strings.Contains(license, m) {
			return true
		}
	}
	return false
}
