package policy

import (
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/varalys/licensecheck/internal/types"
)

// ParseGlobs splits a comma-separated glob list, dropping blanks.
func ParseGlobs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Ignore removes dependencies whose name matches any glob and returns the
// removed names. Invalid patterns never match.
func Ignore(rec *types.Record, globs []string) []string {
	if len(globs) == 0 {
		return nil
	}
	var removed, keys []string
	for _, d := range rec.Dependencies() {
		if matchAny(d.Name, globs) {
			removed = append(removed, d.Name)
			keys = append(keys, d.RecordKey())
		}
	}
	for _, k := range keys {
		rec.Delete(k)
	}
	return removed
}

func matchAny(name string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, name); ok {
			return true
		}
	}
	return false
}
