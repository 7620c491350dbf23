package ruby

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

// Gem is one dependency entry of `license_finder --format=json`.
type Gem struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Licenses json.RawMessage `json:"licenses"`
}

type report struct {
	Dependencies []Gem `json:"dependencies"`
}

// ParseLicenseFinder normalizes license_finder JSON into a Record. Both the
// {"dependencies": [...]} envelope and a bare array of entries are accepted.
func ParseLicenseFinder(data []byte) (*types.Record, error) {
	var gems []Gem
	switch scanner.FirstByte(data) {
	case '{':
		var r report
		if err := json.Unmarshal(data, &r); err != nil {
			return types.NewRecord(), fmt.Errorf("failed to parse license_finder JSON output: %w", err)
		}
		gems = r.Dependencies
	case '[':
		if err := json.Unmarshal(data, &gems); err != nil {
			return types.NewRecord(), fmt.Errorf("failed to parse license_finder JSON output: %w", err)
		}
	default:
		return types.NewRecord(), fmt.Errorf("failed to parse license_finder JSON output: unexpected input")
	}

	rec := types.NewRecord()
	for _, g := range gems {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			continue
		}
		rec.Set(types.Dependency{
			Name:      name,
			Version:   strings.TrimSpace(g.Version),
			License:   scanner.LicenseList(g.Licenses),
			Ecosystem: types.Ruby,
		})
	}
	return rec, nil
}
