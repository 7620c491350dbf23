package python

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

// PipLicense is one entry of `pip-licenses --format=json`.
type PipLicense struct {
	Name    string `json:"Name"`
	Version string `json:"Version"`
	License string `json:"License"`
}

// ParsePipLicenses normalizes pip-licenses JSON into a Record.
//
// The tool emits an array of entries. An object keyed by package name whose
// values carry a "License" field is accepted as well.
func ParsePipLicenses(data []byte) (*types.Record, error) {
	rec := types.NewRecord()
	switch scanner.FirstByte(data) {
	case '[':
		var entries []PipLicense
		if err := json.Unmarshal(data, &entries); err != nil {
			return types.NewRecord(), fmt.Errorf("failed to parse pip-licenses JSON output: %w", err)
		}
		for _, e := range entries {
			name := strings.TrimSpace(e.Name)
			if name == "" {
				continue
			}
			rec.Set(types.Dependency{
				Name:      name,
				Version:   strings.TrimSpace(e.Version),
				License:   strings.TrimSpace(e.License),
				Ecosystem: types.Python,
			})
		}
	case '{':
		err := scanner.EachObjectField(data, func(name string, raw json.RawMessage) error {
			var e PipLicense
			if err := json.Unmarshal(raw, &e); err != nil {
				return fmt.Errorf("package %q: %w", name, err)
			}
			rec.Set(types.Dependency{
				Name:      name,
				Version:   strings.TrimSpace(e.Version),
				License:   strings.TrimSpace(e.License),
				Ecosystem: types.Python,
			})
			return nil
		})
		if err != nil {
			return types.NewRecord(), fmt.Errorf("failed to parse pip-licenses JSON output: %w", err)
		}
	default:
		return types.NewRecord(), fmt.Errorf("failed to parse pip-licenses JSON output: unexpected input")
	}
	return rec, nil
}
