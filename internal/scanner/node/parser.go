package node

import (
	"encoding/json"
	"fmt"
	"strings"

	semver "github.com/blang/semver/v4"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

// Package is the per-package object of `license-checker --json`.
// Licenses is a string or an array of strings depending on the package.
type Package struct {
	Licenses   json.RawMessage `json:"licenses"`
	Repository string          `json:"repository,omitempty"`
	Publisher  string          `json:"publisher,omitempty"`
	Path       string          `json:"path,omitempty"`
}

// ParseLicenseChecker normalizes license-checker JSON into a Record, keeping
// the order in which the tool listed packages.
func ParseLicenseChecker(data []byte) (*types.Record, error) {
	rec := types.NewRecord()
	err := scanner.EachObjectField(data, func(key string, raw json.RawMessage) error {
		var p Package
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("package %q: %w", key, err)
		}
		name, version := SplitKey(key)
		rec.Set(types.Dependency{
			Name:      name,
			Version:   version,
			Key:       key,
			License:   scanner.LicenseList(p.Licenses),
			Ecosystem: types.Node,
		})
		return nil
	})
	if err != nil {
		return types.NewRecord(), fmt.Errorf("failed to parse license-checker JSON output: %w", err)
	}
	return rec, nil
}

// SplitKey splits a license-checker key such as "@scope/pkg@1.2.3" into name
// and version. The suffix counts as a version only if it parses as semver;
// otherwise the whole key is returned as the name.
func SplitKey(key string) (string, string) {
	at := strings.LastIndex(key, "@")
	if at <= 0 {
		return key, ""
	}
	name, version := key[:at], key[at+1:]
	if _, err := semver.ParseTolerant(version); err != nil {
		return key, ""
	}
	return name, version
}
