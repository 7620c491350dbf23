package policy

import (
	"encoding/json"
	"fmt"
	"os"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/varalys/licensecheck/internal/types"
)

// DefaultBaselinePath is where `licensecheck baseline` writes accepted findings.
const DefaultBaselinePath = "licensecheck.baseline.json"

// Baseline is a set of accepted findings keyed by Fingerprint. Values are the
// human-readable finding, kept for reviewers.
type Baseline struct {
	Items map[string]string `json:"items"`
}

// LoadBaseline reads a baseline file. A missing file yields an empty baseline
// and the os error.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return Baseline{Items: map[string]string{}}, fmt.Errorf("invalid baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]string{}
	}
	return b, nil
}

// SaveBaseline writes findings as the accepted set.
func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]string{}}
	for _, f := range findings {
		b.Items[Fingerprint(f)] = f.String()
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// FilterNew returns the findings not accepted by base, in order.
func FilterNew(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if _, ok := base.Items[Fingerprint(f)]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// Fingerprint identifies a finding across runs by ecosystem, package and license.
func Fingerprint(f types.Finding) string {
	sum := xxhash.Sum64String(string(f.Ecosystem) + "|" + f.Package + "|" + f.License)
	return fmt.Sprintf("%016x", sum)
}
