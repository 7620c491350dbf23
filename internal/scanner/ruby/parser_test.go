package ruby

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

func TestParseLicenseFinder_Envelope(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "license_finder.json"))
	require.NoError(t, err)

	rec, err := ParseLicenseFinder(data)
	require.NoError(t, err)

	deps := rec.Dependencies()
	require.Len(t, deps, 3)
	assert.Equal(t, "rails", deps[0].Name)
	assert.Equal(t, "7.1.2", deps[0].Version)
	assert.Equal(t, "MIT", deps[0].License)
	assert.Equal(t, "sidekiq-ent", deps[2].Name)
	assert.Equal(t, "LGPL-3.0, Commercial", deps[2].License)
	assert.Equal(t, types.Ruby, deps[2].Ecosystem)
}

func TestParseLicenseFinder_BareArray(t *testing.T) {
	rec, err := ParseLicenseFinder([]byte(`[{"name": "rake", "version": "13.1.0", "licenses": "MIT"}]`))
	require.NoError(t, err)
	d, ok := rec.Get("rake")
	require.True(t, ok)
	assert.Equal(t, "MIT", d.License)
}

func TestParseLicenseFinder_Invalid(t *testing.T) {
	for _, in := range []string{"", "LicenseFinder::CLI error", `{"dependencies": "x"}`} {
		rec, err := ParseLicenseFinder([]byte(in))
		assert.Error(t, err, in)
		require.NotNil(t, rec)
		assert.Equal(t, 0, rec.Len())
	}
}

func TestScanner_Licenses_FakeTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "license_finder")
	script := `#!/bin/sh
if [ "$1" != "--format=json" ]; then exit 9; fi
echo '{"dependencies": [{"name": "puma", "version": "6.4.0", "licenses": ["BSD-3-Clause"]}]}'
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	s := NewScanner(scanner.Options{Binary: bin})
	rec, err := s.Licenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Len())
}
