package python

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

func TestParsePipLicenses_Array(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "pip_licenses.json"))
	require.NoError(t, err)

	rec, err := ParsePipLicenses(data)
	require.NoError(t, err)
	require.Equal(t, 3, rec.Len())

	deps := rec.Dependencies()
	assert.Equal(t, "requests", deps[0].Name)
	assert.Equal(t, "2.31.0", deps[0].Version)
	assert.Equal(t, "Apache Software License", deps[0].License)
	assert.Equal(t, types.Python, deps[0].Ecosystem)
	assert.Equal(t, "chardet", deps[1].Name)
	assert.Equal(t, "PyYAML", deps[2].Name)
}

func TestParsePipLicenses_ObjectForm(t *testing.T) {
	rec, err := ParsePipLicenses([]byte(`{"pkgA": {"License": "MIT"}, "pkgB": {"License": "GPL-3.0"}}`))
	require.NoError(t, err)
	deps := rec.Dependencies()
	require.Len(t, deps, 2)
	assert.Equal(t, "pkgA", deps[0].Name)
	assert.Equal(t, "GPL-3.0", deps[1].License)
}

func TestParsePipLicenses_Invalid(t *testing.T) {
	for _, in := range []string{"", "not json", `[{"Name": 1}]`, `"MIT"`} {
		rec, err := ParsePipLicenses([]byte(in))
		assert.Error(t, err, in)
		require.NotNil(t, rec)
		assert.Equal(t, 0, rec.Len())
	}
}

func TestScanner_Licenses_FakeTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "pip-licenses")
	script := `#!/bin/sh
if [ "$1" != "--format=json" ]; then exit 9; fi
echo '[{"Name": "flask", "Version": "3.0.0", "License": "BSD License"}]'
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	s := NewScanner(scanner.Options{Binary: bin})
	rec, err := s.Licenses(context.Background())
	require.NoError(t, err)
	d, ok := rec.Get("flask")
	require.True(t, ok)
	assert.Equal(t, "BSD License", d.License)
}

func TestScanner_Licenses_ToolFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "pip-licenses")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\necho 'no module' >&2\nexit 1\n"), 0o755))

	s := NewScanner(scanner.Options{Binary: bin})
	rec, err := s.Licenses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no module")
	require.NotNil(t, rec)
	assert.Equal(t, 0, rec.Len())
}
