package java

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalys/licensecheck/internal/scanner"
	"github.com/varalys/licensecheck/internal/types"
)

func TestParseThirdParty_NameLicenseLines(t *testing.T) {
	in := "commons-lang3:Apache-2.0\nmysql-connector:GPL-2.0\n\nheader without separator\n"
	rec, err := ParseThirdParty(strings.NewReader(in))
	require.NoError(t, err)

	deps := rec.Dependencies()
	require.Len(t, deps, 2)
	assert.Equal(t, "commons-lang3", deps[0].Name)
	assert.Equal(t, "Apache-2.0", deps[0].License)
	assert.Equal(t, "mysql-connector", deps[1].Name)
	assert.Equal(t, "GPL-2.0", deps[1].License)
	assert.Equal(t, types.Java, deps[1].Ecosystem)
}

func TestParseThirdParty_ColonInNameIsMisSplit(t *testing.T) {
	rec, err := ParseThirdParty(strings.NewReader("org.example:lib:MIT\n"))
	require.NoError(t, err)
	d, ok := rec.Get("org.example")
	require.True(t, ok)
	assert.Equal(t, "lib", d.License)
}

func TestParseThirdParty_PluginLayout(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "THIRD-PARTY.txt"))
	require.NoError(t, err)
	defer f.Close()

	rec, err := ParseThirdParty(f)
	require.NoError(t, err)

	deps := rec.Dependencies()
	require.Len(t, deps, 4)
	assert.Equal(t, "org.apache.commons:commons-lang3", deps[0].Name)
	assert.Equal(t, "3.12.0", deps[0].Version)
	assert.Equal(t, "The Apache Software License, Version 2.0", deps[0].License)

	servlet := deps[2]
	assert.Equal(t, "javax.servlet:javax.servlet-api", servlet.Name)
	assert.Equal(t, "CDDL + GPLv2 with classpath exception, GNU General Public License, version 2 (GPL2), with the classpath exception", servlet.License)
	assert.Equal(t, "org.slf4j:slf4j-api", deps[3].Name)
}

func fakeMaven(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools need a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "mvn")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+body), 0o755))
	return bin
}

func TestScanner_Licenses_ReadsReportAfterRun(t *testing.T) {
	dir := t.TempDir()
	bin := fakeMaven(t, `if [ "$1" != "license:add-third-party" ]; then exit 9; fi
mkdir -p target/generated-sources/license
printf 'guava:Apache-2.0\n' > target/generated-sources/license/THIRD-PARTY.txt
`)
	s := NewScanner(scanner.Options{Binary: bin, Dir: dir})
	rec, err := s.Licenses(context.Background())
	require.NoError(t, err)
	d, ok := rec.Get("guava")
	require.True(t, ok)
	assert.Equal(t, "Apache-2.0", d.License)
}

func TestScanner_Licenses_PrefersProjectRootReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportName), []byte("root-lib:MIT\n"), 0o644))
	bin := fakeMaven(t, "exit 0\n")

	s := NewScanner(scanner.Options{Binary: bin, Dir: dir})
	rec, err := s.Licenses(context.Background())
	require.NoError(t, err)
	_, ok := rec.Get("root-lib")
	assert.True(t, ok)
}

func TestScanner_Licenses_MissingReport(t *testing.T) {
	bin := fakeMaven(t, "exit 0\n")
	s := NewScanner(scanner.Options{Binary: bin, Dir: t.TempDir()})
	rec, err := s.Licenses(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, rec.Len())
}

func TestScanner_Licenses_MavenFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportName), []byte("stale:MIT\n"), 0o644))
	bin := fakeMaven(t, "echo 'BUILD FAILURE' >&2\nexit 1\n")

	s := NewScanner(scanner.Options{Binary: bin, Dir: dir})
	rec, err := s.Licenses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BUILD FAILURE")
	assert.Equal(t, 0, rec.Len())
}

func TestScanner_ReportCandidates_Override(t *testing.T) {
	s := NewScanner(scanner.Options{Dir: "/proj", ReportFile: "licenses/3rd.txt"})
	assert.Equal(t, []string{filepath.Join("/proj", "licenses/3rd.txt")}, s.ReportCandidates())
}
