package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalys/licensecheck/internal/types"
)

func TestParseGlobs(t *testing.T) {
	assert.Equal(t, []string{"@internal/*", "my-app"}, ParseGlobs(" @internal/* ,, my-app,"))
	assert.Nil(t, ParseGlobs(""))
}

func TestIgnore(t *testing.T) {
	rec := record("@internal/ui", "GPL-3.0", "@internal/core", "MIT", "react", "MIT", "my-app", "UNLICENSED")

	removed := Ignore(rec, []string{"@internal/*", "my-app"})
	assert.Equal(t, []string{"@internal/ui", "@internal/core", "my-app"}, removed)
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, "react", rec.Dependencies()[0].Name)
}

func TestIgnore_NoGlobs(t *testing.T) {
	rec := record("a", "MIT")
	assert.Nil(t, Ignore(rec, nil))
	assert.Equal(t, 1, rec.Len())
}

func TestIgnore_InvalidPatternNeverMatches(t *testing.T) {
	rec := record("a[", "MIT")
	assert.Empty(t, Ignore(rec, []string{"a["}))
	assert.Equal(t, 1, rec.Len())
}

func TestIgnore_KeyedDependencies(t *testing.T) {
	rec := types.NewRecord()
	rec.Set(types.Dependency{Name: "foo", Version: "1.0.0", License: "GPL-3.0", Key: "foo@1.0.0"})
	rec.Set(types.Dependency{Name: "foo", Version: "2.0.0", License: "MIT", Key: "foo@2.0.0"})
	rec.Set(types.Dependency{Name: "bar", License: "GPL-2.0", Key: "bar@0.1.0"})

	removed := Ignore(rec, []string{"foo"})
	assert.Equal(t, []string{"foo", "foo"}, removed)
	require.Equal(t, 1, rec.Len())
	assert.Equal(t, "bar", rec.Dependencies()[0].Name)
}
