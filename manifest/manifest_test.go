package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_PackageAndLib(t *testing.T) {
	text := `
# a comment
[package]
name = "widgets" # trailing comment
version = "0.1.0"

[lib]
path = "src/lib.rs"
`
	m := Parse(text)
	assert.Equal(t, "widgets", m.PackageName)
	assert.Equal(t, "src/lib.rs", m.LibPath)
}

func TestParse_Binaries(t *testing.T) {
	text := `
[package]
name = "tool"

[[bin]]
name = "tool"
path = "src/main.rs"

[[bin]]
name = "tool2"
path = "src/bin/tool2.rs"
`
	m := Parse(text)
	assert.Len(t, m.Binaries, 2)
	assert.Equal(t, Binary{Name: "tool", Path: "src/main.rs"}, m.Binaries[0])
	assert.Equal(t, Binary{Name: "tool2", Path: "src/bin/tool2.rs"}, m.Binaries[1])
}

func TestParse_WorkspaceMembersSingleLine(t *testing.T) {
	text := `
[workspace]
members = ["alpha", "beta"]
`
	m := Parse(text)
	assert.Equal(t, []string{"alpha", "beta"}, m.WorkspaceGlobs)
}

func TestParse_WorkspaceMembersMultiLine(t *testing.T) {
	text := `
[workspace]
members = [
    "alpha",
    "beta",
    "crates/*",
]
`
	m := Parse(text)
	assert.Equal(t, []string{"alpha", "beta", "crates/*"}, m.WorkspaceGlobs)
}

func TestParse_EmptyManifestIsZero(t *testing.T) {
	m := Parse("")
	assert.Equal(t, Manifest{}, m)
}

func TestFilterConfigPresets(t *testing.T) {
	def := DefaultFilterConfig()
	assert.False(t, def.ExcludeTestFiles)
	assert.False(t, def.ExcludeTestsDirectory)
	assert.False(t, def.ExcludeCfgTest)

	noTests := NoTestsFilterConfig()
	assert.True(t, noTests.ExcludeTestFiles)
	assert.True(t, noTests.ExcludeTestsDirectory)
	assert.True(t, noTests.ExcludeCfgTest)
}
