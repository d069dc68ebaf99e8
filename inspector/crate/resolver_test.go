package crate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rdsm/manifest"
	"github.com/viant/rdsm/rdsmerr"
)

type fakeFS struct {
	files map[string]string
}

func newFakeFS(files map[string]string) *fakeFS {
	return &fakeFS{files: files}
}

func (f *fakeFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	if content, ok := f.files[path]; ok {
		return []byte(content), nil
	}
	return nil, errors.New("not found: " + path)
}

func (f *fakeFS) Exists(_ context.Context, path string) bool {
	_, ok := f.files[path]
	return ok
}

func TestResolveCrate_TwoFileImport(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"/proj/src/lib.rs": "mod a;\nuse crate::a::Foo;\n",
		"/proj/src/a.rs":   "pub struct Foo;\n",
	})
	diag := &rdsmerr.Sink{}
	resolver := NewResolver(fs, WithFilterConfig(manifest.DefaultFilterConfig()), WithDiagnostics(diag))

	root, name, err := resolver.ResolveCrate(context.Background(), "/proj")
	require.NoError(t, err)
	assert.Equal(t, "proj", name)
	require.Len(t, root.Submodules, 1)
	assert.Equal(t, "a", root.Submodules[0].Name)
	require.Len(t, root.Submodules[0].Structs, 1)
	assert.Equal(t, "Foo", root.Submodules[0].Structs[0].Name)
	assert.Equal(t, 0, diag.Len())
}

func TestResolveCrate_MissingModDeclIsDiagnostic(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"/proj/src/lib.rs": "mod missing;\n",
	})
	diag := &rdsmerr.Sink{}
	resolver := NewResolver(fs, WithDiagnostics(diag))

	root, _, err := resolver.ResolveCrate(context.Background(), "/proj")
	require.NoError(t, err)
	assert.Empty(t, root.Submodules)
	assert.Equal(t, 1, diag.Len())
}

func TestResolveCrate_NoEntryPointIsFatal(t *testing.T) {
	fs := newFakeFS(map[string]string{})
	resolver := NewResolver(fs)

	_, _, err := resolver.ResolveCrate(context.Background(), "/proj")
	require.Error(t, err)
	var rerr *rdsmerr.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, rdsmerr.ManifestError, rerr.Kind)
}

func TestResolveCrate_NoTestsPresetExcludesTestFiles(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"/proj/src/lib.rs":         "mod utils;\nmod utils_tests;\n",
		"/proj/src/utils.rs":       "pub fn run() {}\n",
		"/proj/src/utils_tests.rs": "fn it_works() {}\n",
	})
	diag := &rdsmerr.Sink{}
	resolver := NewResolver(fs, WithFilterConfig(manifest.NoTestsFilterConfig()), WithDiagnostics(diag))

	root, _, err := resolver.ResolveCrate(context.Background(), "/proj")
	require.NoError(t, err)
	var names []string
	for _, sub := range root.Submodules {
		names = append(names, sub.Name)
	}
	assert.Equal(t, []string{"utils"}, names)
}

func TestResolveCrate_CfgTestInlineModuleExcludedByNoTestsPreset(t *testing.T) {
	fs := newFakeFS(map[string]string{
		"/proj/src/lib.rs": "#[cfg(test)]\nmod tests {\n    fn it_works() {}\n}\n",
	})
	resolver := NewResolver(fs, WithFilterConfig(manifest.NoTestsFilterConfig()))
	root, _, err := resolver.ResolveCrate(context.Background(), "/proj")
	require.NoError(t, err)
	assert.Empty(t, root.Submodules)

	resolverDefault := NewResolver(fs, WithFilterConfig(manifest.DefaultFilterConfig()))
	rootDefault, _, err := resolverDefault.ResolveCrate(context.Background(), "/proj")
	require.NoError(t, err)
	require.Len(t, rootDefault.Submodules, 1)
	assert.Equal(t, "tests", rootDefault.Submodules[0].Name)
}
