package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/rdsmerr"
	"github.com/viant/rdsm/resolve"
)

func buildCrate(t *testing.T, name string, root *ir.Module) CrateGraph {
	t.Helper()
	idx := resolve.Build(root)
	result := Build(root, idx, &rdsmerr.Sink{})
	return CrateGraph{Name: name, Root: root, Build: result, Index: idx}
}

// TestLink_TwoCrateWorkspace links two crates: alpha exposes
// `pub struct Widget;`, beta declares `use alpha::Widget;` and
// `fn f(w: Widget) {}`.
func TestLink_TwoCrateWorkspace(t *testing.T) {
	alphaRoot := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	alphaRoot.AddStruct(&ir.Struct{ID: "crate::Widget", Name: "Widget", Visibility: ir.Visibility{Kind: ir.Public}})

	betaRoot := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	betaRoot.Uses = []*ir.Use{{Segments: []string{"alpha", "Widget"}}}
	betaRoot.AddFunction(&ir.Function{
		ID:   "crate::f",
		Name: "f",
		Parameters: []ir.Parameter{
			{Name: "w", Type: &ir.TypeRef{Name: "Widget"}, Self: ir.SelfNone},
		},
	})

	merged := Link([]CrateGraph{
		buildCrate(t, "alpha", alphaRoot),
		buildCrate(t, "beta", betaRoot),
	})

	require.True(t, merged.HasNode("alpha::crate"))
	require.True(t, merged.HasNode("alpha::crate::Widget"))
	require.True(t, merged.HasNode("beta::crate"))
	require.True(t, merged.HasNode("beta::crate::f"))

	hasEdge := func(from, to string, kind EdgeKind) bool {
		for _, e := range merged.Edges {
			if e.From == from && e.To == to && e.Kind == kind {
				return true
			}
		}
		return false
	}
	assert.True(t, hasEdge("beta::crate", "alpha::crate::Widget", EdgeUseImport))
	assert.True(t, hasEdge("beta::crate::f", "alpha::crate::Widget", EdgeParameterType))
}

// TestLink_HyphenatedCrateNameMatchesUnderscoreImport: the crate is
// named "my-widgets" but the import path uses "my_widgets".
func TestLink_HyphenatedCrateNameMatchesUnderscoreImport(t *testing.T) {
	widgetsRoot := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	widgetsRoot.AddStruct(&ir.Struct{ID: "crate::Widget", Name: "Widget", Visibility: ir.Visibility{Kind: ir.Public}})

	appRoot := ir.NewModule("crate", "crate", "crate", "src/main.rs")
	appRoot.Uses = []*ir.Use{{Segments: []string{"my_widgets", "Widget"}}}

	merged := Link([]CrateGraph{
		buildCrate(t, "my-widgets", widgetsRoot),
		buildCrate(t, "app", appRoot),
	})

	found := false
	for _, e := range merged.Edges {
		if e.From == "app::crate" && e.To == "my-widgets::crate::Widget" && e.Kind == EdgeUseImport {
			found = true
		}
	}
	assert.True(t, found, "expected a use_import edge resolved through hyphen/underscore translation")
}

// TestBuild_EmptyCrate: an entry file that declares nothing yields
// exactly one node and no edges.
func TestBuild_EmptyCrate(t *testing.T) {
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	idx := resolve.Build(root)
	result := Build(root, idx, &rdsmerr.Sink{})

	assert.Len(t, result.Graph.Nodes, 1)
	assert.True(t, result.Graph.HasNode("crate"))
	assert.Empty(t, result.Graph.Edges)
}

// TestBuild_SelfImportEmitsNoSelfEdge: a module re-importing itself via
// `self::` must not produce a self-edge.
func TestBuild_SelfImportEmitsNoSelfEdge(t *testing.T) {
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	a := ir.NewModule("crate::a", "a", "crate::a", "src/a.rs")
	a.Uses = []*ir.Use{{Segments: []string{"self"}}}
	root.Submodules = []*ir.Module{a}

	idx := resolve.Build(root)
	result := Build(root, idx, &rdsmerr.Sink{})

	for _, e := range result.Graph.Edges {
		assert.NotEqual(t, e.From, e.To)
	}
}
