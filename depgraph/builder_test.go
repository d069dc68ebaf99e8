package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/rdsmerr"
	"github.com/viant/rdsm/resolve"
)

// TestBuild_TwoFileImport builds a crate with src/lib.rs declaring
// `mod a;` and `use crate::a::Foo;`, and src/a.rs declaring
// `pub struct Foo`.
func TestBuild_TwoFileImport(t *testing.T) {
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	a := ir.NewModule("crate::a", "a", "crate::a", "src/a.rs")
	a.AddStruct(&ir.Struct{ID: "crate::a::Foo", Name: "Foo", Visibility: ir.Visibility{Kind: ir.Public},
		Doc: "/// Foo is a widget.", Attributes: []string{"#[derive(Debug)]"}})
	root.Submodules = []*ir.Module{a}
	root.Uses = []*ir.Use{{Segments: []string{"crate", "a", "Foo"}}}

	idx := resolve.Build(root)
	diag := &rdsmerr.Sink{}
	result := Build(root, idx, diag)
	g := result.Graph

	require.True(t, g.HasNode("crate"))
	require.True(t, g.HasNode("crate::a"))
	require.True(t, g.HasNode("crate::a::Foo"))
	assert.Equal(t, "/// Foo is a widget.", g.Nodes["crate::a::Foo"].Doc)
	assert.Equal(t, []string{"#[derive(Debug)]"}, g.Nodes["crate::a::Foo"].Attributes)

	edgeCount := func(from, to string, kind EdgeKind) int {
		for _, e := range g.Edges {
			if e.From == from && e.To == to && e.Kind == kind {
				return e.Count
			}
		}
		return 0
	}
	assert.Equal(t, 1, edgeCount("crate", "crate::a", EdgeUseImport))
	assert.Equal(t, 1, edgeCount("crate", "crate::a::Foo", EdgeUseImport))
}

// TestBuild_TraitImplementation builds a trait with one method, a
// struct, and an `impl Trait for Struct` providing the method body: the
// impl must produce a trait_impl edge and the method node must be owned
// by the struct, not the impl block.
func TestBuild_TraitImplementation(t *testing.T) {
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	root.AddTrait(&ir.Trait{
		ID:   "crate::Greet",
		Name: "Greet",
		Methods: []*ir.Function{
			{Name: "greet", Visibility: ir.Visibility{Kind: ir.Public}},
		},
	})
	root.AddStruct(&ir.Struct{ID: "crate::Greeter", Name: "Greeter", Visibility: ir.Visibility{Kind: ir.Public}})
	root.Impls = []*ir.Impl{
		{
			TraitRef: &ir.TypeRef{Name: "Greet"},
			SelfType: &ir.TypeRef{Name: "Greeter"},
			Methods: []*ir.Function{
				{Name: "greet", Visibility: ir.Visibility{Kind: ir.Public}},
			},
		},
	}

	idx := resolve.Build(root)
	result := Build(root, idx, &rdsmerr.Sink{})
	g := result.Graph

	require.True(t, g.HasNode("crate::Greeter::greet"))
	method := g.Nodes["crate::Greeter::greet"]
	assert.Equal(t, "crate::Greeter", method.ParentID)

	found := false
	for _, e := range g.Edges {
		if e.From == "crate::Greeter" && e.To == "crate::Greet" && e.Kind == EdgeTraitImpl {
			found = true
		}
	}
	assert.True(t, found, "expected a trait_impl edge from Greeter to Greet")

	// The trait's own signature-only method also gets a node, separate
	// from the impl's concrete method.
	require.True(t, g.HasNode("crate::Greet::greet"))
}

// TestBuild_FieldTypeAndCallEdges exercises field_type edges across
// modules and function_call / method_call edge emission.
func TestBuild_FieldTypeAndCallEdges(t *testing.T) {
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	a := ir.NewModule("crate::a", "a", "crate::a", "src/a.rs")
	a.AddStruct(&ir.Struct{ID: "crate::a::Widget", Name: "Widget", Visibility: ir.Visibility{Kind: ir.Public}})
	root.Submodules = []*ir.Module{a}

	root.AddStruct(&ir.Struct{
		ID:   "crate::Holder",
		Name: "Holder",
		Fields: []ir.Field{
			{Name: "widget", Type: &ir.TypeRef{Name: "Widget"}},
		},
	})
	root.Uses = []*ir.Use{{Segments: []string{"crate", "a", "Widget"}}}

	root.AddFunction(&ir.Function{
		ID:   "crate::make",
		Name: "make",
		Calls: []ir.CallSite{
			{Name: "helper", IsMethod: false},
		},
	})
	root.AddFunction(&ir.Function{ID: "crate::helper", Name: "helper"})

	idx := resolve.Build(root)
	result := Build(root, idx, &rdsmerr.Sink{})
	g := result.Graph

	hasEdge := func(from, to string, kind EdgeKind) bool {
		for _, e := range g.Edges {
			if e.From == from && e.To == to && e.Kind == kind {
				return true
			}
		}
		return false
	}
	assert.True(t, hasEdge("crate::Holder", "crate::a::Widget", EdgeFieldType))
	assert.True(t, hasEdge("crate::make", "crate::helper", EdgeFunctionCall))
}

// TestAggregate_Idempotent checks that running Aggregate on its own
// output changes nothing further.
func TestAggregate_Idempotent(t *testing.T) {
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	a := ir.NewModule("crate::a", "a", "crate::a", "src/a.rs")
	a.AddStruct(&ir.Struct{ID: "crate::a::Foo", Name: "Foo"})
	root.Submodules = []*ir.Module{a}
	root.Uses = []*ir.Use{{Segments: []string{"crate", "a", "Foo"}}}

	idx := resolve.Build(root)
	result := Build(root, idx, &rdsmerr.Sink{})

	once := Aggregate(result.Graph)
	twice := Aggregate(once)

	assert.Equal(t, len(once.Nodes), len(twice.Nodes))
	assert.Equal(t, once.SortedEdges(), twice.SortedEdges())
}

// TestLink_SingleCrateIsPureRename checks that linking a single crate
// just prefixes every id without otherwise changing edge shape.
func TestLink_SingleCrateIsPureRename(t *testing.T) {
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	root.AddStruct(&ir.Struct{ID: "crate::Foo", Name: "Foo"})
	idx := resolve.Build(root)
	result := Build(root, idx, &rdsmerr.Sink{})

	merged := Link([]CrateGraph{{Name: "mycrate", Root: root, Build: result, Index: idx}})
	assert.True(t, merged.HasNode("mycrate::crate"))
	assert.True(t, merged.HasNode("mycrate::crate::Foo"))
}
