package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rdsm/depgraph"
)

func node(id string) *depgraph.Node {
	return &depgraph.Node{ID: id, Name: id, Path: id, Kind: depgraph.KindStruct}
}

// TestDetect_MutualModuleRecursion: module a's type depends on module
// b's type and vice versa, forming one two-node cycle.
func TestDetect_MutualModuleRecursion(t *testing.T) {
	g := depgraph.NewGraph()
	g.AddNode(node("crate::a::T"))
	g.AddNode(node("crate::b::U"))
	g.AddEdge("crate::a::T", "crate::b::U", depgraph.EdgeFieldType, depgraph.Location{File: "a.rs", Line: 1})
	g.AddEdge("crate::b::U", "crate::a::T", depgraph.EdgeFieldType, depgraph.Location{File: "b.rs", Line: 1})

	cycles := Detect(g)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"crate::a::T", "crate::b::U"}, cycles[0].Nodes)
	assert.Len(t, cycles[0].Edges, 2)

	members := GetNodesInCycles(cycles)
	assert.True(t, members["crate::a::T"])
	assert.True(t, members["crate::b::U"])

	c := GetCycleForNode("crate::a::T", cycles)
	require.NotNil(t, c)
	assert.Equal(t, cycles[0].Nodes, c.Nodes)
}

func TestDetect_NoCycleInDAG(t *testing.T) {
	g := depgraph.NewGraph()
	g.AddNode(node("crate::a"))
	g.AddNode(node("crate::b"))
	g.AddEdge("crate::a", "crate::b", depgraph.EdgeUseImport, depgraph.Location{})

	cycles := Detect(g)
	assert.Empty(t, cycles)
}

func TestSortCyclesBySize_DescendingWithTieBreak(t *testing.T) {
	cycles := []Cycle{
		{Nodes: []string{"z", "y"}},
		{Nodes: []string{"a", "b", "c"}},
		{Nodes: []string{"m", "n"}},
	}
	sorted := SortCyclesBySize(cycles)
	require.Len(t, sorted, 3)
	assert.Equal(t, 3, len(sorted[0].Nodes))
	assert.Equal(t, []string{"m", "n"}, sorted[1].Nodes)
	assert.Equal(t, []string{"z", "y"}, sorted[2].Nodes)
}

func TestDetectModuleLevel_AggregatesFirst(t *testing.T) {
	g := depgraph.NewGraph()
	a := &depgraph.Node{ID: "crate::a", Name: "a", Path: "crate::a", Kind: depgraph.KindModule}
	b := &depgraph.Node{ID: "crate::b", Name: "b", Path: "crate::b", Kind: depgraph.KindModule}
	g.AddNode(a)
	g.AddNode(b)
	foo := &depgraph.Node{ID: "crate::a::Foo", Name: "Foo", Path: "crate::a::Foo", Kind: depgraph.KindStruct, ParentID: "crate::a"}
	bar := &depgraph.Node{ID: "crate::b::Bar", Name: "Bar", Path: "crate::b::Bar", Kind: depgraph.KindStruct, ParentID: "crate::b"}
	g.AddNode(foo)
	g.AddNode(bar)
	g.AddEdge("crate::a::Foo", "crate::b::Bar", depgraph.EdgeFieldType, depgraph.Location{})
	g.AddEdge("crate::b::Bar", "crate::a::Foo", depgraph.EdgeFieldType, depgraph.Location{})

	cycles := DetectModuleLevel(g)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"crate::a", "crate::b"}, cycles[0].Nodes)
}
