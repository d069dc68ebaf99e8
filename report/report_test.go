package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rdsm/cycle"
	"github.com/viant/rdsm/depgraph"
	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/metrics"
)

func TestBuildAndRender_RoundTripsThroughJSON(t *testing.T) {
	g := depgraph.NewGraph()
	g.AddNode(&depgraph.Node{ID: "crate", Name: "crate", Path: "crate", Kind: depgraph.KindModule})
	g.AddNode(&depgraph.Node{ID: "crate::Foo", Name: "Foo", Path: "crate::Foo", Kind: depgraph.KindStruct, ParentID: "crate"})
	g.AddEdge("crate", "crate::Foo", depgraph.EdgeUseImport, depgraph.Location{File: "src/lib.rs", Line: 1})

	cycles := cycle.Detect(g)
	root := ir.NewModule("crate", "crate", "crate", "src/lib.rs")
	m := metrics.Compute(g, cycles, []metrics.CrateRoot{{Root: root}}, nil)

	doc := Build([]CrateEntry{{Name: "demo", Root: root}}, g, cycles, m)
	data, err := Render(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	crateObj, ok := decoded["crate"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "crate", crateObj["id"])
	assert.Contains(t, decoded, "graph")
	assert.Contains(t, decoded, "cycles")
	assert.Contains(t, decoded, "metrics")
}

func TestDumpFilterConfigs_ContainsBothPresets(t *testing.T) {
	data, err := DumpFilterConfigs()
	require.NoError(t, err)
	assert.Contains(t, string(data), "default")
	assert.Contains(t, string(data), "no-tests")
}
