// Package report is the thin JSON interchange layer: it assembles the
// four in-memory outputs (crate tree, graph, cycles, metrics) into the
// wire format and marshals it with encoding/json. The data model's
// field names already match the wire format verbatim, so no custom
// marshaler is needed.
package report

import (
	"encoding/json"

	"github.com/viant/rdsm/cycle"
	"github.com/viant/rdsm/depgraph"
	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/manifest"
	"github.com/viant/rdsm/metrics"
	"gopkg.in/yaml.v3"
)

// CrateEntry pairs one resolved crate's name with its module tree, the
// input Build needs to populate the `crate` top-level key.
type CrateEntry struct {
	Name string
	Root *ir.Module
}

// GraphView is the `graph` top-level key.
type GraphView struct {
	Nodes []*depgraph.Node `json:"nodes"`
	Edges []*depgraph.Edge `json:"edges"`
}

// CycleView is one entry of the `cycles` top-level array.
type CycleView struct {
	Nodes []string         `json:"nodes"`
	Edges []*depgraph.Edge `json:"edges"`
}

// MetricsView is the `metrics` top-level key.
type MetricsView struct {
	Crate   metrics.CrateMetrics             `json:"crate"`
	Modules map[string]metrics.ModuleMetrics `json:"modules"`
	Nodes   map[string]metrics.NodeMetrics   `json:"nodes"`
}

// Document is the full JSON interchange document. Crate holds the
// crate-definition tree: a single *ir.Module for a single-crate run, or
// a name-keyed map of module trees for a workspace run (the JSON field
// names of the crate-definition entity itself are the same either way).
type Document struct {
	Crate   interface{} `json:"crate"`
	Graph   GraphView   `json:"graph"`
	Cycles  []CycleView `json:"cycles"`
	Metrics MetricsView `json:"metrics"`
}

// Build assembles a Document from the pipeline's four outputs.
func Build(crates []CrateEntry, g *depgraph.Graph, cycles []cycle.Cycle, report *metrics.Report) *Document {
	nodes := make([]*depgraph.Node, 0, len(g.Nodes))
	for _, id := range g.SortedNodeIDs() {
		nodes = append(nodes, g.Nodes[id])
	}

	cycleViews := make([]CycleView, 0, len(cycles))
	for _, c := range cycles {
		cycleViews = append(cycleViews, CycleView{Nodes: c.Nodes, Edges: c.Edges})
	}

	return &Document{
		Crate:  crateValue(crates),
		Graph:  GraphView{Nodes: nodes, Edges: g.SortedEdges()},
		Cycles: cycleViews,
		Metrics: MetricsView{
			Crate:   report.Crate,
			Modules: report.Modules,
			Nodes:   report.Nodes,
		},
	}
}

// crateValue picks the bare module tree when there is exactly one
// crate, and a name-keyed map for a workspace run.
func crateValue(crates []CrateEntry) interface{} {
	if len(crates) == 1 {
		return crates[0].Root
	}
	byName := make(map[string]*ir.Module, len(crates))
	for _, c := range crates {
		byName[c.Name] = c.Root
	}
	return byName
}

// Render marshals d as indented JSON. Map keys serialize in sorted
// order, so repeated runs over the same input are byte-identical.
func Render(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// DumpFilterConfigs renders both FilterConfig presets as YAML, for
// the --dump-config flag.
func DumpFilterConfigs() ([]byte, error) {
	presets := map[string]manifest.FilterConfig{
		"default":  manifest.DefaultFilterConfig(),
		"no-tests": manifest.NoTestsFilterConfig(),
	}
	return yaml.Marshal(presets)
}
