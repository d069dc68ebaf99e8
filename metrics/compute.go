package metrics

import (
	"sort"

	"github.com/viant/rdsm/cycle"
	"github.com/viant/rdsm/depgraph"
	"github.com/viant/rdsm/ir"
)

// nonModuleLinesOfCode is the constant stand-in used for
// struct/enum/trait/function nodes, which have no span-to-line counting.
const nonModuleLinesOfCode = 10

// LineCounter returns the line count of file, reading it at most once
// per distinct path.
type LineCounter func(file string) int

// CachingLineCounter wraps a raw reader into a LineCounter that memoizes
// by file path.
func CachingLineCounter(read func(file string) (int, error)) LineCounter {
	cache := map[string]int{}
	return func(file string) int {
		if n, ok := cache[file]; ok {
			return n
		}
		n, err := read(file)
		if err != nil {
			n = 0
		}
		cache[file] = n
		return n
	}
}

// CrateRoot pairs one crate's module tree with the id prefix the
// Workspace Linker gave its nodes ("" for a graph that was never linked
// under a crate prefix, "<crateName>::" otherwise), so module-level
// declaration stats can be looked up by the same ids the graph uses.
type CrateRoot struct {
	IDPrefix string
	Root     *ir.Module
}

// Compute runs the full Metrics Engine over g, using cycles for
// inCycle/cycleId and roots for the module-level declaration counts
// (totalTypes, totalTraits, totalFunctions, publicItems, privateItems).
func Compute(g *depgraph.Graph, cycles []cycle.Cycle, roots []CrateRoot, lines LineCounter) *Report {
	if lines == nil {
		lines = func(string) int { return 0 }
	}

	nodeToCycle := map[string]int{}
	for i, c := range cycles {
		for _, n := range c.Nodes {
			nodeToCycle[n] = i
		}
	}
	inCycle := cycle.GetNodesInCycles(cycles)

	adjOut := g.AdjacencyOut()
	adjIn := g.AdjacencyIn()
	fanOutCount, fanInCount := edgeCounts(g)

	moduleStats := map[string]declStats{}
	for _, cr := range roots {
		for id, stats := range computeModuleStats(cr.Root) {
			moduleStats[cr.IDPrefix+id] = stats
		}
	}

	report := &Report{
		Modules: map[string]ModuleMetrics{},
		Nodes:   map[string]NodeMetrics{},
	}

	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		ca := len(adjIn[id])
		ce := len(adjOut[id])
		instability := 0.0
		if ca+ce > 0 {
			instability = float64(ce) / float64(ca+ce)
		}
		abstractness := 0.0
		if n.Kind == depgraph.KindTrait {
			abstractness = 1
		}

		loc := nonModuleLinesOfCode
		if n.Kind == depgraph.KindModule {
			loc = lines(n.File)
		}

		complexity := 1
		if n.Kind == depgraph.KindFunction {
			complexity = 1 + fanOutCount[id]
		}

		nm := NodeMetrics{
			NodeID:       id,
			Ca:           ca,
			Ce:           ce,
			Instability:  instability,
			Abstractness: abstractness,
			FanIn:        fanInCount[id],
			FanOut:       fanOutCount[id],
			LinesOfCode:  loc,
			Complexity:   complexity,
			InCycle:      inCycle[id],
		}
		if idx, ok := nodeToCycle[id]; ok {
			cid := idx
			nm.CycleID = &cid
		}

		if n.Kind == depgraph.KindModule {
			stats := moduleStats[id]
			moduleAbstractness := 0.0
			denom := stats.totalTypes + stats.totalTraits
			if denom > 0 {
				moduleAbstractness = float64(stats.totalTraits) / float64(denom)
			}
			nm.Abstractness = moduleAbstractness
			nm.Distance = distance(moduleAbstractness, instability)
			report.Modules[id] = ModuleMetrics{
				NodeMetrics:    nm,
				TotalTypes:     stats.totalTypes,
				TotalTraits:    stats.totalTraits,
				TotalFunctions: stats.totalFunctions,
				PublicItems:    stats.publicItems,
				PrivateItems:   stats.privateItems,
			}
			continue
		}

		nm.Distance = distance(abstractness, instability)
		report.Nodes[id] = nm
	}

	report.Crate = computeCrateMetrics(g, report, cycles)
	return report
}

func distance(a, i float64) float64 {
	d := a + i - 1
	if d < 0 {
		return -d
	}
	return d
}

func edgeCounts(g *depgraph.Graph) (fanOut, fanIn map[string]int) {
	fanOut = map[string]int{}
	fanIn = map[string]int{}
	for _, e := range g.Edges {
		fanOut[e.From] += e.Count
		fanIn[e.To] += e.Count
	}
	return fanOut, fanIn
}

type declStats struct {
	totalTypes     int
	totalTraits    int
	totalFunctions int
	publicItems    int
	privateItems   int
}

func computeModuleStats(root *ir.Module) map[string]declStats {
	out := map[string]declStats{}
	if root == nil {
		return out
	}
	root.Walk(func(m *ir.Module) {
		var s declStats
		count := func(vis ir.Visibility) {
			if vis.IsPublic() {
				s.publicItems++
			} else {
				s.privateItems++
			}
		}
		for _, st := range m.Structs {
			s.totalTypes++
			count(st.Visibility)
		}
		for _, e := range m.Enums {
			s.totalTypes++
			count(e.Visibility)
		}
		for _, ta := range m.TypeAliases {
			s.totalTypes++
			count(ta.Visibility)
		}
		for _, t := range m.Traits {
			s.totalTraits++
			count(t.Visibility)
		}
		for _, f := range m.Functions {
			s.totalFunctions++
			count(f.Visibility)
		}
		out[m.ID] = s
	})
	return out
}

func computeCrateMetrics(g *depgraph.Graph, report *Report, cycles []cycle.Cycle) CrateMetrics {
	var cm CrateMetrics
	cm.TotalModules = len(report.Modules)
	cm.CycleCount = len(cycles)

	var sumI, sumA, sumD float64
	for _, mm := range report.Modules {
		cm.TotalTypesAndTraits += mm.TotalTypes + mm.TotalTraits
		cm.TotalFunctions += mm.TotalFunctions
		cm.TotalLines += mm.LinesOfCode
		sumI += mm.Instability
		sumA += mm.Abstractness
		sumD += mm.Distance
	}
	if cm.TotalModules > 0 {
		cm.AverageInstability = sumI / float64(cm.TotalModules)
		cm.AverageAbstractness = sumA / float64(cm.TotalModules)
		cm.AverageDistance = sumD / float64(cm.TotalModules)
	}

	type scored struct {
		id    string
		value float64
	}
	var coupled, unstable, distant []scored
	for id, nm := range report.Nodes {
		coupled = append(coupled, scored{id, float64(nm.Ca + nm.Ce)})
		unstable = append(unstable, scored{id, nm.Instability})
		distant = append(distant, scored{id, nm.Distance})
	}

	rank := func(items []scored) []string {
		sort.Slice(items, func(i, j int) bool {
			if items[i].value != items[j].value {
				return items[i].value > items[j].value
			}
			return items[i].id < items[j].id
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		out := make([]string, n)
		for i := 0; i < n; i++ {
			out[i] = items[i].id
		}
		return out
	}

	cm.Top = TopLists{
		MostCoupled:     rank(coupled),
		MostUnstable:    rank(unstable),
		HighestDistance: rank(distant),
	}
	return cm
}
