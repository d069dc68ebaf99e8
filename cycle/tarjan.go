// Package cycle runs Tarjan's SCC algorithm over a depgraph.Graph's
// adjacency lists, reporting every SCC of size >= 2 plus every size-1
// SCC whose single node has a self-loop. The classic recursive shape is
// rewritten as an explicit work-stack DFS so a deep call chain cannot
// exhaust the system stack.
package cycle

import (
	"sort"

	"github.com/viant/rdsm/depgraph"
)

// Cycle is one reported strongly connected component.
type Cycle struct {
	Nodes []string
	Edges []*depgraph.Edge
}

// frame is one explicit call-stack entry for the iterative strongConnect.
type frame struct {
	node      string
	childIdx  int
	neighbors []string
}

// tarjan carries the algorithm's working state across the whole run.
type tarjan struct {
	graph   *depgraph.Graph
	adj     map[string]map[string]bool
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	next    int
	sccs    [][]string
}

// Detect runs Tarjan's SCC algorithm over g and returns every
// reportable cycle, sorted by descending size since callers invariably
// want the largest cycles first.
func Detect(g *depgraph.Graph) []Cycle {
	t := &tarjan{
		graph:   g,
		adj:     g.AdjacencyOut(),
		index:   map[string]int{},
		lowlink: map[string]int{},
		onStack: map[string]bool{},
	}

	for _, id := range g.SortedNodeIDs() {
		if _, visited := t.index[id]; !visited {
			t.strongConnectIterative(id)
		}
	}

	var out []Cycle
	for _, scc := range t.sccs {
		if len(scc) >= 2 || (len(scc) == 1 && t.adj[scc[0]][scc[0]]) {
			out = append(out, Cycle{Nodes: scc, Edges: edgesWithin(g, scc)})
		}
	}
	return SortCyclesBySize(out)
}

// strongConnectIterative is Tarjan's strongConnect rewritten as an
// explicit work-stack so a pathologically deep call graph cannot
// overflow the Go call stack (rdsmerr.CycleDetectorStackOverflow).
func (t *tarjan) strongConnectIterative(start string) {
	var work []*frame
	push := func(v string) *frame {
		t.index[v] = t.next
		t.lowlink[v] = t.next
		t.next++
		t.stack = append(t.stack, v)
		t.onStack[v] = true
		f := &frame{node: v, neighbors: sortedNeighbors(t.adj[v])}
		work = append(work, f)
		return f
	}

	push(start)

	for len(work) > 0 {
		f := work[len(work)-1]
		if f.childIdx < len(f.neighbors) {
			w := f.neighbors[f.childIdx]
			f.childIdx++
			if w == f.node {
				// depgraph.AddEdge never records a self-edge, so this is
				// unreachable in practice; guarded here only so the
				// size-1-with-self-loop case in Detect stays correct if
				// that invariant is ever relaxed.
				continue
			}
			if _, visited := t.index[w]; !visited {
				push(w)
				continue
			}
			if t.onStack[w] {
				if t.index[w] < t.lowlink[f.node] {
					t.lowlink[f.node] = t.index[w]
				}
			}
			continue
		}

		// All neighbors processed: pop this frame, propagate lowlink to
		// the caller, and emit an SCC if f.node is a root.
		work = work[:len(work)-1]
		if len(work) > 0 {
			parent := work[len(work)-1]
			if t.lowlink[f.node] < t.lowlink[parent.node] {
				t.lowlink[parent.node] = t.lowlink[f.node]
			}
		}
		if t.lowlink[f.node] == t.index[f.node] {
			var scc []string
			for {
				n := len(t.stack) - 1
				w := t.stack[n]
				t.stack = t.stack[:n]
				t.onStack[w] = false
				scc = append(scc, w)
				if w == f.node {
					break
				}
			}
			t.sccs = append(t.sccs, scc)
		}
	}
}

func sortedNeighbors(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func edgesWithin(g *depgraph.Graph, scc []string) []*depgraph.Edge {
	members := map[string]bool{}
	for _, n := range scc {
		members[n] = true
	}
	var out []*depgraph.Edge
	for _, e := range g.SortedEdges() {
		if members[e.From] && members[e.To] {
			out = append(out, e)
		}
	}
	return out
}

// GetNodesInCycles returns the set of every node id appearing in any of
// cycles.
func GetNodesInCycles(cycles []Cycle) map[string]bool {
	out := map[string]bool{}
	for _, c := range cycles {
		for _, n := range c.Nodes {
			out[n] = true
		}
	}
	return out
}

// GetCycleForNode returns the cycle containing id, or nil if id is not
// in any reported cycle.
func GetCycleForNode(id string, cycles []Cycle) *Cycle {
	for i := range cycles {
		for _, n := range cycles[i].Nodes {
			if n == id {
				return &cycles[i]
			}
		}
	}
	return nil
}

// SortCyclesBySize returns cycles ordered by descending size, breaking
// ties by the sorted first member id for determinism.
func SortCyclesBySize(cycles []Cycle) []Cycle {
	out := make([]Cycle, len(cycles))
	copy(out, cycles)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Nodes) != len(out[j].Nodes) {
			return len(out[i].Nodes) > len(out[j].Nodes)
		}
		return firstSorted(out[i].Nodes) < firstSorted(out[j].Nodes)
	})
	return out
}

func firstSorted(nodes []string) string {
	cp := append([]string(nil), nodes...)
	sort.Strings(cp)
	if len(cp) == 0 {
		return ""
	}
	return cp[0]
}

// DetectModuleLevel aggregates g to module granularity and then runs
// the same algorithm over that view.
func DetectModuleLevel(g *depgraph.Graph) []Cycle {
	return Detect(depgraph.Aggregate(g))
}
