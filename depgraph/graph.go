package depgraph

import "sort"

// Graph is the owning container of the node map and edge list. Nodes
// hold only id-typed back-references (parent, children); all traversal
// goes through the node map.
type Graph struct {
	Nodes map[string]*Node
	Edges []*Edge

	edgeIndex map[edgeKey]int   // interned (from, to, kind) -> index into Edges, for O(1) dedup
	handles   map[string]uint64 // id -> interned handle
}

func NewGraph() *Graph {
	return &Graph{
		Nodes:     map[string]*Node{},
		edgeIndex: map[edgeKey]int{},
		handles:   map[string]uint64{},
	}
}

// handle returns the interned handle for id, computing and caching it
// on first use.
func (g *Graph) handle(id string) uint64 {
	if h, ok := g.handles[id]; ok {
		return h
	}
	h, _ := InternID(id) // the fixed 32-byte key makes New64 infallible
	g.handles[id] = h
	return h
}

// AddNode registers n, and appends its id to its parent's Children list
// (if the parent is already present), maintaining the parent/child tree
// invariant.
func (g *Graph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
	if n.ParentID != "" {
		if parent, ok := g.Nodes[n.ParentID]; ok {
			parent.Children = append(parent.Children, n.ID)
		}
	}
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// AddEdge records one occurrence of a (from, to, kind) dependency.
// Nothing is recorded when either endpoint is absent from the node map
// or when from == to. Duplicates increment Count and append a Location
// rather than creating a new Edge.
func (g *Graph) AddEdge(from, to string, kind EdgeKind, loc Location) {
	if from == to {
		return
	}
	if !g.HasNode(from) || !g.HasNode(to) {
		return
	}
	key := edgeKey{from: g.handle(from), to: g.handle(to), kind: kind}
	if idx, ok := g.edgeIndex[key]; ok {
		edge := g.Edges[idx]
		edge.Count++
		edge.Locations = append(edge.Locations, loc)
		return
	}
	g.edgeIndex[key] = len(g.Edges)
	g.Edges = append(g.Edges, &Edge{From: from, To: to, Kind: kind, Count: 1, Locations: []Location{loc}})
}

// addRawEdge appends e as-is, updating the dedup index. Used by the
// Workspace Linker when merging already-deduplicated per-crate edges
// under their new crate-prefixed endpoints.
func (g *Graph) addRawEdge(e *Edge) {
	key := edgeKey{from: g.handle(e.From), to: g.handle(e.To), kind: e.Kind}
	g.edgeIndex[key] = len(g.Edges)
	g.Edges = append(g.Edges, e)
}

// AdjacencyOut returns, per node id, the set of distinct node ids it has
// at least one outgoing edge to.
func (g *Graph) AdjacencyOut() map[string]map[string]bool {
	out := map[string]map[string]bool{}
	for _, e := range g.Edges {
		if out[e.From] == nil {
			out[e.From] = map[string]bool{}
		}
		out[e.From][e.To] = true
	}
	return out
}

// AdjacencyIn returns, per node id, the set of distinct node ids with at
// least one outgoing edge into it.
func (g *Graph) AdjacencyIn() map[string]map[string]bool {
	in := map[string]map[string]bool{}
	for _, e := range g.Edges {
		if in[e.To] == nil {
			in[e.To] = map[string]bool{}
		}
		in[e.To][e.From] = true
	}
	return in
}

// SortedNodeIDs returns every node id in sorted order, for
// deterministic iteration.
func (g *Graph) SortedNodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedEdges returns a copy of Edges sorted by (From, To, Kind), so
// JSON output is byte-identical across runs.
func (g *Graph) SortedEdges() []*Edge {
	out := make([]*Edge, len(g.Edges))
	copy(out, g.Edges)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Kind < b.Kind
	})
	return out
}
