package depgraph

// Aggregate produces the module-level DSM helper view: every node is
// replaced by its nearest ancestor of kind module, edges landing within
// the same module are dropped, and edges crossing module boundaries are
// collapsed with summed counts and concatenated locations.
//
// Running Aggregate on its own output is a no-op: every node is already
// a module, and nearestModule of a module is itself.
func Aggregate(g *Graph) *Graph {
	moduleOf := map[string]string{}
	for _, id := range g.SortedNodeIDs() {
		moduleOf[id] = nearestModule(g, id)
	}

	out := NewGraph()
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if n.Kind != KindModule {
			continue
		}
		out.AddNode(&Node{
			ID: n.ID, Name: n.Name, Path: n.Path, Kind: n.Kind,
			ParentID: n.ParentID, File: n.File, Line: n.Line,
		})
	}

	for _, e := range g.Edges {
		fromMod, okFrom := moduleOf[e.From]
		toMod, okTo := moduleOf[e.To]
		if !okFrom || !okTo || fromMod == "" || toMod == "" || fromMod == toMod {
			continue
		}
		for _, loc := range e.Locations {
			out.AddEdge(fromMod, toMod, e.Kind, loc)
		}
	}
	return out
}

func nearestModule(g *Graph, id string) string {
	for cur := id; cur != ""; {
		n, ok := g.Nodes[cur]
		if !ok {
			return ""
		}
		if n.Kind == KindModule {
			return n.ID
		}
		cur = n.ParentID
	}
	return ""
}
