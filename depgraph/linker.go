package depgraph

import (
	"strings"

	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/resolve"
)

// CrateGraph is one resolved, already-built crate ready for workspace
// linking.
type CrateGraph struct {
	Name  string
	Root  *ir.Module
	Build *BuildResult
	Index *resolve.Index
}

// Link merges the per-crate graphs under a crate-prefixed namespace and
// synthesizes inter-crate edges from cross-crate imports. With a single
// crate this degenerates to a pure rename (crateName::-prefixed ids) of
// that crate's own graph.
func Link(crates []CrateGraph) *Graph {
	merged := NewGraph()
	normByName := map[string]*CrateGraph{}
	for i := range crates {
		normByName[normalizeCrateName(crates[i].Name)] = &crates[i]
	}

	for _, c := range crates {
		prefix := c.Name + "::"
		for _, id := range c.Build.Graph.SortedNodeIDs() {
			n := c.Build.Graph.Nodes[id]
			newNode := &Node{
				ID:         prefix + n.ID,
				Name:       n.Name,
				Path:       prefix + n.Path,
				Kind:       n.Kind,
				File:       n.File,
				Line:       n.Line,
				Doc:        n.Doc,
				Attributes: n.Attributes,
			}
			if n.ParentID != "" {
				newNode.ParentID = prefix + n.ParentID
			}
			for _, child := range n.Children {
				newNode.Children = append(newNode.Children, prefix+child)
			}
			// Children are already copied, so the node is stored directly:
			// AddNode would append each child to its parent a second time.
			merged.Nodes[newNode.ID] = newNode
		}
		for _, e := range c.Build.Graph.Edges {
			merged.addRawEdge(&Edge{
				From:      prefix + e.From,
				To:        prefix + e.To,
				Kind:      e.Kind,
				Count:     e.Count,
				Locations: append([]Location(nil), e.Locations...),
			})
		}
	}

	for _, c := range crates {
		linkCrossCrateImports(merged, c, normByName)
	}

	return merged
}

func normalizeCrateName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// linkCrossCrateImports re-walks c's original (unprefixed) module tree
// looking for use declarations whose leading segment names another
// workspace crate, and for bare type names that match something one of
// those imports brought into scope.
func linkCrossCrateImports(merged *Graph, c CrateGraph, normByName map[string]*CrateGraph) {
	c.Root.Walk(func(m *ir.Module) {
		moduleID := c.Name + "::" + m.ID
		imported := map[string]string{} // local name -> prefixed remote node id

		for _, u := range m.Uses {
			if len(u.Segments) == 0 {
				continue
			}
			first := u.Segments[0]
			if first == "crate" || first == "self" || first == "super" {
				continue
			}
			if first == "std" || first == "core" || first == "alloc" {
				continue
			}
			remote, ok := normByName[normalizeCrateName(first)]
			if !ok {
				continue
			}
			names := crossCrateTargetNames(u)
			for local, remoteName := range names {
				remoteID, ok := lookupByLastSegment(remote, remoteName)
				if !ok {
					continue
				}
				prefixedRemoteID := remote.Name + "::" + remoteID
				merged.AddEdge(moduleID, prefixedRemoteID, EdgeUseImport, locOf(u.Span))
				imported[local] = prefixedRemoteID
			}
		}

		if len(imported) == 0 {
			return
		}
		scanTypeRefsForCrossCrateFields(merged, m, c.Name, imported)
	})
}

// crossCrateTargetNames returns, for one use declaration, the map of
// local alias -> remote short name it introduces (glob imports are not
// expanded here since the remote crate's public-name enumeration is not
// available without its own index; this is a documented limitation).
func crossCrateTargetNames(u *ir.Use) map[string]string {
	out := map[string]string{}
	if u.Glob {
		return out
	}
	if len(u.Items) > 0 {
		for _, item := range u.Items {
			local := item.Name
			if item.Alias != "" {
				local = item.Alias
			}
			out[local] = item.Name
		}
		return out
	}
	if len(u.Segments) > 1 {
		name := u.Segments[len(u.Segments)-1]
		out[name] = name
	}
	return out
}

func lookupByLastSegment(c *CrateGraph, name string) (string, bool) {
	matches := c.Index.SuffixMatches(name)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// scanTypeRefsForCrossCrateFields emits type edges for struct, enum,
// trait, and function declarations in m whose type references resolve
// to a name imported from another workspace crate. Each reference keeps
// the edge kind of its position: struct/enum fields emit field_type,
// parameters parameter_type, returns return_type, supertraits
// trait_bound.
func scanTypeRefsForCrossCrateFields(merged *Graph, m *ir.Module, crateName string, imported map[string]string) {
	emit := func(ownerID string, ref *ir.TypeRef, kind EdgeKind) {
		if ref == nil {
			return
		}
		if remoteID, ok := imported[ref.Name]; ok {
			merged.AddEdge(crateName+"::"+ownerID, remoteID, kind, locOf(ref.Span))
		}
	}
	for _, s := range m.Structs {
		for _, f := range s.Fields {
			emit(s.ID, f.Type, EdgeFieldType)
		}
	}
	for _, e := range m.Enums {
		for _, v := range e.Variants {
			for _, f := range v.Fields {
				emit(e.ID, f.Type, EdgeFieldType)
			}
		}
	}
	for _, t := range m.Traits {
		for _, super := range t.Supertraits {
			emit(t.ID, super, EdgeTraitBound)
		}
	}
	for _, f := range m.Functions {
		for _, p := range f.Parameters {
			emit(f.ID, p.Type, EdgeParameterType)
		}
		emit(f.ID, f.Return, EdgeReturnType)
	}
}
