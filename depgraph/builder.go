package depgraph

import (
	"strings"

	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/rdsmerr"
	"github.com/viant/rdsm/resolve"
)

// Builder runs the two-pass Graph Builder over one crate's resolved
// module tree.
type Builder struct {
	graph   *Graph
	idx     *resolve.Index
	diag    *rdsmerr.Sink
	aliases map[string]resolve.AliasTable // module path -> alias table
}

// BuildResult is one crate's fully built graph plus the per-module alias
// tables the Workspace Linker needs to re-attempt cross-crate lookups.
type BuildResult struct {
	Graph   *Graph
	Aliases map[string]resolve.AliasTable
}

// Build runs both passes over root and returns the populated graph.
func Build(root *ir.Module, idx *resolve.Index, diag *rdsmerr.Sink) *BuildResult {
	b := &Builder{graph: NewGraph(), idx: idx, diag: diag, aliases: map[string]resolve.AliasTable{}}
	b.resolveAliases(root)
	b.pass1CreateNodes(root, "")
	b.pass2EmitEdges(root)
	return &BuildResult{Graph: b.graph, Aliases: b.aliases}
}

func (b *Builder) resolveAliases(m *ir.Module) {
	var resolved []resolve.ResolvedImport
	for _, u := range m.Uses {
		resolved = append(resolved, resolve.ResolveUse(u, m.Path, b.idx)...)
	}
	b.aliases[m.Path] = resolve.BuildAliasTable(resolved)
	for _, sub := range m.Submodules {
		b.resolveAliases(sub)
	}
}

// pass1CreateNodes creates a node for every module, struct, enum, trait,
// top-level function, and every method inside an impl block.
func (b *Builder) pass1CreateNodes(m *ir.Module, parentID string) {
	lineOf := func(line int) int {
		if line <= 0 {
			return 1
		}
		return line
	}
	b.graph.AddNode(&Node{
		ID: m.ID, Name: shortName(m.Path), Path: m.Path, Kind: KindModule,
		ParentID: parentID, File: m.File, Line: 1,
	})

	for _, s := range m.Structs {
		b.graph.AddNode(&Node{ID: s.ID, Name: s.Name, Path: s.ID, Kind: KindStruct,
			ParentID: m.ID, File: m.File, Line: lineOf(s.Span.Line),
			Doc: s.Doc, Attributes: s.Attributes})
	}
	for _, e := range m.Enums {
		b.graph.AddNode(&Node{ID: e.ID, Name: e.Name, Path: e.ID, Kind: KindEnum,
			ParentID: m.ID, File: m.File, Line: lineOf(e.Span.Line),
			Doc: e.Doc, Attributes: e.Attributes})
	}
	for _, t := range m.Traits {
		b.graph.AddNode(&Node{ID: t.ID, Name: t.Name, Path: t.ID, Kind: KindTrait,
			ParentID: m.ID, File: m.File, Line: lineOf(t.Span.Line),
			Doc: t.Doc, Attributes: t.Attributes})
		for _, method := range t.Methods {
			method.ID = t.ID + "::" + method.Name
			if b.graph.HasNode(method.ID) {
				continue
			}
			b.graph.AddNode(&Node{ID: method.ID, Name: method.Name, Path: method.ID, Kind: KindFunction,
				ParentID: t.ID, File: m.File, Line: lineOf(method.Span.Line),
				Doc: method.Doc, Attributes: method.Attributes})
		}
	}
	for _, f := range m.Functions {
		b.graph.AddNode(&Node{ID: f.ID, Name: f.Name, Path: f.ID, Kind: KindFunction,
			ParentID: m.ID, File: m.File, Line: lineOf(f.Span.Line),
			Doc: f.Doc, Attributes: f.Attributes})
	}

	aliases := b.aliases[m.Path]
	for _, impl := range m.Impls {
		selfTypeID, ok := b.resolveTypeRefID(impl.SelfType, m.Path, aliases)
		if !ok {
			continue // self-type not in this crate: its methods are skipped
		}
		for _, method := range impl.Methods {
			method.ID = selfTypeID + "::" + method.Name
			if b.graph.HasNode(method.ID) {
				continue // first impl-block visit wins
			}
			b.graph.AddNode(&Node{ID: method.ID, Name: method.Name, Path: method.ID, Kind: KindFunction,
				ParentID: selfTypeID, File: m.File, Line: lineOf(method.Span.Line),
				Doc: method.Doc, Attributes: method.Attributes})
		}
	}

	for _, sub := range m.Submodules {
		b.pass1CreateNodes(sub, m.ID)
	}
}

// resolveTypeRefID resolves a TypeRef to a node id by its last path
// segment: a qualified name such as `a::Foo` is cut to `Foo` before the
// tiered lookup. Reference markers never reach here, since the extractor
// records `&T`/`&mut T` as flags with T's name.
func (b *Builder) resolveTypeRefID(ref *ir.TypeRef, modulePath string, aliases resolve.AliasTable) (string, bool) {
	if ref == nil {
		return "", false
	}
	name := ref.Name
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		name = name[idx+2:]
	}
	return resolve.ResolveTypeName(name, modulePath, aliases, b.idx, b.diag)
}

func shortName(path string) string {
	parts := strings.Split(path, "::")
	return parts[len(parts)-1]
}
