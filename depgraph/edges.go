package depgraph

import (
	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/resolve"
)

// pass2EmitEdges walks the module tree again, in the same depth-first,
// source order, emitting every edge kind: uses, then struct/enum
// fields, traits, functions, impls.
func (b *Builder) pass2EmitEdges(m *ir.Module) {
	aliases := b.aliases[m.Path]

	// A `mod name;` (or inline `mod name { ... }`) declaration brings the
	// submodule into scope exactly as a `use` would, so it contributes
	// its own use_import edge from the parent to the child module.
	for _, sub := range m.Submodules {
		b.graph.AddEdge(m.ID, sub.ID, EdgeUseImport, Location{File: sub.File, Line: 1})
	}

	for _, u := range m.Uses {
		for _, ri := range resolve.ResolveUse(u, m.Path, b.idx) {
			b.graph.AddEdge(m.ID, ri.TargetID, EdgeUseImport, locOf(u.Span))
		}
	}

	for _, s := range m.Structs {
		for _, bound := range genericBounds(s.Generics) {
			b.emitTypeEdge(s.ID, bound, m.Path, aliases, EdgeTraitBound)
		}
		for _, field := range s.Fields {
			b.emitFieldType(s.ID, field.Type, m.Path, aliases)
		}
	}

	for _, e := range m.Enums {
		for _, bound := range genericBounds(e.Generics) {
			b.emitTypeEdge(e.ID, bound, m.Path, aliases, EdgeTraitBound)
		}
		for _, variant := range e.Variants {
			for _, field := range variant.Fields {
				b.emitFieldType(e.ID, field.Type, m.Path, aliases)
			}
		}
	}

	for _, t := range m.Traits {
		for _, super := range t.Supertraits {
			b.emitTypeEdge(t.ID, super, m.Path, aliases, EdgeTraitBound)
		}
		for _, method := range t.Methods {
			b.emitFunctionEdges(method, m.Path, aliases)
		}
	}

	for _, f := range m.Functions {
		b.emitFunctionEdges(f, m.Path, aliases)
	}

	for _, impl := range m.Impls {
		selfTypeID, ok := b.resolveTypeRefID(impl.SelfType, m.Path, aliases)
		if !ok {
			continue
		}
		if impl.TraitRef != nil {
			if traitID, ok := b.resolveTypeRefID(impl.TraitRef, m.Path, aliases); ok {
				b.graph.AddEdge(selfTypeID, traitID, EdgeTraitImpl, locOf(impl.Span))
			}
		}
		for _, method := range impl.Methods {
			b.emitFunctionEdges(method, m.Path, aliases)
		}
	}

	for _, sub := range m.Submodules {
		b.pass2EmitEdges(sub)
	}
}

func genericBounds(params []ir.TypeParam) []*ir.TypeRef {
	var out []*ir.TypeRef
	for _, p := range params {
		out = append(out, p.Bounds...)
	}
	return out
}

// emitFieldType recurses through a field's type reference (and its
// generic arguments) emitting field_type edges to every resolvable id.
func (b *Builder) emitFieldType(ownerID string, ref *ir.TypeRef, modulePath string, aliases resolve.AliasTable) {
	if ref == nil {
		return
	}
	b.emitTypeEdge(ownerID, ref, modulePath, aliases, EdgeFieldType)
	for _, arg := range ref.Args {
		b.emitFieldType(ownerID, arg, modulePath, aliases)
	}
}

func (b *Builder) emitTypeEdge(fromID string, ref *ir.TypeRef, modulePath string, aliases resolve.AliasTable, kind EdgeKind) {
	if ref == nil {
		return
	}
	targetID, ok := b.resolveTypeRefID(ref, modulePath, aliases)
	if !ok {
		return
	}
	b.graph.AddEdge(fromID, targetID, kind, locOf(ref.Span))
}

// emitFunctionEdges emits parameter_type, return_type, trait_bound, and
// call-site edges for a function or method.
func (b *Builder) emitFunctionEdges(f *ir.Function, modulePath string, aliases resolve.AliasTable) {
	if f.ID == "" {
		return
	}
	for _, bound := range genericBounds(f.Generics) {
		b.emitTypeEdge(f.ID, bound, modulePath, aliases, EdgeTraitBound)
	}
	for _, param := range f.Parameters {
		if param.Self != ir.SelfNone {
			continue
		}
		b.emitTypeEdge(f.ID, param.Type, modulePath, aliases, EdgeParameterType)
	}
	if f.Return != nil {
		b.emitTypeEdge(f.ID, f.Return, modulePath, aliases, EdgeReturnType)
	}
	for _, call := range f.Calls {
		calleeID, ok := resolve.ResolveTypeName(call.Name, modulePath, aliases, b.idx, b.diag)
		if !ok {
			continue
		}
		kind := EdgeFunctionCall
		if call.IsMethod {
			kind = EdgeMethodCall
		}
		b.graph.AddEdge(f.ID, calleeID, kind, locOf(call.Span))
	}
}

func locOf(span ir.Span) Location {
	return Location{File: span.File, Line: span.Line, Column: span.Column}
}
