// Package resolve builds a global index of every declared path in the
// crate, resolves import declarations (globs, explicit items, aliases)
// to concrete qualified paths, and resolves individual type references
// through the tiered fallback the graph builder relies on.
package resolve

import (
	"sort"
	"strings"

	"github.com/viant/rdsm/ir"
)

// Kind is the declaration kind a symbol-index entry refers to.
type Kind string

const (
	KindModule   Kind = "module"
	KindStruct   Kind = "struct"
	KindEnum     Kind = "enum"
	KindTrait    Kind = "trait"
	KindFunction Kind = "function"
)

// Index is the flat, fully-qualified-path-keyed symbol table built by
// walking the entire module tree once.
type Index struct {
	byID map[string]Kind
}

// Build walks root depth-first, source order, and records every
// module/struct/enum/trait/function id.
func Build(root *ir.Module) *Index {
	idx := &Index{byID: map[string]Kind{}}
	root.Walk(func(m *ir.Module) {
		idx.byID[m.ID] = KindModule
		for _, s := range m.Structs {
			idx.byID[s.ID] = KindStruct
		}
		for _, e := range m.Enums {
			idx.byID[e.ID] = KindEnum
		}
		for _, t := range m.Traits {
			idx.byID[t.ID] = KindTrait
		}
		for _, f := range m.Functions {
			idx.byID[f.ID] = KindFunction
		}
	})
	return idx
}

// Has reports whether id is a known declaration.
func (idx *Index) Has(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// KindOf returns the kind of a known id.
func (idx *Index) KindOf(id string) (Kind, bool) {
	k, ok := idx.byID[id]
	return k, ok
}

// SortedIDs returns every indexed id in sorted order, so lookups that
// scan the whole index stay deterministic across runs.
func (idx *Index) SortedIDs() []string {
	ids := make([]string, 0, len(idx.byID))
	for id := range idx.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnumerateUnder returns every id directly under base (base + "::" +
// name, with no further "::" in the remainder), in sorted order, for
// glob-import resolution.
func (idx *Index) EnumerateUnder(base string) []string {
	prefix := base + "::"
	var out []string
	for _, id := range idx.SortedIDs() {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		remainder := id[len(prefix):]
		if strings.Contains(remainder, "::") {
			continue
		}
		out = append(out, id)
	}
	return out
}

// SuffixMatches returns every id ending in "::"+name, sorted, for the
// type-resolution last-resort fallback.
func (idx *Index) SuffixMatches(name string) []string {
	suffix := "::" + name
	var out []string
	for _, id := range idx.SortedIDs() {
		if strings.HasSuffix(id, suffix) {
			out = append(out, id)
		}
	}
	return out
}
