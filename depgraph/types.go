// Package depgraph holds the core Node/Edge data model, builds a typed
// dependency multigraph from a resolved module tree in two passes,
// merges per-crate graphs under workspace mode, and produces the
// module-level aggregation used as a DSM helper view.
package depgraph

// NodeKind is the closed set of graph-node kinds.
type NodeKind string

const (
	KindCrate    NodeKind = "crate"
	KindModule   NodeKind = "module"
	KindStruct   NodeKind = "struct"
	KindEnum     NodeKind = "enum"
	KindTrait    NodeKind = "trait"
	KindFunction NodeKind = "function"
	KindImpl     NodeKind = "impl"
)

// EdgeKind is the closed set of dependency kinds.
type EdgeKind string

const (
	EdgeUseImport     EdgeKind = "use_import"
	EdgeTypeReference EdgeKind = "type_reference"
	EdgeFunctionCall  EdgeKind = "function_call"
	EdgeMethodCall    EdgeKind = "method_call"
	EdgeTraitImpl     EdgeKind = "trait_impl"
	EdgeTraitBound    EdgeKind = "trait_bound"
	EdgeFieldType     EdgeKind = "field_type"
	EdgeReturnType    EdgeKind = "return_type"
	EdgeParameterType EdgeKind = "parameter_type"
)

// Location is one {file, line, column} provenance entry for an edge.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Node is one declaration in the dependency graph.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Kind     NodeKind `json:"kind"`
	ParentID string   `json:"parentId,omitempty"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Children []string `json:"children,omitempty"`

	// Doc carries the declaration's doc comment; Attributes its outer
	// attributes, verbatim and unexpanded.
	Doc        string   `json:"doc,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

// Edge is one typed, counted, located dependency between two nodes.
type Edge struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Kind      EdgeKind   `json:"kind"`
	Count     int        `json:"count"`
	Locations []Location `json:"locations"`
}

// edgeKey is the interned form of an edge's (from, to, kind) identity,
// used as the dedup-index key.
type edgeKey struct {
	from uint64
	to   uint64
	kind EdgeKind
}
