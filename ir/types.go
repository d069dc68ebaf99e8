// Package ir holds the declaration-level data model produced by the
// symbol extractor and consumed by the use resolver and graph builder:
// modules, record/sum/interface types, functions, impls, uses, and type
// references. JSON tags make the module tree directly serializable as
// the `crate` key of the interchange document.
package ir

// VisibilityKind is the closed set of visibility markers a declaration
// can carry.
type VisibilityKind string

const (
	Public      VisibilityKind = "public"
	Private     VisibilityKind = "private"
	CrateScoped VisibilityKind = "crate_scoped"
	SuperScoped VisibilityKind = "super_scoped"
	InPath      VisibilityKind = "in_path"
)

// Visibility is the decoded visibility marker preceding a declaration.
type Visibility struct {
	Kind VisibilityKind `json:"kind"`
	Path string         `json:"path,omitempty"` // only set when Kind == InPath
}

func (v Visibility) IsPublic() bool { return v.Kind == Public }

// SelfMarker classifies how a method parameter binds `self`.
type SelfMarker string

const (
	SelfNone      SelfMarker = "none"
	SelfValue     SelfMarker = "value"
	SelfSharedRef SelfMarker = "shared_ref"
	SelfMutRef    SelfMarker = "mutable_ref"
)

// Span is a source location, used both for node provenance and for edge
// locations ({file, line, column}).
type Span struct {
	File      string `json:"file,omitempty"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
}

// TypeRef is a recursive reference to a type, capturing generic
// arguments positionally. Name carries the raw textual form for shapes
// the extractor does not specifically recognize.
type TypeRef struct {
	Name    string     `json:"name"`
	Args    []*TypeRef `json:"args,omitempty"`
	Span    Span       `json:"span"`
	IsRef   bool       `json:"isRef,omitempty"` // &T or &mut T
	IsMut   bool       `json:"isMut,omitempty"` // &mut T
	IsTuple bool       `json:"isTuple,omitempty"`
	IsArray bool       `json:"isArray,omitempty"`
	IsUnit  bool       `json:"isUnit,omitempty"`
}

// TypeParam is a generic type parameter with an optional trait-bound list.
type TypeParam struct {
	Name   string     `json:"name"`
	Bounds []*TypeRef `json:"bounds,omitempty"`
}

// Field is a struct/variant field. Name is empty for tuple-style fields.
type Field struct {
	Name       string     `json:"name,omitempty"`
	Visibility Visibility `json:"visibility"`
	Type       *TypeRef   `json:"type,omitempty"`
	Span       Span       `json:"span"`
}

// Variant is one arm of a sum type.
type Variant struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields,omitempty"`
}

// Parameter is a function parameter. Self is SelfNone for ordinary
// parameters; a `self` receiver carries no Type.
type Parameter struct {
	Name string     `json:"name,omitempty"`
	Type *TypeRef   `json:"type,omitempty"`
	Self SelfMarker `json:"self"`
}

// CallSite records one call or method-call expression found in a
// function body. The callee is kept as written (a bare name, or a
// `::`-separated path for a scoped call); the graph builder resolves it
// later, so receiver types stay unresolved here.
type CallSite struct {
	Name     string `json:"name"`
	IsMethod bool   `json:"isMethod"`
	Span     Span   `json:"span"`
}

// Struct is a record type declaration.
type Struct struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility"`
	Generics   []TypeParam `json:"generics,omitempty"`
	Fields     []Field     `json:"fields,omitempty"`
	Doc        string      `json:"doc,omitempty"`
	Attributes []string    `json:"attributes,omitempty"`
	Span       Span        `json:"span"`
}

// Enum is a sum type declaration.
type Enum struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility"`
	Generics   []TypeParam `json:"generics,omitempty"`
	Variants   []Variant   `json:"variants,omitempty"`
	Doc        string      `json:"doc,omitempty"`
	Attributes []string    `json:"attributes,omitempty"`
	Span       Span        `json:"span"`
}

// Trait is an interface type declaration. Methods are represented as
// full Function values (a signature-only function_signature_item simply
// carries no Calls) so the graph builder can treat trait methods and
// impl methods identically when emitting parameter/return/call edges.
type Trait struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Visibility  Visibility  `json:"visibility"`
	Generics    []TypeParam `json:"generics,omitempty"`
	Supertraits []*TypeRef  `json:"supertraits,omitempty"`
	Methods     []*Function `json:"methods,omitempty"`
	AssocTypes  []string    `json:"assocTypes,omitempty"`
	Doc         string      `json:"doc,omitempty"`
	Attributes  []string    `json:"attributes,omitempty"`
	Span        Span        `json:"span"`
}

// Function is a free function or a method (methods are additionally
// owned by their Impl's self-type once the Graph Builder assigns them).
type Function struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility"`
	Generics   []TypeParam `json:"generics,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Return     *TypeRef    `json:"return,omitempty"`
	Async      bool        `json:"async,omitempty"`
	Const      bool        `json:"const,omitempty"`
	Unsafe     bool        `json:"unsafe,omitempty"`
	Calls      []CallSite  `json:"calls,omitempty"`
	Doc        string      `json:"doc,omitempty"`
	Attributes []string    `json:"attributes,omitempty"`
	Span       Span        `json:"span"`
}

// Impl is an `impl Trait for Type { ... }` or an inherent `impl Type { ... }`.
type Impl struct {
	TraitRef *TypeRef    `json:"traitRef,omitempty"`
	SelfType *TypeRef    `json:"selfType,omitempty"`
	Generics []TypeParam `json:"generics,omitempty"`
	Methods  []*Function `json:"methods,omitempty"`
	Span     Span        `json:"span"`
}

// UseItem is one `{name, alias?}` entry of an explicit-item import.
type UseItem struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// Use is an import declaration prior to resolution. An aliased single
// path (`use a::b as c`) is carried as a one-entry Items list.
type Use struct {
	Segments   []string   `json:"segments,omitempty"`
	Glob       bool       `json:"glob,omitempty"`
	Items      []UseItem  `json:"items,omitempty"`
	Visibility Visibility `json:"visibility"`
	Span       Span       `json:"span"`
}

// Constant/Static/TypeAlias are the remaining declaration kinds a module
// tracks for ordering and metrics purposes, without needing their own
// graph-node kind.
type Constant struct {
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	Type       *TypeRef   `json:"type,omitempty"`
	Span       Span       `json:"span"`
}

type Static struct {
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	Type       *TypeRef   `json:"type,omitempty"`
	Span       Span       `json:"span"`
}

type TypeAlias struct {
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	Target     *TypeRef   `json:"target,omitempty"`
	Span       Span       `json:"span"`
}

// Module is one node of the module tree: either a file-backed module or
// an inline `mod name { ... }` block. Submodules are stored in source
// order; every traversal is depth-first over that order.
type Module struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Path       string     `json:"path"` // qualified path, "crate" for the root
	File       string     `json:"file,omitempty"`
	Visibility Visibility `json:"visibility"`
	IsInline   bool       `json:"isInline,omitempty"`
	CfgTest    bool       `json:"cfgTest,omitempty"`

	Structs     []*Struct    `json:"structs,omitempty"`
	Enums       []*Enum      `json:"enums,omitempty"`
	Traits      []*Trait     `json:"traits,omitempty"`
	Functions   []*Function  `json:"functions,omitempty"`
	Impls       []*Impl      `json:"impls,omitempty"`
	Uses        []*Use       `json:"uses,omitempty"`
	Constants   []*Constant  `json:"constants,omitempty"`
	Statics     []*Static    `json:"statics,omitempty"`
	TypeAliases []*TypeAlias `json:"typeAliases,omitempty"`
	Submodules  []*Module    `json:"submodules,omitempty"`

	structByName map[string]int
	enumByName   map[string]int
	traitByName  map[string]int
	funcByName   map[string]int
}

func NewModule(id, name, path, file string) *Module {
	return &Module{ID: id, Name: name, Path: path, File: file}
}

func (m *Module) AddStruct(s *Struct) {
	if m.structByName == nil {
		m.structByName = map[string]int{}
	}
	if _, exists := m.structByName[s.Name]; exists {
		return
	}
	m.structByName[s.Name] = len(m.Structs)
	m.Structs = append(m.Structs, s)
}

func (m *Module) AddEnum(e *Enum) {
	if m.enumByName == nil {
		m.enumByName = map[string]int{}
	}
	if _, exists := m.enumByName[e.Name]; exists {
		return
	}
	m.enumByName[e.Name] = len(m.Enums)
	m.Enums = append(m.Enums, e)
}

func (m *Module) AddTrait(t *Trait) {
	if m.traitByName == nil {
		m.traitByName = map[string]int{}
	}
	if _, exists := m.traitByName[t.Name]; exists {
		return
	}
	m.traitByName[t.Name] = len(m.Traits)
	m.Traits = append(m.Traits, t)
}

func (m *Module) AddFunction(f *Function) {
	if m.funcByName == nil {
		m.funcByName = map[string]int{}
	}
	if _, exists := m.funcByName[f.Name]; exists {
		return
	}
	m.funcByName[f.Name] = len(m.Functions)
	m.Functions = append(m.Functions, f)
}

// Walk visits m and every descendant module depth-first, source order.
func (m *Module) Walk(fn func(*Module)) {
	fn(m)
	for _, sub := range m.Submodules {
		sub.Walk(fn)
	}
}
