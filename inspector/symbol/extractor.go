// Package symbol extracts symbols from one file's parse tree: it walks
// the root and emits a flat record of top-level declarations plus a
// list of inline modules to recurse into. The traversal is lexical, not
// semantic; generic arguments are captured as nested type references
// without unification.
package symbol

import (
	"strings"

	"github.com/viant/rdsm/inspector/ast"
	"github.com/viant/rdsm/ir"
)

// InlineModule is one `mod name { ... }` found while extracting a file,
// returned for the module resolver to recurse into.
type InlineModule struct {
	Name    string
	Body    ast.Node
	CfgTest bool
	Span    ir.Span
}

// ModDecl is a non-inline `mod name;` declaration, for the Module
// Resolver to locate a sibling file or subdirectory for.
type ModDecl struct {
	Name string
	Span ir.Span
}

// FileDecls is the flat set of declarations extracted from one file (or
// one inline module body).
type FileDecls struct {
	Structs     []*ir.Struct
	Enums       []*ir.Enum
	Traits      []*ir.Trait
	Functions   []*ir.Function
	Impls       []*ir.Impl
	Uses        []*ir.Use
	Constants   []*ir.Constant
	Statics     []*ir.Static
	TypeAliases []*ir.TypeAlias
	ModDecls    []ModDecl
	InlineMods  []InlineModule
}

// ExtractFile walks root (a source_file node, or a declaration_list body
// for an inline module) and returns its declarations.
func ExtractFile(root ast.Node, src []byte, file string) *FileDecls {
	decls := &FileDecls{}
	items := ast.NamedChildren(root)
	for i, item := range items {
		extractItem(item, items, i, src, file, decls)
	}
	return decls
}

func extractItem(item ast.Node, siblings []ast.Node, index int, src []byte, file string, decls *FileDecls) {
	if item == nil {
		return
	}
	doc, attrs := docAndAttrsOf(siblings, index, src)
	switch item.Type() {
	case "struct_item":
		s := extractStruct(item, src, file)
		s.Doc, s.Attributes = doc, attrs
		decls.Structs = append(decls.Structs, s)
	case "enum_item":
		e := extractEnum(item, src, file)
		e.Doc, e.Attributes = doc, attrs
		decls.Enums = append(decls.Enums, e)
	case "trait_item":
		t := extractTrait(item, src, file)
		t.Doc, t.Attributes = doc, attrs
		decls.Traits = append(decls.Traits, t)
	case "function_item":
		f := extractFunction(item, src, file)
		f.Doc, f.Attributes = doc, attrs
		decls.Functions = append(decls.Functions, f)
	case "impl_item":
		decls.Impls = append(decls.Impls, extractImpl(item, src, file))
	case "use_declaration":
		decls.Uses = append(decls.Uses, extractUse(item, src, file))
	case "const_item":
		decls.Constants = append(decls.Constants, extractConst(item, src, file))
	case "static_item":
		decls.Statics = append(decls.Statics, extractStatic(item, src, file))
	case "type_item":
		decls.TypeAliases = append(decls.TypeAliases, extractTypeAlias(item, src, file))
	case "mod_item":
		name := contentOfField(item, "name", src)
		body := item.ChildByFieldName("body")
		sp := withFile(spanOf(item), file)
		if body != nil && !body.IsNull() {
			decls.InlineMods = append(decls.InlineMods, InlineModule{
				Name:    name,
				Body:    body,
				CfgTest: hasCfgTestAttribute(siblings, index, src),
				Span:    sp,
			})
		} else {
			decls.ModDecls = append(decls.ModDecls, ModDecl{Name: name, Span: sp})
		}
	}
}

// hasCfgTestAttribute scans immediately-preceding siblings for an
// attribute_item whose text contains both "cfg" and "test", skipping
// comments, stopping at the first non-attribute/non-comment node.
func hasCfgTestAttribute(siblings []ast.Node, index int, src []byte) bool {
	for i := index - 1; i >= 0; i-- {
		n := siblings[i]
		if n == nil {
			continue
		}
		switch n.Type() {
		case "line_comment", "block_comment":
			continue
		case "attribute_item":
			text := n.Content(src)
			if strings.Contains(text, "cfg") && strings.Contains(text, "test") {
				return true
			}
			continue
		default:
			return false
		}
	}
	return false
}

// docAndAttrsOf scans immediately-preceding siblings for doc comments
// (`///`, `//!`, or block doc comments) and outer attributes
// (`#[derive(...)]` and friends), skipping plain comments and stopping at
// the first sibling that is neither a comment nor an attribute. Doc lines
// and attribute texts are returned in source order.
func docAndAttrsOf(siblings []ast.Node, index int, src []byte) (doc string, attrs []string) {
	var docLines []string
	var rawAttrs []string
scan:
	for i := index - 1; i >= 0; i-- {
		n := siblings[i]
		if n == nil {
			continue
		}
		switch n.Type() {
		case "line_comment", "block_comment":
			text := strings.TrimSpace(n.Content(src))
			if isDocComment(text) {
				docLines = append(docLines, text)
			}
		case "attribute_item":
			rawAttrs = append(rawAttrs, n.Content(src))
		default:
			break scan
		}
	}
	for i, j := 0, len(docLines)-1; i < j; i, j = i+1, j-1 {
		docLines[i], docLines[j] = docLines[j], docLines[i]
	}
	for i, j := 0, len(rawAttrs)-1; i < j; i, j = i+1, j-1 {
		rawAttrs[i], rawAttrs[j] = rawAttrs[j], rawAttrs[i]
	}
	return strings.Join(docLines, "\n"), rawAttrs
}

func isDocComment(text string) bool {
	return strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!") ||
		strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "/*!")
}

func contentOfField(n ast.Node, field string, src []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil || c.IsNull() {
		return ""
	}
	return c.Content(src)
}
