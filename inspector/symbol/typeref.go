package symbol

import (
	"strings"

	"github.com/viant/rdsm/inspector/ast"
	"github.com/viant/rdsm/ir"
)

// typeRef recursively extracts a type reference from a type-position
// node: named types, generic applications, scoped paths, references,
// tuples, arrays, primitives, the unit type, and function types.
// Unknown node shapes fall back to their raw textual form.
func typeRef(n ast.Node, src []byte) *ir.TypeRef {
	if n == nil || n.IsNull() {
		return nil
	}
	span := spanOf(n)
	switch n.Type() {
	case "type_identifier", "primitive_type", "identifier":
		return &ir.TypeRef{Name: n.Content(src), Span: span}

	case "unit_type":
		return &ir.TypeRef{Name: "()", IsUnit: true, Span: span}

	case "generic_type":
		base := n.ChildByFieldName("type")
		args := n.ChildByFieldName("type_arguments")
		ref := typeRef(base, src)
		if ref == nil {
			ref = &ir.TypeRef{Name: n.Content(src), Span: span}
		}
		if args != nil {
			for _, child := range ast.NamedChildren(args) {
				if arg := typeRef(child, src); arg != nil {
					ref.Args = append(ref.Args, arg)
				}
			}
		}
		return ref

	case "scoped_type_identifier", "scoped_identifier":
		// path::Segment - the resolvable name is the full textual path;
		// the Use Resolver re-splits it on "::" as needed.
		return &ir.TypeRef{Name: n.Content(src), Span: span}

	case "reference_type":
		inner := n.ChildByFieldName("type")
		mutable := false
		for _, c := range ast.Children(n) {
			if c != nil && c.Type() == "mutable_specifier" {
				mutable = true
			}
		}
		ref := typeRef(inner, src)
		if ref == nil {
			ref = &ir.TypeRef{Name: n.Content(src), Span: span}
		}
		wrapped := &ir.TypeRef{Name: ref.Name, Args: ref.Args, Span: span, IsRef: true, IsMut: mutable}
		return wrapped

	case "tuple_type":
		ref := &ir.TypeRef{Name: n.Content(src), IsTuple: true, Span: span}
		for _, c := range ast.NamedChildren(n) {
			if elem := typeRef(c, src); elem != nil {
				ref.Args = append(ref.Args, elem)
			}
		}
		return ref

	case "array_type":
		elem := n.ChildByFieldName("element")
		ref := typeRef(elem, src)
		result := &ir.TypeRef{Name: "[]", IsArray: true, Span: span}
		if ref != nil {
			result.Args = append(result.Args, ref)
		}
		return result

	case "function_type":
		return &ir.TypeRef{Name: n.Content(src), Span: span}

	default:
		return &ir.TypeRef{Name: strings.TrimSpace(n.Content(src)), Span: span}
	}
}

func spanOf(n ast.Node) ir.Span {
	start := n.StartPoint()
	end := n.EndPoint()
	return ir.Span{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

func withFile(s ir.Span, file string) ir.Span {
	s.File = file
	return s
}
