package symbol

import (
	"strings"

	"github.com/viant/rdsm/inspector/ast"
	"github.com/viant/rdsm/ir"
)

func extractGenerics(n ast.Node, src []byte) []ir.TypeParam {
	tp := n.ChildByFieldName("type_parameters")
	if tp == nil || tp.IsNull() {
		return nil
	}
	var out []ir.TypeParam
	for _, c := range ast.NamedChildren(tp) {
		if c == nil || c.Type() != "type_parameter" && c.Type() != "constrained_type_parameter" {
			continue
		}
		param := ir.TypeParam{}
		if nameNode := c.ChildByFieldName("name"); nameNode != nil {
			param.Name = nameNode.Content(src)
		} else {
			param.Name = c.Content(src)
		}
		if bounds := c.ChildByFieldName("bounds"); bounds != nil && !bounds.IsNull() {
			for _, b := range ast.NamedChildren(bounds) {
				if ref := typeRef(b, src); ref != nil {
					param.Bounds = append(param.Bounds, ref)
				}
			}
		}
		out = append(out, param)
	}
	return out
}

func extractFieldList(body ast.Node, src []byte) []ir.Field {
	if body == nil || body.IsNull() {
		return nil
	}
	var fields []ir.Field
	switch body.Type() {
	case "field_declaration_list":
		for _, c := range ast.NamedChildren(body) {
			if c == nil || c.Type() != "field_declaration" {
				continue
			}
			f := ir.Field{Span: withFile(spanOf(c), ""), Visibility: visibilityOf(c, src)}
			if nameNode := c.ChildByFieldName("name"); nameNode != nil {
				f.Name = nameNode.Content(src)
			}
			f.Type = typeRef(c.ChildByFieldName("type"), src)
			fields = append(fields, f)
		}
	case "ordered_field_declaration_list":
		for _, c := range ast.NamedChildren(body) {
			if c == nil || c.Type() == "visibility_modifier" {
				continue
			}
			f := ir.Field{Span: withFile(spanOf(c), ""), Visibility: visibilityOf(c, src)}
			f.Type = typeRef(c, src)
			fields = append(fields, f)
		}
	}
	return fields
}

func extractStruct(n ast.Node, src []byte, file string) *ir.Struct {
	s := &ir.Struct{
		Name:       contentOfField(n, "name", src),
		Visibility: visibilityOf(n, src),
		Generics:   extractGenerics(n, src),
		Span:       withFile(spanOf(n), file),
	}
	body := n.ChildByFieldName("body")
	s.Fields = extractFieldList(body, src)
	return s
}

func extractEnum(n ast.Node, src []byte, file string) *ir.Enum {
	e := &ir.Enum{
		Name:       contentOfField(n, "name", src),
		Visibility: visibilityOf(n, src),
		Generics:   extractGenerics(n, src),
		Span:       withFile(spanOf(n), file),
	}
	body := n.ChildByFieldName("body")
	if body != nil && !body.IsNull() {
		for _, variant := range ast.NamedChildren(body) {
			if variant == nil || variant.Type() != "enum_variant" {
				continue
			}
			v := ir.Variant{Name: contentOfField(variant, "name", src)}
			v.Fields = extractFieldList(variant.ChildByFieldName("body"), src)
			e.Variants = append(e.Variants, v)
		}
	}
	return e
}

func extractTrait(n ast.Node, src []byte, file string) *ir.Trait {
	t := &ir.Trait{
		Name:       contentOfField(n, "name", src),
		Visibility: visibilityOf(n, src),
		Generics:   extractGenerics(n, src),
		Span:       withFile(spanOf(n), file),
	}
	if bounds := n.ChildByFieldName("bounds"); bounds != nil && !bounds.IsNull() {
		for _, b := range ast.NamedChildren(bounds) {
			if ref := typeRef(b, src); ref != nil {
				t.Supertraits = append(t.Supertraits, ref)
			}
		}
	}
	body := n.ChildByFieldName("body")
	if body != nil && !body.IsNull() {
		members := ast.NamedChildren(body)
		for i, item := range members {
			if item == nil {
				continue
			}
			switch item.Type() {
			case "function_signature_item", "function_item":
				method := extractFunction(item, src, file)
				method.Doc, method.Attributes = docAndAttrsOf(members, i, src)
				t.Methods = append(t.Methods, method)
			case "associated_type":
				t.AssocTypes = append(t.AssocTypes, contentOfField(item, "name", src))
			}
		}
	}
	return t
}

func extractParameters(n ast.Node, src []byte) []ir.Parameter {
	paramsNode := n.ChildByFieldName("parameters")
	if paramsNode == nil || paramsNode.IsNull() {
		return nil
	}
	var out []ir.Parameter
	for _, c := range ast.NamedChildren(paramsNode) {
		if c == nil {
			continue
		}
		switch c.Type() {
		case "self_parameter":
			text := c.Content(src)
			marker := ir.SelfValue
			switch {
			case strings.Contains(text, "&mut self"):
				marker = ir.SelfMutRef
			case strings.Contains(text, "&self"):
				marker = ir.SelfSharedRef
			}
			out = append(out, ir.Parameter{Name: "self", Self: marker})
		case "parameter":
			p := ir.Parameter{Self: ir.SelfNone}
			if patNode := c.ChildByFieldName("pattern"); patNode != nil {
				p.Name = patNode.Content(src)
			}
			p.Type = typeRef(c.ChildByFieldName("type"), src)
			out = append(out, p)
		}
	}
	return out
}

func extractFunction(n ast.Node, src []byte, file string) *ir.Function {
	f := &ir.Function{
		Name:       contentOfField(n, "name", src),
		Visibility: visibilityOf(n, src),
		Generics:   extractGenerics(n, src),
		Parameters: extractParameters(n, src),
		Return:     typeRef(n.ChildByFieldName("return_type"), src),
		Span:       withFile(spanOf(n), file),
	}
	for _, c := range ast.Children(n) {
		if c == nil {
			continue
		}
		switch c.Type() {
		case "async":
			f.Async = true
		case "const":
			f.Const = true
		case "unsafe":
			f.Unsafe = true
		}
	}
	body := n.ChildByFieldName("body")
	if body != nil && !body.IsNull() {
		f.Calls = collectCalls(body, src)
	}
	return f
}

func collectCalls(n ast.Node, src []byte) []ir.CallSite {
	var calls []ir.CallSite
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		if node == nil || node.IsNull() {
			return
		}
		if node.Type() == "call_expression" {
			callee := node.ChildByFieldName("function")
			if callee != nil && !callee.IsNull() {
				switch callee.Type() {
				case "field_expression":
					if fieldNode := callee.ChildByFieldName("field"); fieldNode != nil {
						calls = append(calls, ir.CallSite{
							Name:     fieldNode.Content(src),
							IsMethod: true,
							Span:     spanOf(node),
						})
					}
				case "identifier", "scoped_identifier":
					calls = append(calls, ir.CallSite{
						Name:     callee.Content(src),
						IsMethod: false,
						Span:     spanOf(node),
					})
				}
			}
		}
		for i := 0; i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}
	walk(n)
	return calls
}

func extractImpl(n ast.Node, src []byte, file string) *ir.Impl {
	impl := &ir.Impl{
		Generics: extractGenerics(n, src),
		Span:     withFile(spanOf(n), file),
	}
	if traitNode := n.ChildByFieldName("trait"); traitNode != nil && !traitNode.IsNull() {
		impl.TraitRef = typeRef(traitNode, src)
	}
	impl.SelfType = typeRef(n.ChildByFieldName("type"), src)
	body := n.ChildByFieldName("body")
	if body != nil && !body.IsNull() {
		members := ast.NamedChildren(body)
		for i, item := range members {
			if item != nil && item.Type() == "function_item" {
				method := extractFunction(item, src, file)
				method.Doc, method.Attributes = docAndAttrsOf(members, i, src)
				impl.Methods = append(impl.Methods, method)
			}
		}
	}
	return impl
}

func extractUse(n ast.Node, src []byte, file string) *ir.Use {
	use := &ir.Use{Visibility: visibilityOf(n, src), Span: withFile(spanOf(n), file)}
	arg := n.ChildByFieldName("argument")
	if arg == nil || arg.IsNull() {
		return use
	}
	segments, glob, items := flattenUseTree(arg, src)
	use.Segments = segments
	use.Glob = glob
	use.Items = items
	return use
}

// flattenUseTree walks a use_declaration's argument subtree, peeling off
// leading scoped segments until it reaches the terminal shape: a bare
// path, a `use_as_clause` alias (carried as a one-entry item list), a
// `use_wildcard`, or a `use_list` of explicit items.
func flattenUseTree(n ast.Node, src []byte) (segments []string, glob bool, items []ir.UseItem) {
	switch n.Type() {
	case "scoped_use_list":
		pathNode := n.ChildByFieldName("path")
		listNode := n.ChildByFieldName("list")
		segments = splitPath(pathNode, src)
		if listNode != nil {
			for _, c := range ast.NamedChildren(listNode) {
				name, itemAlias := useListEntry(c, src)
				items = append(items, ir.UseItem{Name: name, Alias: itemAlias})
			}
		}
		return segments, false, items

	case "use_wildcard":
		pathNode := n.ChildByFieldName("path")
		if pathNode == nil {
			for _, c := range ast.NamedChildren(n) {
				pathNode = c
				break
			}
		}
		segments = splitPath(pathNode, src)
		return segments, true, nil

	case "use_as_clause":
		pathNode := n.ChildByFieldName("path")
		aliasNode := n.ChildByFieldName("alias")
		full := splitPath(pathNode, src)
		if len(full) > 0 {
			segments = full[:len(full)-1]
			items = []ir.UseItem{{Name: full[len(full)-1], Alias: contentFor(aliasNode, src)}}
		}
		return segments, false, items

	case "use_list":
		for _, c := range ast.NamedChildren(n) {
			name, itemAlias := useListEntry(c, src)
			items = append(items, ir.UseItem{Name: name, Alias: itemAlias})
		}
		return nil, false, items

	default:
		full := splitPath(n, src)
		if len(full) == 0 {
			return nil, false, nil
		}
		return full, false, nil
	}
}

func useListEntry(n ast.Node, src []byte) (name, alias string) {
	if n == nil {
		return "", ""
	}
	switch n.Type() {
	case "use_as_clause":
		pathNode := n.ChildByFieldName("path")
		aliasNode := n.ChildByFieldName("alias")
		return contentFor(pathNode, src), contentFor(aliasNode, src)
	case "self":
		return "self", ""
	default:
		return n.Content(src), ""
	}
}

func contentFor(n ast.Node, src []byte) string {
	if n == nil || n.IsNull() {
		return ""
	}
	return n.Content(src)
}

func splitPath(n ast.Node, src []byte) []string {
	if n == nil || n.IsNull() {
		return nil
	}
	text := n.Content(src)
	if text == "" {
		return nil
	}
	return strings.Split(text, "::")
}

func extractConst(n ast.Node, src []byte, file string) *ir.Constant {
	return &ir.Constant{
		Name:       contentOfField(n, "name", src),
		Visibility: visibilityOf(n, src),
		Type:       typeRef(n.ChildByFieldName("type"), src),
		Span:       withFile(spanOf(n), file),
	}
}

func extractStatic(n ast.Node, src []byte, file string) *ir.Static {
	return &ir.Static{
		Name:       contentOfField(n, "name", src),
		Visibility: visibilityOf(n, src),
		Type:       typeRef(n.ChildByFieldName("type"), src),
		Span:       withFile(spanOf(n), file),
	}
}

func extractTypeAlias(n ast.Node, src []byte, file string) *ir.TypeAlias {
	return &ir.TypeAlias{
		Name:       contentOfField(n, "name", src),
		Visibility: visibilityOf(n, src),
		Target:     typeRef(n.ChildByFieldName("type"), src),
		Span:       withFile(spanOf(n), file),
	}
}
