package symbol

import (
	"strings"

	"github.com/viant/rdsm/inspector/ast"
	"github.com/viant/rdsm/ir"
)

// visibilityOf decodes the optional visibility_modifier child preceding
// a declaration: bare pub -> public; text containing "crate" ->
// crate-scoped; "super" -> super-scoped; "in <path>" -> in-path;
// absent -> private.
func visibilityOf(n ast.Node, src []byte) ir.Visibility {
	modifier := n.ChildByFieldName("visibility_modifier")
	if modifier == nil {
		for _, c := range ast.Children(n) {
			if c != nil && c.Type() == "visibility_modifier" {
				modifier = c
				break
			}
		}
	}
	if modifier == nil {
		return ir.Visibility{Kind: ir.Private}
	}
	text := modifier.Content(src)
	return decodeVisibilityText(text)
}

func decodeVisibilityText(text string) ir.Visibility {
	trimmed := strings.TrimSpace(text)
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "pub("), ")")
	switch {
	case trimmed == "pub":
		return ir.Visibility{Kind: ir.Public}
	case strings.HasPrefix(inner, "in "):
		return ir.Visibility{Kind: ir.InPath, Path: strings.TrimSpace(strings.TrimPrefix(inner, "in "))}
	case strings.Contains(inner, "crate"):
		return ir.Visibility{Kind: ir.CrateScoped}
	case strings.Contains(inner, "super"):
		return ir.Visibility{Kind: ir.SuperScoped}
	default:
		return ir.Visibility{Kind: ir.Public}
	}
}
