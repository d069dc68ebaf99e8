package ast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Tree is a parsed source file: the root node plus the original bytes,
// since Node.Content needs the source to slice text out of byte ranges.
type Tree struct {
	Root   Node
	Source []byte
}

// Parse runs the Rust tree-sitter grammar over source and returns the
// root node. This is the pipeline's only contact with the concrete
// grammar; everything downstream consumes the Node interface.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse rust source: %w", err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse rust source: empty tree")
	}
	return &Tree{Root: WrapNode(root), Source: source}, nil
}

// HasSyntaxError reports whether the root node's subtree contains a
// tree-sitter ERROR node. A syntax error is fatal only for the entry
// file; other files are extracted from whatever partial tree the parser
// produced.
func HasSyntaxError(n Node) bool {
	if n == nil {
		return false
	}
	if n.Type() == "ERROR" {
		return true
	}
	for i := 0; i < n.ChildCount(); i++ {
		if HasSyntaxError(n.Child(i)) {
			return true
		}
	}
	return false
}
