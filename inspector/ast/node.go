// Package ast adapts github.com/smacker/go-tree-sitter's concrete node
// type behind a small interface, so the rest of the pipeline treats the
// parser as a black box producing a labeled tree from source text. This
// package is the seam that keeps the rest of the codebase from
// depending on the concrete tree-sitter type.
package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Point is a zero-based (row, column) source position, matching
// tree-sitter's own Point shape.
type Point struct {
	Row    uint32
	Column uint32
}

// Node is the minimal surface the Symbol Extractor and Module Resolver
// need from a parsed syntax tree.
type Node interface {
	Type() string
	ChildCount() int
	Child(i int) Node
	NamedChildCount() int
	NamedChild(i int) Node
	ChildByFieldName(name string) Node
	StartPoint() Point
	EndPoint() Point
	StartByte() uint32
	EndByte() uint32
	Content(src []byte) string
	IsNull() bool
}

// WrapNode adapts a *sitter.Node into a Node. Returns nil for a nil
// input so callers can treat "no node" uniformly.
func WrapNode(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return sitterNode{n: n}
}

type sitterNode struct {
	n *sitter.Node
}

func (s sitterNode) Type() string { return s.n.Type() }

func (s sitterNode) ChildCount() int { return int(s.n.ChildCount()) }

func (s sitterNode) Child(i int) Node { return WrapNode(s.n.Child(i)) }

func (s sitterNode) NamedChildCount() int { return int(s.n.NamedChildCount()) }

func (s sitterNode) NamedChild(i int) Node { return WrapNode(s.n.NamedChild(i)) }

func (s sitterNode) ChildByFieldName(name string) Node {
	return WrapNode(s.n.ChildByFieldName(name))
}

func (s sitterNode) StartPoint() Point {
	p := s.n.StartPoint()
	return Point{Row: p.Row, Column: p.Column}
}

func (s sitterNode) EndPoint() Point {
	p := s.n.EndPoint()
	return Point{Row: p.Row, Column: p.Column}
}

func (s sitterNode) StartByte() uint32 { return s.n.StartByte() }

func (s sitterNode) EndByte() uint32 { return s.n.EndByte() }

func (s sitterNode) Content(src []byte) string { return s.n.Content(src) }

func (s sitterNode) IsNull() bool { return s.n == nil || s.n.IsNull() }

// NamedChildren returns every named child of n, in source order.
func NamedChildren(n Node) []Node {
	if n == nil {
		return nil
	}
	out := make([]Node, 0, n.NamedChildCount())
	for i := 0; i < n.NamedChildCount(); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// Children returns every child of n (named and anonymous), in source order.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	out := make([]Node, 0, n.ChildCount())
	for i := 0; i < n.ChildCount(); i++ {
		out = append(out, n.Child(i))
	}
	return out
}
