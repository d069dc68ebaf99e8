package symbol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rdsm/inspector/ast"
)

func parseFile(t *testing.T, src string) *FileDecls {
	t.Helper()
	tree, err := ast.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return ExtractFile(tree.Root, tree.Source, "lib.rs")
}

func TestExtractStruct(t *testing.T) {
	decls := parseFile(t, `
pub struct Foo {
    pub name: String,
    age: u32,
}
`)
	require.Len(t, decls.Structs, 1)
	foo := decls.Structs[0]
	assert.Equal(t, "Foo", foo.Name)
	assert.True(t, foo.Visibility.IsPublic())
	require.Len(t, foo.Fields, 2)
	assert.Equal(t, "name", foo.Fields[0].Name)
	assert.Equal(t, "String", foo.Fields[0].Type.Name)
	assert.Equal(t, "age", foo.Fields[1].Name)
}

func TestExtractEnum(t *testing.T) {
	decls := parseFile(t, `
enum Shape {
    Circle(f64),
    Square { side: f64 },
    Point,
}
`)
	require.Len(t, decls.Enums, 1)
	shape := decls.Enums[0]
	assert.Equal(t, "Shape", shape.Name)
	require.Len(t, shape.Variants, 3)
	assert.Equal(t, "Circle", shape.Variants[0].Name)
	assert.Equal(t, "Square", shape.Variants[1].Name)
}

func TestExtractTraitWithSupertrait(t *testing.T) {
	decls := parseFile(t, `
pub trait Shape: Clone {
    fn area(&self) -> f64;
}
`)
	require.Len(t, decls.Traits, 1)
	tr := decls.Traits[0]
	assert.Equal(t, "Shape", tr.Name)
	require.Len(t, tr.Supertraits, 1)
	assert.Equal(t, "Clone", tr.Supertraits[0].Name)
	require.Len(t, tr.Methods, 1)
	assert.Equal(t, "area", tr.Methods[0].Name)
}

func TestExtractImplWithTrait(t *testing.T) {
	decls := parseFile(t, `
struct Circle;
impl Shape for Circle {
    fn area(&self) -> f64 { 0.0 }
}
`)
	require.Len(t, decls.Impls, 1)
	impl := decls.Impls[0]
	require.NotNil(t, impl.TraitRef)
	assert.Equal(t, "Shape", impl.TraitRef.Name)
	assert.Equal(t, "Circle", impl.SelfType.Name)
	require.Len(t, impl.Methods, 1)
	assert.Equal(t, "area", impl.Methods[0].Name)
}

func TestExtractFunctionCallsAndMethodCalls(t *testing.T) {
	decls := parseFile(t, `
fn run() {
    helper();
    obj.process();
}
`)
	require.Len(t, decls.Functions, 1)
	calls := decls.Functions[0].Calls
	require.Len(t, calls, 2)
	assert.Equal(t, "helper", calls[0].Name)
	assert.False(t, calls[0].IsMethod)
	assert.Equal(t, "process", calls[1].Name)
	assert.True(t, calls[1].IsMethod)
}

func TestExtractUseGlobAndExplicitItems(t *testing.T) {
	decls := parseFile(t, `
use crate::a::Foo;
use crate::b::*;
use crate::c::{X, Y as Z};
`)
	require.Len(t, decls.Uses, 3)
	assert.Equal(t, []string{"crate", "a", "Foo"}, decls.Uses[0].Segments)
	assert.False(t, decls.Uses[0].Glob)

	assert.Equal(t, []string{"crate", "b"}, decls.Uses[1].Segments)
	assert.True(t, decls.Uses[1].Glob)

	assert.Equal(t, []string{"crate", "c"}, decls.Uses[2].Segments)
	require.Len(t, decls.Uses[2].Items, 2)
	assert.Equal(t, "X", decls.Uses[2].Items[0].Name)
	assert.Equal(t, "Y", decls.Uses[2].Items[1].Name)
	assert.Equal(t, "Z", decls.Uses[2].Items[1].Alias)
}

func TestInlineModuleWithCfgTest(t *testing.T) {
	decls := parseFile(t, `
#[cfg(test)]
mod tests {
    fn it_works() {}
}

mod visible {
    fn run() {}
}
`)
	require.Len(t, decls.InlineMods, 2)
	assert.Equal(t, "tests", decls.InlineMods[0].Name)
	assert.True(t, decls.InlineMods[0].CfgTest)
	assert.Equal(t, "visible", decls.InlineMods[1].Name)
	assert.False(t, decls.InlineMods[1].CfgTest)
}

func TestExtractStructDocAndDeriveAttribute(t *testing.T) {
	decls := parseFile(t, `
/// A point in 2D space.
#[derive(Clone, Debug)]
pub struct Point {
    x: f64,
    y: f64,
}
`)
	require.Len(t, decls.Structs, 1)
	p := decls.Structs[0]
	assert.Contains(t, p.Doc, "A point in 2D space.")
	require.Len(t, p.Attributes, 1)
	assert.Contains(t, p.Attributes[0], "derive")
}

func TestModDeclWithoutBody(t *testing.T) {
	decls := parseFile(t, `mod utils;`)
	require.Len(t, decls.ModDecls, 1)
	assert.Equal(t, "utils", decls.ModDecls[0].Name)
}
