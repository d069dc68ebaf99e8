// Package crate discovers the module tree of a project by combining a
// manifest's entry point with filesystem conventions, recursively
// resolving `mod` declarations and inline modules, and applying file
// filters.
package crate

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/rdsm/inspector/ast"
	"github.com/viant/rdsm/inspector/symbol"
	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/manifest"
	"github.com/viant/rdsm/rdsmerr"
)

// fileReader is the subset of fsx.FS the resolver needs; an interface so
// tests can substitute an in-memory implementation.
type fileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
}

// Resolver builds a crate's module tree.
type Resolver struct {
	fs          fileReader
	filter      manifest.FilterConfig
	diag        *rdsmerr.Sink
	projectRoot string

	cache map[string]*ir.Module // absolute file path -> already-resolved module
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithFilterConfig(cfg manifest.FilterConfig) Option {
	return func(r *Resolver) { r.filter = cfg }
}

func WithDiagnostics(sink *rdsmerr.Sink) Option {
	return func(r *Resolver) { r.diag = sink }
}

func NewResolver(fs fileReader, opts ...Option) *Resolver {
	r := &Resolver{fs: fs, diag: &rdsmerr.Sink{}, cache: map[string]*ir.Module{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Diagnostics returns every non-fatal diagnostic collected so far.
func (r *Resolver) Diagnostics() []rdsmerr.Diagnostic {
	return r.diag.Items()
}

// ResolveCrate locates the entry point under projectRoot and resolves
// the full module tree rooted at it. crateName defaults to the
// manifest's package name, falling back to the root directory's
// basename.
func (r *Resolver) ResolveCrate(ctx context.Context, projectRoot string) (*ir.Module, string, error) {
	r.projectRoot = projectRoot
	m, err := manifest.Read(ctx, r.fs, projectRoot)
	if err != nil {
		return nil, "", err
	}
	entry, err := r.locateEntryPoint(ctx, projectRoot, m)
	if err != nil {
		return nil, "", err
	}
	crateName := m.PackageName
	if crateName == "" {
		crateName = filepath.Base(projectRoot)
	}
	root, err := r.resolveFile(ctx, entry, "crate", "crate")
	if err != nil {
		return nil, "", err
	}
	return root, crateName, nil
}

func (r *Resolver) locateEntryPoint(ctx context.Context, projectRoot string, m manifest.Manifest) (string, error) {
	if m.LibPath != "" {
		path := filepath.Join(projectRoot, m.LibPath)
		if r.fs.Exists(ctx, path) {
			return path, nil
		}
	}
	libDefault := filepath.Join(projectRoot, "src", "lib.rs")
	if r.fs.Exists(ctx, libDefault) {
		return libDefault, nil
	}
	for _, bin := range m.Binaries {
		if bin.Path != "" {
			path := filepath.Join(projectRoot, bin.Path)
			if r.fs.Exists(ctx, path) {
				return path, nil
			}
		}
	}
	mainDefault := filepath.Join(projectRoot, "src", "main.rs")
	if r.fs.Exists(ctx, mainDefault) {
		return mainDefault, nil
	}
	return "", rdsmerr.New(rdsmerr.ManifestError, projectRoot, errNoEntryPoint)
}

var errNoEntryPoint = noEntryPointErr{}

type noEntryPointErr struct{}

func (noEntryPointErr) Error() string { return "no library or binary entry point found" }

// resolveFile reads and parses one module file, applying memoization,
// and recursively resolves its `mod` declarations and inline modules.
func (r *Resolver) resolveFile(ctx context.Context, absPath, name, qualifiedPath string) (*ir.Module, error) {
	if cached, ok := r.cache[absPath]; ok {
		return cached, nil
	}

	data, err := r.fs.ReadFile(ctx, absPath)
	if err != nil {
		r.diag.Add(rdsmerr.Diagnostic{Kind: rdsmerr.UnreadableFile, File: absPath, Message: err.Error()})
		stub := ir.NewModule(qualifiedPath, name, qualifiedPath, absPath)
		r.cache[absPath] = stub
		return stub, nil
	}

	tree, parseErr := ast.Parse(ctx, data)
	if parseErr != nil {
		if qualifiedPath == "crate" {
			return nil, rdsmerr.New(rdsmerr.ParseError, absPath, parseErr)
		}
		r.diag.Add(rdsmerr.Diagnostic{Kind: rdsmerr.UnreadableFile, File: absPath, Message: parseErr.Error()})
		stub := ir.NewModule(qualifiedPath, name, qualifiedPath, absPath)
		r.cache[absPath] = stub
		return stub, nil
	}
	if qualifiedPath == "crate" && ast.HasSyntaxError(tree.Root) {
		return nil, rdsmerr.New(rdsmerr.ParseError, absPath, errSyntaxError)
	}

	decls := symbol.ExtractFile(tree.Root, tree.Source, absPath)
	mod := r.buildModule(ctx, decls, name, qualifiedPath, absPath, false)
	r.cache[absPath] = mod

	// File-backed and inline submodules are gathered together and ordered
	// by declaration line, so Submodules follows source order.
	type placed struct {
		line  int
		child *ir.Module
	}
	var subs []placed
	for _, modDecl := range decls.ModDecls {
		child, err := r.resolveModDecl(ctx, absPath, qualifiedPath, modDecl.Name)
		if err != nil {
			r.diag.Add(rdsmerr.Diagnostic{Kind: rdsmerr.UnreadableFile, File: absPath,
				Line: modDecl.Span.Line, Message: "unresolved mod " + modDecl.Name})
			continue
		}
		if child != nil {
			subs = append(subs, placed{modDecl.Span.Line, child})
		}
	}

	for _, im := range decls.InlineMods {
		if im.CfgTest && r.filter.ExcludeCfgTest {
			continue
		}
		innerDecls := symbol.ExtractFile(im.Body, tree.Source, absPath)
		childPath := qualifiedPath + "::" + im.Name
		child := r.buildModule(ctx, innerDecls, im.Name, childPath, absPath, true)
		child.CfgTest = im.CfgTest
		subs = append(subs, placed{im.Span.Line, child})
	}

	sort.SliceStable(subs, func(i, j int) bool { return subs[i].line < subs[j].line })
	for _, s := range subs {
		mod.Submodules = append(mod.Submodules, s.child)
	}

	return mod, nil
}

var errSyntaxError = syntaxErr{}

type syntaxErr struct{}

func (syntaxErr) Error() string { return "syntax error in entry file" }

func (r *Resolver) buildModule(ctx context.Context, decls *symbol.FileDecls, name, qualifiedPath, file string, inline bool) *ir.Module {
	mod := ir.NewModule(qualifiedPath, name, qualifiedPath, file)
	mod.IsInline = inline
	mod.Structs = decls.Structs
	mod.Enums = decls.Enums
	mod.Traits = decls.Traits
	mod.Functions = decls.Functions
	mod.Impls = decls.Impls
	mod.Uses = decls.Uses
	mod.Constants = decls.Constants
	mod.Statics = decls.Statics
	mod.TypeAliases = decls.TypeAliases
	for _, s := range decls.Structs {
		s.ID = qualifiedPath + "::" + s.Name
	}
	for _, e := range decls.Enums {
		e.ID = qualifiedPath + "::" + e.Name
	}
	for _, tr := range decls.Traits {
		tr.ID = qualifiedPath + "::" + tr.Name
	}
	for _, f := range decls.Functions {
		f.ID = qualifiedPath + "::" + f.Name
	}
	return mod
}

// resolveModDecl finds the sibling file or subdirectory mod.rs for a
// non-inline `mod name;` declaration.
func (r *Resolver) resolveModDecl(ctx context.Context, parentFile, parentQualifiedPath, name string) (*ir.Module, error) {
	searchDir := moduleSearchDir(parentFile)
	siblingFile := filepath.Join(searchDir, name+".rs")
	dirModFile := filepath.Join(searchDir, name, "mod.rs")

	childQualifiedPath := parentQualifiedPath + "::" + name

	var chosen string
	switch {
	case r.fs.Exists(ctx, siblingFile):
		chosen = siblingFile
	case r.fs.Exists(ctx, dirModFile):
		chosen = dirModFile
	default:
		return nil, errModuleNotFound{name}
	}

	if !r.passesFileFilter(searchDir, chosen) {
		return nil, nil
	}

	return r.resolveFile(ctx, chosen, name, childQualifiedPath)
}

type errModuleNotFound struct{ name string }

func (e errModuleNotFound) Error() string { return "module not found: " + e.name }

// moduleSearchDir picks the directory to search for a child module:
// conventional roots (lib/main/mod basename) search their own
// directory; regular module files search a subdirectory named after
// their own basename.
func moduleSearchDir(filePath string) string {
	base := filepath.Base(filePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(filePath)
	if name == "lib" || name == "main" || name == "mod" {
		return dir
	}
	return filepath.Join(dir, name)
}
