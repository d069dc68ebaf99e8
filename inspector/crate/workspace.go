package crate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/viant/rdsm/internal/fsx"
	"github.com/viant/rdsm/ir"
	"github.com/viant/rdsm/manifest"
	"github.com/viant/rdsm/rdsmerr"
)

// CrateResult is one resolved crate: its name and module tree.
type CrateResult struct {
	Name string
	Root *ir.Module
}

// ResolveProject resolves projectRoot as a workspace when its manifest
// declares workspace.members, or as a single crate otherwise. Both
// paths share this one entry point, so a crate with no workspace
// section resolves exactly like a synthetic one-member workspace.
func ResolveProject(ctx context.Context, fs fileReader, projectRoot string, filter manifest.FilterConfig, diag *rdsmerr.Sink) ([]CrateResult, error) {
	m, err := manifest.Read(ctx, fs, projectRoot)
	if err != nil {
		return nil, err
	}
	if len(m.WorkspaceGlobs) == 0 {
		resolver := NewResolver(fs, WithFilterConfig(filter), WithDiagnostics(diag))
		root, name, err := resolver.ResolveCrate(ctx, projectRoot)
		if err != nil {
			return nil, err
		}
		return []CrateResult{{Name: name, Root: root}}, nil
	}

	memberDirs, err := fsx.ExpandGlobs(projectRoot, m.WorkspaceGlobs)
	if err != nil {
		return nil, err
	}

	// Each workspace member is resolved independently (its own manifest,
	// its own module tree), so the per-member resolve step is safe to
	// parallelize. Diagnostics are collected into per-member sinks and
	// replayed into diag in member order afterward so the result is
	// identical to the sequential form.
	type memberResult struct {
		crate *CrateResult
		diags []rdsmerr.Diagnostic
	}
	slots := make([]memberResult, len(memberDirs))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, dir := range memberDirs {
		i, dir := i, dir
		group.Go(func() error {
			memberManifest, err := manifest.Read(groupCtx, fs, dir)
			if err != nil {
				return err
			}
			if memberManifest.IsZero() {
				return nil // matched directory without a manifest is not a crate
			}
			memberDiag := &rdsmerr.Sink{}
			resolver := NewResolver(fs, WithFilterConfig(filter), WithDiagnostics(memberDiag))
			root, name, err := resolver.ResolveCrate(groupCtx, dir)
			if err != nil {
				return err
			}
			slots[i] = memberResult{crate: &CrateResult{Name: name, Root: root}, diags: memberDiag.Items()}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var results []CrateResult
	for _, slot := range slots {
		if slot.crate == nil {
			continue
		}
		results = append(results, *slot.crate)
		for _, d := range slot.diags {
			diag.Add(d)
		}
	}
	return results, nil
}
