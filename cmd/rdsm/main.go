// Command rdsm runs the static-analysis pipeline over a project root
// and prints the JSON interchange document to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/viant/rdsm/cycle"
	"github.com/viant/rdsm/depgraph"
	"github.com/viant/rdsm/inspector/crate"
	"github.com/viant/rdsm/internal/fsx"
	"github.com/viant/rdsm/manifest"
	"github.com/viant/rdsm/metrics"
	"github.com/viant/rdsm/rdsmerr"
	"github.com/viant/rdsm/report"
	"github.com/viant/rdsm/resolve"
)

var rootCmd = &cobra.Command{
	Use:   "rdsm [path]",
	Short: "Dependency graph, cycle, and coupling analysis",
	Long: `rdsm analyzes a project's module tree, builds a typed dependency
graph, detects strongly-connected-component cycles, computes coupling
metrics, and prints the result as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringSlice("exclude", nil, "Glob patterns to exclude")
	rootCmd.Flags().StringSlice("include", nil, "Glob patterns to include")
	rootCmd.Flags().Bool("no-tests", false, "Use the no-tests filter preset")
	rootCmd.Flags().Bool("module-cycles", false, "Report cycles at module granularity instead of declaration granularity")
	rootCmd.Flags().BoolP("verbose", "v", false, "Log non-fatal diagnostics to stderr")
	rootCmd.Flags().Bool("dump-config", false, "Print both FilterConfig presets as YAML and exit")

	_ = viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("include", rootCmd.Flags().Lookup("include"))
	_ = viper.BindPFlag("no-tests", rootCmd.Flags().Lookup("no-tests"))
	_ = viper.BindPFlag("module-cycles", rootCmd.Flags().Lookup("module-cycles"))
	_ = viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("dump-config", rootCmd.Flags().Lookup("dump-config"))
}

func run(cmd *cobra.Command, args []string) error {
	if viper.GetBool("dump-config") {
		data, err := report.DumpFilterConfigs()
		if err != nil {
			return fmt.Errorf("dumping filter config presets: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	filter := manifest.DefaultFilterConfig()
	if viper.GetBool("no-tests") {
		filter = manifest.NoTestsFilterConfig()
	}
	filter.ExcludePatterns = append(filter.ExcludePatterns, viper.GetStringSlice("exclude")...)
	filter.IncludePatterns = append(filter.IncludePatterns, viper.GetStringSlice("include")...)

	ctx := context.Background()
	fs := fsx.New()
	diag := &rdsmerr.Sink{}

	// Workspace mode is decided by the manifest, not by how many member
	// crates resolved: only workspace runs get crate-prefixed ids.
	m, err := manifest.Read(ctx, fs, root)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	workspace := len(m.WorkspaceGlobs) > 0

	crates, err := crate.ResolveProject(ctx, fs, root, filter, diag)
	if err != nil {
		return fmt.Errorf("resolving project: %w", err)
	}

	var crateGraphs []depgraph.CrateGraph
	for _, c := range crates {
		idx := resolve.Build(c.Root)
		built := depgraph.Build(c.Root, idx, diag)
		crateGraphs = append(crateGraphs, depgraph.CrateGraph{Name: c.Name, Root: c.Root, Build: built, Index: idx})
	}

	var graph *depgraph.Graph
	if workspace {
		graph = depgraph.Link(crateGraphs)
	} else {
		graph = crateGraphs[0].Build.Graph
	}

	var cycles []cycle.Cycle
	if viper.GetBool("module-cycles") {
		cycles = cycle.DetectModuleLevel(graph)
	} else {
		cycles = cycle.Detect(graph)
	}

	lineCounter := metrics.CachingLineCounter(func(file string) (int, error) {
		data, err := fs.ReadFile(ctx, file)
		if err != nil {
			return 0, err
		}
		return countLines(data), nil
	})

	var metricRoots []metrics.CrateRoot
	for _, c := range crates {
		prefix := ""
		if workspace {
			prefix = c.Name + "::"
		}
		metricRoots = append(metricRoots, metrics.CrateRoot{IDPrefix: prefix, Root: c.Root})
	}
	metricsReport := metrics.Compute(graph, cycles, metricRoots, lineCounter)

	var crateEntries []report.CrateEntry
	for _, c := range crates {
		crateEntries = append(crateEntries, report.CrateEntry{Name: c.Name, Root: c.Root})
	}
	doc := report.Build(crateEntries, graph, cycles, metricsReport)
	data, err := report.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if viper.GetBool("verbose") {
		for _, d := range diag.Items() {
			fmt.Fprintln(cmd.ErrOrStderr(), d.String())
		}
	}
	return nil
}

func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := 1
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
