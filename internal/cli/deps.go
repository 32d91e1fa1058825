package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vladshablinsky/brew/pkg/dependency"
	"github.com/vladshablinsky/brew/pkg/pipeline"
)

// filterFlags holds the pruning flags shared by deps and tree.
type filterFlags struct {
	includeBuild    bool
	includeOptional bool
	skipRecommended bool
	onlyDirect      bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.includeBuild, "include-build", false, "include build-only dependencies")
	cmd.Flags().BoolVar(&f.includeOptional, "include-optional", false, "include optional dependencies")
	cmd.Flags().BoolVar(&f.skipRecommended, "skip-recommended", false, "skip recommended dependencies")
	cmd.Flags().BoolVar(&f.onlyDirect, "1", false, "only list direct dependencies")
}

func (f *filterFlags) filter() dependency.Filter {
	return dependency.Filter{
		IncludeBuild:    f.includeBuild,
		IncludeOptional: f.includeOptional,
		SkipRecommended: f.skipRecommended,
		OnlyDirect:      f.onlyDirect,
	}
}

// depsOptions holds the flags of the deps command.
type depsOptions struct {
	filterFlags
	union       bool
	jsonOut     bool
	table       bool
	interactive bool
	refresh     bool
}

// depsCommand creates the deps command.
func (c *CLI) depsCommand() *cobra.Command {
	var opts depsOptions

	cmd := &cobra.Command{
		Use:   "deps [flags] <formula>...",
		Short: "List the dependencies of formulae",
		Long: `List the effective dependencies of one or more formulae.

With several formulae the dependencies common to all of them are printed,
or all of them with --union. Build-only and optional dependencies are left
out unless requested.`,
		Example: `  brewdeps deps wget
  brewdeps deps --include-build --1 wget
  brewdeps deps --union curl wget`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeFormulae(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDeps(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.union, "union", false, "print the union instead of the intersection")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a table with tags and specs")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick a tap when a name is ambiguous")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runDeps(cmd *cobra.Command, args []string, opts depsOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var res *pipeline.Result
	err = c.withPicker(cmd, opts.interactive, args, func(names []string) error {
		res, err = runner.Deps(ctx, pipeline.Request{
			Formulae: names,
			Filter:   opts.filter(),
			Union:    opts.union,
			Refresh:  opts.refresh,
		})
		return err
	})
	if err != nil {
		return err
	}
	prog.done("expanded dependencies", "formulae", res.Formulae, "count", len(res.Deps), "cached", res.Stats.CacheHit)

	out := cmd.OutOrStdout()
	switch {
	case opts.jsonOut:
		return writeJSON(out, res)
	case opts.table:
		printDepsTable(out, res.Deps)
		printStats(cmd.ErrOrStderr(), len(res.Deps), "dependencies", res.Stats.CacheHit)
	default:
		for _, name := range res.Names() {
			fmt.Fprintln(out, name)
		}
	}
	return nil
}

func printDepsTable(w io.Writer, deps []*dependency.Dependency) {
	rows := make([][]string, len(deps))
	for i, d := range deps {
		rows[i] = []string{d.Name(), joinOrDash(d.Tags().Strings()), d.Spec().String()}
	}
	fmt.Fprintln(w, renderTable([]string{"Dependency", "Tags", "Spec"}, rows))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
