package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vladshablinsky/brew/pkg/dag"
	"github.com/vladshablinsky/brew/pkg/pipeline"
	"github.com/vladshablinsky/brew/pkg/render"
)

// treeOptions holds the flags of the tree command.
type treeOptions struct {
	filterFlags
	format      string
	output      string
	detailed    bool
	interactive bool
	refresh     bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOptions

	cmd := &cobra.Command{
		Use:   "tree [flags] <formula>",
		Short: "Draw the dependency tree of a formula",
		Long: `Draw the dependency tree of a formula under the same pruning rules as deps.

Formats:
  text  box-drawing tree (default)
  dot   Graphviz DOT
  svg   SVG rendered with Graphviz
  json  node-link JSON`,
		Example: `  brewdeps tree wget
  brewdeps tree --include-build --format svg -o wget.svg wget`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeFormulae(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateTreeFormat(opts.format); err != nil {
				return err
			}
			return c.runTree(cmd, args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatText, "output format (text, dot, svg, json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show versions and tags")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick a tap when the name is ambiguous")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, name string, opts treeOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var g *dag.DAG
	err = c.withPicker(cmd, opts.interactive, []string{name}, func(names []string) error {
		g, err = runner.Tree(ctx, pipeline.TreeRequest{
			Formula: names[0],
			Filter:  opts.filter(),
			Refresh: opts.refresh,
		})
		return err
	})
	if err != nil {
		return err
	}
	prog.done("built tree", "formula", name, "nodes", g.NodeCount())

	data, err := c.renderTree(cmd, g, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(cmd.ErrOrStderr(), "Wrote %s tree", opts.format)
	printFile(cmd.ErrOrStderr(), opts.output)
	return nil
}

func (c *CLI) renderTree(cmd *cobra.Command, g *dag.DAG, opts treeOptions) ([]byte, error) {
	switch opts.format {
	case pipeline.FormatDOT:
		return []byte(render.ToDOT(g, render.Options{Detailed: opts.detailed, Tags: opts.detailed})), nil
	case pipeline.FormatSVG:
		spin := newSpinnerWithContext(cmd.Context(), cmd.ErrOrStderr(), "Rendering SVG...")
		spin.Start()
		defer spin.Stop()
		return render.RenderSVG(cmd.Context(), render.ToDOT(g, render.Options{Detailed: opts.detailed, Tags: opts.detailed}))
	case pipeline.FormatJSON:
		var buf bytes.Buffer
		if err := render.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		if err := render.WriteText(g, &buf, render.TextOptions{Tags: opts.detailed, Versions: opts.detailed}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
