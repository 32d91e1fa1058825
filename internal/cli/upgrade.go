package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladshablinsky/brew/pkg/pipeline"
)

// upgradeSpecCommand creates the upgrade-spec command.
func (c *CLI) upgradeSpecCommand() *cobra.Command {
	var (
		jsonOut     bool
		interactive bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "upgrade-spec <formula>",
		Short: "Show the lineage each dependency would be upgraded with",
		Long: `Show, for every dependency declared by a formula, whether it would be
upgraded from its stable or devel lineage given what is installed.

A dependency resolves to devel only when the installed keg was built from
devel and its devel version is newer than the available stable version.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeFormulae(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			var specs []pipeline.UpgradeSpec
			err = c.withPicker(cmd, interactive, args, func(names []string) error {
				specs, err = runner.UpgradeSpecs(ctx, pipeline.UpgradeRequest{Formula: names[0], Refresh: refresh})
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, specs)
			}
			if len(specs) == 0 {
				printInfo(cmd.ErrOrStderr(), "%s declares no dependencies", args[0])
				return nil
			}
			rows := make([][]string, len(specs))
			for i, s := range specs {
				rows[i] = []string{s.Name, joinOrDash(s.Tags), s.Spec.String()}
			}
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Tags", "Spec"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a tap when the name is ambiguous")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}
