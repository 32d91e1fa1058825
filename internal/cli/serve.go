package cli

import (
	"github.com/spf13/cobra"

	"github.com/vladshablinsky/brew/internal/api"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var cfg api.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependency listings over HTTP",
		Long: `Serve the HTTP API until interrupted.

Routes:
  GET /healthz
  GET /deps?formula=a&formula=b[&union=true]
  GET /formulae/{name}/deps
  GET /formulae/{name}/tree?format=json|dot|svg|text
  GET /formulae/{name}/upgrade-specs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg = cfg.WithDefaults()
			printInfo(cmd.ErrOrStderr(), "Listening on %s", StyleHighlight.Render(cfg.Addr))
			return api.New(runner, cfg, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", api.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", api.DefaultShutdownTimeout, "graceful shutdown timeout")

	return cmd
}
