package cli

import (
	"github.com/spf13/cobra"

	"github.com/spa-dev/rbgen/pkg/api"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve backgrounds over HTTP",
		Long: `Serve runs the HTTP API until interrupted:

  GET  /healthz         liveness and version
  GET  /v1/modes        background modes and their default parameters
  GET  /v1/themes       color themes
  POST /v1/backgrounds  PNG body in, composited PNG out

Query parameters of /v1/backgrounds mirror the render flags (mode, theme,
colors, seed, random, refresh); any other parameter is a mode parameter.`,
		Example: `  rbgen serve --addr :9000
  curl --data-binary @logo.png 'localhost:9000/v1/backgrounds?mode=checkered&square_size=30' > out.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := api.Config{
				Addr:         c.Config.Server.Addr,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("max-body") {
				cfg.MaxBodyBytes = maxBody
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.New(runner, c.Logger, cfg)
			printInfo("Listening on %s", StyleLink.Render(srv.Addr()))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", api.DefaultMaxBodyBytes, "largest accepted upload in bytes")

	return cmd
}
