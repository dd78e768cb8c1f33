package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bisect/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the partitioner over HTTP",
		Long: `Serve exposes POST /v1/partition and POST /v1/render. Both take a graph as
JSON; partition returns the report and render returns a diagram.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := c.Config.Server
			if addr == "" {
				addr = cfg.Addr
			}
			srv := api.NewServer(runner, loggerFromContext(ctx), api.Config{
				Addr:           addr,
				ReadTimeout:    cfg.ReadTimeout.Duration,
				WriteTimeout:   cfg.WriteTimeout.Duration,
				RequestTimeout: cfg.RequestTimeout.Duration,
				MaxPasses:      c.Config.Optimizer.MaxPasses,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
