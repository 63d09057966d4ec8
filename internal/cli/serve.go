package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/internal/metrics"
	"github.com/matzehuels/stepviz/internal/server"
	"github.com/matzehuels/stepviz/pkg/buildinfo"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog and traces over HTTP",
		Long: `Start the HTTP API. Runs share the configured trace cache, so a redis
or mongo backend lets several replicas reuse each other's recordings.

Prometheus metrics are exposed on /metrics unless --no-metrics is set.`,
		Example: `  stepviz serve --addr :9090
  curl -X POST localhost:9090/algorithms/bubbleSort/run -d '{"input":{"values":[3,1,2]}}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if addr == "" {
				addr = cfg.Addr
			}

			runner := c.newRunner(ctx, false)
			defer runner.Cache.Close()

			var opts []server.Option
			if !noMetrics {
				m := metrics.New()
				m.Install()
				opts = append(opts, server.WithMetrics(m.Handler()))
			}

			c.Logger.Info("Starting server", "addr", addr, "version", buildinfo.Version, "cache", c.Config.Cache.Backend)
			srv := server.New(c.registry, runner, c.Logger, opts...)
			return srv.ListenAndServe(ctx, addr, cfg.ReadTimeout, cfg.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	return cmd
}
