package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quilt/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve quilts over HTTP",
		Long: `Serve quilts over HTTP until interrupted.

  GET /v1/quilt/{seed}?grid=5&block=50&format=png
  GET /v1/quilt/{seed}/colors
  GET /healthz

Render defaults, size limits and the cache backend come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, cfg, noCache)
			defer runner.Close()

			srv := server.New(runner,
				server.WithAddr(cfg.Server.Addr),
				server.WithLogger(c.Logger),
				server.WithLimits(cfg.Limits()),
				server.WithDefaults(cfg.Options("")),
				server.WithTimeout(cfg.Server.RequestTimeout.Duration),
			)
			printSuccess("Serving on %s", StyleLink.Render(displayURL(srv.Addr())))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// displayURL turns a listen address into a clickable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
