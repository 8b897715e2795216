package cli

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/funcstructs/pkg/api"
	"github.com/matzehuels/funcstructs/pkg/observability"
)

// serveOpts holds the flags of the serve command. Zero values fall back to
// the [server] section of the config file.
type serveOpts struct {
	addr      string
	maxSize   int
	noMetrics bool
	workers   int
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve enumerations and counts over HTTP",
		Long: `Serve the HTTP API: streaming tree and partition endpoints, counts and
censuses, a health check and Prometheus metrics. Stops gracefully on SIGINT
or SIGTERM.`,
		Example: `  funcstructs serve --addr :9090
  curl 'localhost:9090/v1/trees/6?format=text'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&opts.maxSize, "max-size", 0, "largest n accepted from requests")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable /metrics")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "census parallelism (0 = GOMAXPROCS)")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	cfg := c.Config.Server
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if opts.maxSize > 0 {
		cfg.MaxSize = opts.maxSize
	}
	if opts.noMetrics {
		cfg.Metrics = false
	}

	runner, err := c.newRunner(cmd.Context())
	if err != nil {
		return err
	}
	defer runner.Close()

	apiOpts := api.Options{MaxSize: cfg.MaxSize, CensusWorkers: opts.workers}
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		hooks, err := observability.NewPrometheusHooks(reg)
		if err != nil {
			return err
		}
		observability.SetEnumerationHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
		defer observability.Reset()
		apiOpts.Gatherer = reg
	}

	printSuccess("Listening on %s", StyleLink.Render(cfg.Addr))
	printDetail("cache: %s  max size: %d  metrics: %t", backendName(c), cfg.MaxSize, cfg.Metrics)
	printNextStep("Try", "curl "+healthURL(cfg.Addr))
	return api.New(runner, c.Logger, apiOpts).ListenAndServe(cmd.Context(), cfg.Addr, cfg.ShutdownGrace)
}

// healthURL turns a listen address into a URL for the health check.
func healthURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/healthz"
}

func backendName(c *CLI) string {
	if c.noCache {
		return "none"
	}
	if c.Config.Cache.Backend == "" {
		return "file"
	}
	return c.Config.Cache.Backend
}
