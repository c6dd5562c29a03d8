package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/flowbricks/internal/app"
	"github.com/vk/flowbricks/internal/matcher"
)

// Environment fallbacks for flags left at their defaults.
const (
	EnvCatalog   = "FLOWBRICKS_CATALOG"
	EnvCatalogDB = "FLOWBRICKS_CATALOG_DB"
)

type globalFlags struct {
	catalogPath string
	catalogDB   string
	logFormat   string
	logLevel    string
	workers     int
	metricsPort int
	cacheTTL    time.Duration
	minScore    float64
	limit       int
}

// session is the per-invocation state shared by subcommands.
type session struct {
	flags  globalFlags
	outW   io.Writer
	errW   io.Writer
	config *app.Config
	app    *app.App
	closer io.Closer
}

// Execute runs the command line. Results go to outW, logs and diagnostics
// to errW. Failures come back as *ExitError when they map to a specific
// exit code.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	s := &session{outW: outW, errW: errW}
	root := newRootCommand(s)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if terr := s.teardown(context.WithoutCancel(ctx)); terr != nil && err == nil {
		err = terr
	}
	return classify(err)
}

// newRootCommand builds the command tree around s.
func newRootCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "flowbricks",
		Short: "flowbricks - discover, catalog and recompose reusable pipeline units",
		Long: `flowbricks finds self-contained regions in a pipeline graph, catalogs them
as reusable units, and recomposes cataloged units into new pipelines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
	}
	root.SetOut(s.outW)
	root.SetErr(s.errW)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	f := root.PersistentFlags()
	f.StringVar(&s.flags.catalogPath, "catalog", "", "HCL manifest file/directory or YAML/JSON index file (env: "+EnvCatalog+")")
	f.StringVar(&s.flags.catalogDB, "catalog-db", "", "SQLite catalog database (env: "+EnvCatalogDB+")")
	f.StringVar(&s.flags.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	f.StringVar(&s.flags.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.IntVar(&s.flags.workers, "workers", 4, "Number of concurrent workers for region analysis.")
	f.IntVar(&s.flags.metricsPort, "metrics-port", 0, "Port for the /metrics and /health server. 0 is disabled.")
	f.DurationVar(&s.flags.cacheTTL, "cache-ttl", 0, "How long a loaded catalog stays fresh. 0 reloads on every use.")
	f.Float64Var(&s.flags.minScore, "min-score", matcher.DefaultMinScore, "Minimum match score in [0,1].")
	f.IntVar(&s.flags.limit, "limit", 0, "Maximum number of match results. 0 uses the built-in default.")

	root.AddCommand(
		newAnalyzeCmd(s),
		newMatchCmd(s),
		newPlanCmd(s),
		newIndexCmd(s),
	)
	return root
}

func (s *session) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if !flags.Changed("catalog") {
		if v := os.Getenv(EnvCatalog); v != "" {
			s.flags.catalogPath = v
		}
	}
	if !flags.Changed("catalog-db") {
		if v := os.Getenv(EnvCatalogDB); v != "" {
			s.flags.catalogDB = v
		}
	}

	raw := app.Config{
		CatalogPath: s.flags.catalogPath,
		CatalogDB:   s.flags.catalogDB,
		LogFormat:   strings.ToLower(s.flags.logFormat),
		LogLevel:    strings.ToLower(s.flags.logLevel),
		WorkerCount: s.flags.workers,
		MetricsPort: s.flags.metricsPort,
		CacheTTL:    s.flags.cacheTTL,
		Limit:       s.flags.limit,
	}
	if flags.Changed("min-score") {
		raw.MinScore = &s.flags.minScore
	}
	cfg, err := app.NewConfig(raw)
	if err != nil {
		return usageError(err)
	}
	s.config = cfg

	source, closer, err := app.OpenSource(cmd.Context(), cfg)
	if err != nil && cfg.HasCatalog() {
		return fmt.Errorf("opening catalog: %w", err)
	}
	s.closer = closer
	s.app = app.NewApp(s.errW, cfg, source)
	s.app.StartMetricsServer()
	return nil
}

// teardown releases whatever setup opened. It is safe to call when setup
// never ran.
func (s *session) teardown(ctx context.Context) error {
	var err error
	if s.app != nil {
		err = s.app.Close(ctx)
		s.app = nil
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
		s.closer = nil
	}
	return err
}
