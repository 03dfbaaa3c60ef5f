package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookdex/internal/config"
	logpkg "github.com/kailas-cloud/bookdex/internal/logger"
	"github.com/kailas-cloud/bookdex/internal/metrics"
	"github.com/kailas-cloud/bookdex/internal/usecase/library"
	"github.com/kailas-cloud/bookdex/internal/version"
)

// app carries state shared by every subcommand of a single invocation.
type app struct {
	out io.Writer

	// flags
	configPath string
	addr       string
	output     string

	env     string
	cfg     config.Config
	logger  *zap.Logger
	opener  library.Opener
	library *library.Service
}

func newApp(out io.Writer) *app {
	return &app{out: out, logger: zap.NewNop()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookdex",
		Short: "Sample books, a full-text index and example queries against Redis search",
		Long: `bookdex writes three sample book hashes into Redis, manages a RediSearch
index over them and runs example search and aggregation queries.

Each invocation runs exactly one operation on its own connection.

Examples:
  bookdex insert
  bookdex create-index
  bookdex search Tether --limit 5
  bookdex aggregate
  bookdex drop-index`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Path to a YAML config file (default: config/$ENV.yaml)")
	root.PersistentFlags().StringVar(&a.addr, "addr", "",
		"Redis address host:port, overrides database.addrs")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatJSON,
		"Output format: json or yaml")

	root.AddCommand(
		a.insertCmd(),
		a.getCmd(),
		a.createIndexCmd(),
		a.dropIndexCmd(),
		a.searchCmd(),
		a.aggregateCmd(),
		a.statusCmd(),
		a.serveCmd(),
	)
	return root
}

// setup loads configuration, builds the logger and the library service.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	if err := checkFormat(a.output); err != nil {
		return err
	}

	a.env = config.GetEnv()
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.addr != "" {
		cfg.Database.Addrs = []string{a.addr}
	}
	a.cfg = cfg

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger

	metrics.RegisterOperationMetrics()

	if a.opener == nil {
		a.opener = redisOpener(cfg.Database, cfg.Index.Name)
	}
	a.library = library.New(a.opener)

	a.logger.Debug("bookdex starting",
		zap.String("version", version.Version),
		zap.String("env", a.env),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("index", cfg.Index.Name),
	)
	return nil
}

// loadConfig honours --config, then config/$ENV.yaml, then built-in defaults.
func (a *app) loadConfig() (config.Config, error) {
	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(a.env)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// execute runs root and then finishes the invocation whether or not the command failed.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	cmd, err := root.ExecuteContextC(ctx)
	a.finish(ctx, cmd)
	return err
}

// finish pushes operation metrics for one-shot commands and flushes the logger.
func (a *app) finish(ctx context.Context, cmd *cobra.Command) {
	defer func() { _ = a.logger.Sync() }()

	if cmd == nil || cmd.Name() == "serve" || a.cfg.Metrics.PushgatewayURL == "" {
		return
	}
	if err := metrics.Push(ctx, a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job,
		prometheus.DefaultGatherer); err != nil {
		a.logger.Warn("metrics push failed", zap.Error(err))
	}
}

// opContext bounds a single operation and carries the logger.
func (a *app) opContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := logpkg.ContextWithLogger(cmd.Context(), a.logger)
	return context.WithTimeout(ctx, a.cfg.Database.RequestTimeout())
}
