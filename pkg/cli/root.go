package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/StrathCole/spotavg/pkg/config"
	"github.com/StrathCole/spotavg/pkg/logging"
	"github.com/StrathCole/spotavg/pkg/metrics"
	"github.com/StrathCole/spotavg/pkg/source"
	"github.com/StrathCole/spotavg/pkg/version"
)

// Deps are the process-level collaborators of a command.
type Deps struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Fs        afero.Fs
	NewSource source.Factory
}

func defaultDeps() Deps {
	return Deps{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Fs:        afero.NewOsFs(),
		NewSource: source.New,
	}
}

type flags struct {
	mode       string
	times      string
	configPath string
	cacheFile  string
	divisor    string
	logLevel   string
}

// NewRootCmd builds the spotavg command.
func NewRootCmd(deps Deps) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "spotavg --mode=<cache|read|distributed> [--times=N]",
		Short: "Sample and average the BTC/USD spot price",
		Long: `Sample the BTC/USD spot price from Coinbase and average it.

  cache        fetch N samples, print and persist the mean to the cache file
  read         print the cache file
  distributed  average samples from concurrent producers`,
		Example: `  spotavg --mode=cache --times=10
  spotavg --mode=read
  spotavg --mode=distributed`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), deps, f, args, cmd.Flags().Changed("config"))
		},
	}
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.Flags().StringVar(&f.mode, "mode", "", "pipeline to run: cache, read or distributed")
	cmd.Flags().StringVar(&f.times, "times", "", "number of samples in cache mode")
	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultPath, "path to configuration file")
	cmd.Flags().StringVar(&f.cacheFile, "cache-file", "", "override cache.path")
	cmd.Flags().StringVar(&f.divisor, "divisor", "", "override cache.divisor (requested or observed)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "override logging.level")

	return cmd
}

// Execute runs the command against the real process and returns the exit code.
// This is called by main.main().
func Execute() int {
	return ExecuteWith(context.Background(), defaultDeps(), os.Args[1:])
}

// ExecuteWith runs the command with explicit dependencies and arguments.
func ExecuteWith(ctx context.Context, deps Deps, args []string) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, ErrMissingMode) {
			fmt.Fprintf(deps.Stdout, "Usage:\n%s\n", cmd.Example)
		}
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// run validates arguments before anything touches the network, then dispatches.
func run(ctx context.Context, deps Deps, f flags, args []string, explicitConfig bool) error {
	mode, err := parseMode(f.mode)
	if err != nil {
		return err
	}

	var times int
	if mode == ModeCache {
		if times, err = parseTimes(f.times, args); err != nil {
			return err
		}
	}

	cfg, err := config.Load(f.configPath, !explicitConfig)
	if err != nil {
		return err
	}
	applyOverrides(cfg, f)
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(deps, cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logger.With("run_id", uuid.NewString(), "mode", string(mode))

	m := metrics.New()
	if cfg.Metrics.Enabled {
		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			logger.Info("Starting metrics server", "addr", cfg.Metrics.Addr)
			if err := m.Serve(metricsCtx, cfg.Metrics.Addr); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				logger.Warn("Failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
			}
		}()
	}

	r := &runner{deps: deps, cfg: cfg, logger: logger, metrics: m}
	switch mode {
	case ModeCache:
		return r.cache(ctx, times)
	case ModeRead:
		return r.read()
	default:
		return r.distributed(ctx)
	}
}

func applyOverrides(cfg *config.Config, f flags) {
	if f.cacheFile != "" {
		cfg.Cache.Path = f.cacheFile
	}
	if f.divisor != "" {
		cfg.Cache.Divisor = f.divisor
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
}

func newLogger(deps Deps, cfg config.LoggingConfig) (*logging.Logger, error) {
	switch cfg.Output {
	case "", "stderr":
		return logging.New(deps.Stderr, logging.ParseLevel(cfg.Level), cfg.Format), nil
	case "stdout":
		return logging.New(deps.Stdout, logging.ParseLevel(cfg.Level), cfg.Format), nil
	default:
		return logging.Init(cfg.Level, cfg.Format, cfg.Output)
	}
}
