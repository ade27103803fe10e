package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nomis52/chainkit/buildinfo"
	"github.com/nomis52/chainkit/chain"
	"github.com/nomis52/chainkit/config"
	"github.com/nomis52/chainkit/cron"
	"github.com/nomis52/chainkit/logging"
	"github.com/nomis52/chainkit/metrics"
	"github.com/nomis52/chainkit/orders"
)

type Args struct {
	ConfigPath  string
	ShowVersion bool
	Validate    bool
	Amount      float64
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := parseArgs()

	// Handle version request
	if args.ShowVersion {
		showVersion()
		return nil
	}

	// Validate required config path
	if args.ConfigPath == "" {
		return fmt.Errorf("config flag (-c or --config) is required")
	}

	cfg, err := config.LoadConfig(args.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Handle validation-only request
	if args.Validate {
		fmt.Printf("Configuration validation successful: %s\n", args.ConfigPath)
		return nil
	}

	wrapped, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := wrapped.Logger

	props := buildinfo.Get()
	logger.Info("chainkit started",
		"version", props.Version,
		"build_time", props.BuildTime,
		"git_commit", props.GitCommit,
		"config_path", args.ConfigPath,
	)

	recorder, err := newRecorder(cfg.Monitoring)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	registry := orders.NewRegistry(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var jobs []cron.Job
	for _, cc := range cfg.Chains {
		runnable, err := buildRunnable(cc, registry, logger, recorder, args.Amount)
		if err != nil {
			return fmt.Errorf("failed to build chain %q: %w", cc.Name, err)
		}

		if cc.Schedule == "" {
			// Unscheduled chains run once, immediately.
			if err := runnable.Run(ctx); err != nil {
				return fmt.Errorf("chain %q failed: %w", cc.Name, err)
			}
			continue
		}
		jobs = append(jobs, cron.Job{Name: cc.Name, Spec: cc.Schedule, Runnable: runnable})
	}

	if len(jobs) == 0 {
		return nil
	}

	manager, err := cron.NewManager(jobs, logger)
	if err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	manager.Start(ctx)
	logger.Info("scheduler running", "next_run", manager.NextRun())

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// newRecorder creates a push-mode metrics recorder, or nil when no remote
// write URL is configured.
func newRecorder(cfg config.MonitoringConfig) (*metrics.Recorder, error) {
	if cfg.RemoteWriteURL == "" {
		return nil, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to get hostname: %w", err)
	}

	registry := metrics.NewPushRegistry(metrics.PushConfig{
		URL:      cfg.RemoteWriteURL,
		Prefix:   cfg.MetricsPrefix,
		Job:      cfg.JobName,
		Instance: hostname,
	})
	return metrics.NewRecorder(registry)
}

// buildRunnable turns a chain declaration into a Runnable that executes the
// chain against a fresh order on every invocation.
func buildRunnable(cc config.ChainConfig, registry chain.Resolver, logger *slog.Logger, recorder *metrics.Recorder, amount float64) (cron.Runnable, error) {
	builder := config.NewBuilder(cc, registry, chain.WithLogger(logger))

	logSink := logging.Sink(logger, cc.Name)
	if recorder != nil {
		metricSink := recorder.Sink(cc.Name)
		builder.UseDiagnostics(func(d chain.Diagnostics) {
			logSink(d)
			metricSink(d)
		})
	} else {
		builder.UseDiagnostics(logSink)
	}

	c, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return cron.RunnableFunc(func(ctx context.Context) error {
		order := &orders.Order{
			ID:     fmt.Sprintf("%s-%d", cc.Name, time.Now().Unix()),
			Amount: amount,
		}
		return c.Run(ctx, order)
	}), nil
}

func showVersion() {
	props := buildinfo.Get()
	fmt.Printf("chainkit %s\n", props.Version)
	fmt.Printf("Built: %s\n", props.BuildTime)
	fmt.Printf("Commit: %s\n", props.GitCommit)
}

func parseArgs() Args {
	configPath := flag.String("config", "", "Path to config file")
	configPathShort := flag.String("c", "", "Path to config file (shorthand)")
	showVersion := flag.Bool("version", false, "Show version information")
	versionShort := flag.Bool("v", false, "Show version information (shorthand)")
	validate := flag.Bool("validate", false, "Validate configuration and exit")
	amount := flag.Float64("amount", 50, "Order amount used for demo runs")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nChain execution demo\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --config /etc/chainkit/config.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --config config.yaml --validate\n", os.Args[0])
	}

	flag.Parse()

	path := *configPath
	if path == "" && *configPathShort != "" {
		path = *configPathShort
	}

	version := *showVersion || *versionShort

	return Args{
		ConfigPath:  path,
		ShowVersion: version,
		Validate:    *validate,
		Amount:      *amount,
	}
}
