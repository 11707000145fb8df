// Command streamcost evaluates a station's streaming Configuration: it loads
// the persisted Configuration, optionally imports a user-authored one, prints
// the monthly cost, revenue and hardware report, and exports the
// Configuration when it validates.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/rshade/streamcost-estimator/internal/estimator"
	"github.com/rshade/streamcost-estimator/internal/logging"
	"github.com/rshade/streamcost-estimator/internal/model"
	"github.com/rshade/streamcost-estimator/internal/store"
)

// Process exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitExportBlocked = 2
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	opts, err := parseOptions(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "[streamcost] %v\n", err)
		os.Exit(exitFailure)
	}

	settings, err := loadSettings(viper.New(), opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[streamcost] %v\n", err)
		os.Exit(exitFailure)
	}
	logger := logging.New(settings.Log.Level, settings.Log.Pretty, os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal")
		cancel()
	}()

	code := run(ctx, opts, settings, os.Stdout, logger)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, opts Options, settings Settings, out io.Writer, logger zerolog.Logger) int {
	rates, err := loadRates(settings.Rates, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize rate card")
		return exitFailure
	}
	meta := rates.Metadata()
	logger.Debug().
		Str("version", meta.Version).
		Str("published", meta.PublicationDate).
		Str("currency", meta.Currency).
		Msg("rate card loaded")

	kv, closer, err := openStore(settings.Store, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open store")
		return exitFailure
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}()
	if rs, ok := kv.(*store.RedisStore); ok {
		if err := rs.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, using defaults and dropping saves")
		}
	}

	est := estimator.NewEstimator(rates, logger)
	persistence := store.NewPersistence(kv, settings.Store.Key, logger)

	if opts.Watch > 0 {
		err := watch(ctx, opts, est, persistence, out, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("watch failed")
			return exitFailure
		}
		return exitOK
	}
	return runOnce(ctx, opts, est, persistence, out, logger)
}

func runOnce(ctx context.Context, opts Options, est *estimator.Estimator, persistence *store.Persistence, out io.Writer, logger zerolog.Logger) int {
	session := estimator.NewSession(ctx, est, persistence, logger)
	report := session.Report()

	if opts.ImportPath != "" {
		cfg, err := importConfiguration(opts.ImportPath, logger)
		if err != nil {
			logger.Error().Err(err).Str("path", opts.ImportPath).Msg("import failed")
			return exitFailure
		}
		report = session.Replace(ctx, cfg)
	}

	if err := writeReport(out, opts.Format, session.Current(), report); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
		return exitFailure
	}

	if opts.ExportPath == "" {
		return exitOK
	}
	if !report.ExportAllowed {
		logger.Error().
			Str("path", opts.ExportPath).
			Int("results", len(report.Validation)).
			Msg("export blocked by validation errors")
		return exitExportBlocked
	}
	if err := exportConfiguration(opts.ExportPath, session.Current()); err != nil {
		logger.Error().Err(err).Msg("export failed")
		return exitFailure
	}
	logger.Info().Str("path", opts.ExportPath).Msg("configuration exported")
	return exitOK
}

func importConfiguration(path string, logger zerolog.Logger) (model.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Configuration{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, strategy, err := store.DecodeConfiguration(data)
	if err != nil {
		return model.Configuration{}, err
	}
	if strategy != store.StrategyJSON {
		logger.Info().Str("path", path).Str("strategy", strategy).Msg("imported non-strict configuration")
	}
	return cfg, nil
}

func exportConfiguration(path string, cfg model.Configuration) error {
	data, err := store.EncodeConfiguration(cfg)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}
	buf.WriteByte('\n')
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
