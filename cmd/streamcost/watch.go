package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/estimator"
	"github.com/rshade/streamcost-estimator/internal/store"
)

// watchDebounce collapses rapid successive saves of the import file.
const watchDebounce = 250 * time.Millisecond

// watch re-evaluates opts.ImportPath whenever it changes until ctx is done.
// Each surviving report is printed and its Configuration persisted.
func watch(ctx context.Context, opts Options, est *estimator.Estimator, persistence *store.Persistence, out io.Writer, logger zerolog.Logger) error {
	logger = logger.With().Str("path", opts.ImportPath).Logger()

	reg := prometheus.NewRegistry()
	rc, err := estimator.NewRecomputer(est, watchDebounce, reg, logger)
	if err != nil {
		return err
	}

	if opts.MetricsAddr != "" {
		server := startMetricsServer(opts.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("metrics server shutdown failed")
			}
		}()
	}

	runErr := make(chan error, 1)
	go func() { runErr <- rc.Run(ctx) }()

	poller := &filePoller{path: opts.ImportPath}
	submit := func() {
		changed, err := poller.changed()
		if err != nil {
			logger.Warn().Err(err).Msg("cannot stat import file")
			return
		}
		if !changed {
			return
		}
		cfg, err := importConfiguration(opts.ImportPath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring unreadable import file")
			return
		}
		seq := rc.Submit(cfg)
		logger.Debug().Uint64("seq", seq).Msg("submitted snapshot")
	}

	ticker := time.NewTicker(opts.Watch)
	defer ticker.Stop()

	logger.Info().Dur("interval", opts.Watch).Msg("watching import file")
	submit()
	for {
		select {
		case <-ticker.C:
			submit()
		case res, ok := <-rc.Results():
			if !ok {
				return <-runErr
			}
			persistence.Save(ctx, res.Config)
			if err := writeReport(out, opts.Format, res.Config, res.Report); err != nil {
				logger.Error().Err(err).Msg("failed to write report")
			}
		}
	}
}

// filePoller detects changes to a file by modification time and size.
type filePoller struct {
	path    string
	modTime time.Time
	size    int64
	seen    bool
}

func (p *filePoller) changed() (bool, error) {
	info, err := os.Stat(p.path)
	if err != nil {
		return false, err
	}
	if p.seen && info.ModTime().Equal(p.modTime) && info.Size() == p.size {
		return false, nil
	}
	p.seen = true
	p.modTime = info.ModTime()
	p.size = info.Size()
	return true, nil
}

func newMetricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

func startMetricsServer(addr string, reg *prometheus.Registry, logger zerolog.Logger) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           newMetricsMux(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("serving recompute metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return server
}
