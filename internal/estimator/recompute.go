package estimator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/model"
)

// Result is a Report tagged with the sequence number of the snapshot it was
// computed from.
type Result struct {
	Seq    uint64
	Config model.Configuration
	Report Report
}

type request struct {
	seq uint64
	cfg model.Configuration
}

// Recomputer evaluates Configuration snapshots off the caller's goroutine.
// Only the newest snapshot matters: a request superseded before or after
// evaluation is dropped, so Results never delivers a stale Report.
type Recomputer struct {
	estimator *Estimator
	debounce  time.Duration
	logger    zerolog.Logger

	mu      sync.Mutex
	pending *request
	wake    chan struct{}
	seq     atomic.Uint64
	results chan Result

	computed  prometheus.Counter
	discarded prometheus.Counter
}

// NewRecomputer creates a Recomputer. Each wake-up waits debounce before
// evaluating so bursts of edits collapse into one computation. Counters are
// registered on reg when it is non-nil.
func NewRecomputer(e *Estimator, debounce time.Duration, reg prometheus.Registerer, logger zerolog.Logger) (*Recomputer, error) {
	r := &Recomputer{
		estimator: e,
		debounce:  debounce,
		logger:    logger.With().Str("component", "recompute").Logger(),
		wake:      make(chan struct{}, 1),
		results:   make(chan Result, 1),
		computed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamcost",
			Subsystem: "recompute",
			Name:      "computed_total",
			Help:      "Reports computed and delivered.",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streamcost",
			Subsystem: "recompute",
			Name:      "discarded_total",
			Help:      "Snapshots or reports dropped because a newer snapshot superseded them.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{r.computed, r.discarded} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register recompute metrics: %w", err)
			}
		}
	}
	return r, nil
}

// Submit queues a snapshot of cfg and returns its sequence number. It never
// blocks; an older snapshot still waiting is replaced.
func (r *Recomputer) Submit(cfg model.Configuration) uint64 {
	req := &request{cfg: cloneConfiguration(cfg)}

	r.mu.Lock()
	req.seq = r.seq.Add(1)
	if r.pending != nil {
		r.discarded.Inc()
	}
	r.pending = req
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return req.seq
}

// Results delivers the Report of the newest snapshot. An undelivered Result
// is replaced when a newer one is ready. The channel is closed when Run returns.
func (r *Recomputer) Results() <-chan Result {
	return r.results
}

// Run processes snapshots until ctx is done. It must be called once.
func (r *Recomputer) Run(ctx context.Context) error {
	defer close(r.results)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.wake:
		}

		if r.debounce > 0 {
			timer := time.NewTimer(r.debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		r.mu.Lock()
		req := r.pending
		r.pending = nil
		r.mu.Unlock()
		if req == nil {
			continue
		}

		report := r.estimator.Evaluate(req.cfg)
		if latest := r.seq.Load(); req.seq != latest {
			r.discarded.Inc()
			r.logger.Debug().Uint64("seq", req.seq).Uint64("latest", latest).Msg("discarding superseded report")
			continue
		}

		r.computed.Inc()
		r.deliver(Result{Seq: req.seq, Config: req.cfg, Report: report})
	}
}

func (r *Recomputer) deliver(res Result) {
	for {
		select {
		case r.results <- res:
			return
		default:
		}
		select {
		case stale := <-r.results:
			r.discarded.Inc()
			r.logger.Debug().Uint64("seq", stale.Seq).Msg("replacing undelivered report")
		default:
		}
	}
}
