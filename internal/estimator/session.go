package estimator

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/model"
	"github.com/rshade/streamcost-estimator/internal/store"
)

// Session holds the caller's current Configuration and the Report derived
// from it. Every change replaces the whole Configuration, recomputes the
// Report and persists the new value.
type Session struct {
	estimator   *Estimator
	persistence *store.Persistence
	logger      zerolog.Logger

	mu     sync.RWMutex
	cfg    model.Configuration
	report Report
}

// NewSession loads the persisted Configuration (or the defaults) and
// computes its Report.
func NewSession(ctx context.Context, e *Estimator, p *store.Persistence, logger zerolog.Logger) *Session {
	s := &Session{
		estimator:   e,
		persistence: p,
		logger:      logger.With().Str("component", "session").Str("session_id", uuid.NewString()).Logger(),
	}
	s.cfg = p.Load(ctx)
	s.report = e.Evaluate(s.cfg)
	s.logger.Info().
		Str("platform", string(s.cfg.Platform)).
		Int("channels", s.cfg.EffectiveChannelCount()).
		Msg("session started")
	return s
}

// Current returns a copy of the current Configuration.
func (s *Session) Current() model.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConfiguration(s.cfg)
}

// Report returns the Report of the current Configuration.
func (s *Session) Report() Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Update applies mutate to a copy of the current Configuration, replaces the
// current value with it, recomputes the Report and persists the result.
// Persistence failures are logged by the store and do not fail the update.
func (s *Session) Update(ctx context.Context, mutate func(*model.Configuration)) Report {
	s.mu.Lock()
	next := cloneConfiguration(s.cfg)
	mutate(&next)
	report := s.estimator.Evaluate(next)
	s.cfg = next
	s.report = report
	s.mu.Unlock()

	s.persistence.Save(ctx, next)
	s.logger.Debug().
		Str("update_id", uuid.NewString()).
		Bool("export_allowed", report.ExportAllowed).
		Msg("configuration replaced")
	return report
}

// Replace swaps in cfg wholesale, as when importing a user-authored file.
func (s *Session) Replace(ctx context.Context, cfg model.Configuration) Report {
	return s.Update(ctx, func(current *model.Configuration) {
		*current = cloneConfiguration(cfg)
	})
}

// cloneConfiguration copies cfg including its slices and optional fields, so
// the copy can be mutated without aliasing the original.
func cloneConfiguration(cfg model.Configuration) model.Configuration {
	cfg.Channels = slices.Clone(cfg.Channels)
	for i := range cfg.Channels {
		cfg.Channels[i].FillRate = clonePtr(cfg.Channels[i].FillRate)
		cfg.Channels[i].Enabled = clonePtr(cfg.Channels[i].Enabled)
	}
	cfg.VODCategories = slices.Clone(cfg.VODCategories)
	for i := range cfg.VODCategories {
		cfg.VODCategories[i].FillRate = clonePtr(cfg.VODCategories[i].FillRate)
	}

	r := &cfg.Revenue
	r.DefaultFillRate = clonePtr(r.DefaultFillRate)
	r.PeakTimeMultiplier = clonePtr(r.PeakTimeMultiplier)
	r.SeasonalMultiplier = clonePtr(r.SeasonalMultiplier)
	r.DemographicMultiplier = clonePtr(r.DemographicMultiplier)
	r.VODSkipRate = clonePtr(r.VODSkipRate)
	r.VODCompletionRate = clonePtr(r.VODCompletionRate)
	r.VODPremiumPlacementRate = clonePtr(r.VODPremiumPlacementRate)
	return cfg
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
