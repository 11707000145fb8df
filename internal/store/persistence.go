package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/model"
)

// Persistence loads and saves the Configuration under one key. Neither
// operation surfaces an error: reads fall back to defaults and failed
// writes are logged and dropped.
type Persistence struct {
	kv     KV
	key    string
	logger zerolog.Logger
}

// NewPersistence creates a Persistence over kv. An empty key uses DefaultKey.
func NewPersistence(kv KV, key string, logger zerolog.Logger) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	return &Persistence{
		kv:     kv,
		key:    key,
		logger: logger.With().Str("component", "store").Str("key", key).Logger(),
	}
}

// Load returns the persisted Configuration merged over the compiled-in
// defaults, or the defaults alone when nothing usable is stored.
func (p *Persistence) Load(ctx context.Context) model.Configuration {
	data, err := p.kv.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		p.logger.Debug().Msg("no persisted configuration, using defaults")
		return model.DefaultConfiguration()
	}
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to read persisted configuration, using defaults")
		return model.DefaultConfiguration()
	}

	cfg, strategy, err := DecodeConfiguration(data)
	if err != nil {
		p.logger.Warn().Err(err).Int("bytes", len(data)).Msg("persisted configuration unusable, using defaults")
		return model.DefaultConfiguration()
	}
	if strategy != StrategyJSON {
		p.logger.Info().Str("strategy", strategy).Msg("recovered malformed persisted configuration")
	}
	return cfg
}

// Save writes cfg. Failures are logged, never returned.
func (p *Persistence) Save(ctx context.Context, cfg model.Configuration) {
	data, err := EncodeConfiguration(cfg)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode configuration")
		return
	}
	if err := p.kv.Set(ctx, p.key, data); err != nil {
		p.logger.Warn().Err(err).Msg("failed to persist configuration")
		return
	}
	p.logger.Debug().Int("bytes", len(data)).Msg("configuration persisted")
}
