// Package estimator runs the cost, hardware, revenue and validation engines
// over a Configuration and holds the caller's editing session.
package estimator

import (
	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/cost"
	"github.com/rshade/streamcost-estimator/internal/hardware"
	"github.com/rshade/streamcost-estimator/internal/model"
	"github.com/rshade/streamcost-estimator/internal/pricing"
	"github.com/rshade/streamcost-estimator/internal/revenue"
	"github.com/rshade/streamcost-estimator/internal/validation"
)

// Report is everything derived from one Configuration snapshot.
type Report struct {
	Costs      model.Costs           `json:"costs"`
	Items      []cost.LineItem       `json:"items"`
	Hardware   hardware.Requirements `json:"hardware"`
	Revenue    revenue.Calculations  `json:"revenue"`
	Validation []validation.Result   `json:"validation"`

	// ExportAllowed is false while any validation result is an error.
	ExportAllowed bool `json:"exportAllowed"`
}

// Estimator evaluates Configurations. It is stateless and safe for
// concurrent use.
type Estimator struct {
	costs    *cost.Calculator
	hardware *hardware.Advisor
	logger   zerolog.Logger
}

// NewEstimator creates an Estimator pricing against rates.
func NewEstimator(rates pricing.RateTable, logger zerolog.Logger) *Estimator {
	return &Estimator{
		costs:    cost.NewCalculator(rates, logger),
		hardware: hardware.NewAdvisor(logger),
		logger:   logger.With().Str("component", "estimator").Logger(),
	}
}

// Evaluate runs costs, hardware sizing, revenue and validation over cfg, in
// that order. Revenue receives the computed costs for net operating profit.
// Live-ad revenue is suppressed when streaming is off, VOD-ad revenue when
// VOD is off.
func (e *Estimator) Evaluate(cfg model.Configuration) Report {
	var report Report

	report.Items = e.costs.Itemize(cfg)
	report.Costs = cost.Sum(report.Items)
	report.Hardware = e.hardware.Calculate(cfg)

	assumptions := cfg.Revenue
	if !cfg.StreamEnabled {
		assumptions.LiveAdsEnabled = false
	}
	if !cfg.VODEnabled {
		assumptions.VODAdsEnabled = false
	}
	report.Revenue = revenue.Calculate(assumptions, report.Costs, cfg.Channels, cfg.VODCategories)

	report.Validation = validation.Validate(cfg)
	report.ExportAllowed = !validation.HasErrors(report.Validation)

	e.logger.Debug().
		Float64("total_cost", report.Costs.Total()).
		Float64("total_revenue", report.Revenue.TotalRevenue).
		Int("validation_results", len(report.Validation)).
		Bool("export_allowed", report.ExportAllowed).
		Msg("configuration evaluated")
	return report
}
