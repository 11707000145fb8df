// Package validation checks a Configuration against a declarative rule table.
// Results are advisory: they gate the export action but never block computation.
package validation

import (
	"fmt"
	"slices"

	"github.com/rshade/streamcost-estimator/internal/model"
)

// Severity grades a validation result.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Result is one rule violation. ChannelID or CategoryID is set for results
// raised by a per-channel or per-category rule.
type Result struct {
	Field      string   `json:"field"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	ChannelID  string   `json:"channelId,omitempty"`
	CategoryID string   `json:"categoryId,omitempty"`
}

// Validate evaluates every applicable rule against cfg and returns all
// violations in a stable order. It has no side effects.
func Validate(cfg model.Configuration) []Result {
	var results []Result

	for _, rule := range configRules {
		if r, broken := rule.check(cfg); broken {
			results = append(results, r)
		}
	}

	results = append(results, checkEnums(cfg)...)
	results = append(results, checkChannels(cfg)...)
	results = append(results, checkCategories(cfg.VODCategories)...)
	return results
}

// HasErrors reports whether any result has error severity.
func HasErrors(results []Result) bool {
	return slices.ContainsFunc(results, func(r Result) bool {
		return r.Severity == SeverityError
	})
}

func checkChannels(cfg model.Configuration) []Result {
	var results []Result
	seen := make(map[string]bool, len(cfg.Channels))

	for i, ch := range cfg.Channels {
		switch {
		case ch.ID == "":
			results = append(results, Result{
				Field:    "channels",
				Message:  fmt.Sprintf("channel %d has no id", i+1),
				Severity: SeverityError,
			})
		case seen[ch.ID]:
			results = append(results, Result{
				Field:     "channels",
				Message:   fmt.Sprintf("channel id %q is used more than once", ch.ID),
				Severity:  SeverityError,
				ChannelID: ch.ID,
			})
		}
		seen[ch.ID] = true

		for _, rule := range channelRules {
			if r, broken := rule.check(ch); broken {
				r.ChannelID = ch.ID
				results = append(results, r)
			}
		}
	}

	if len(cfg.Channels) > 0 && cfg.ChannelCount != len(cfg.Channels) {
		results = append(results, Result{
			Field: "channels",
			Message: fmt.Sprintf("channelCount is %d but %d channels are listed; costs use the %d enabled channels",
				cfg.ChannelCount, len(cfg.Channels), cfg.EffectiveChannelCount()),
			Severity: SeverityWarning,
		})
	}
	return results
}

func checkCategories(categories []model.VODCategoryStat) []Result {
	var results []Result
	seen := make(map[string]bool, len(categories))

	for i, cat := range categories {
		switch {
		case cat.ID == "":
			results = append(results, Result{
				Field:    "vodCategories",
				Message:  fmt.Sprintf("VOD category %d has no id", i+1),
				Severity: SeverityError,
			})
		case seen[cat.ID]:
			results = append(results, Result{
				Field:      "vodCategories",
				Message:    fmt.Sprintf("VOD category id %q is used more than once", cat.ID),
				Severity:   SeverityError,
				CategoryID: cat.ID,
			})
		}
		seen[cat.ID] = true

		for _, rule := range categoryRules {
			if r, broken := rule.check(cat); broken {
				r.CategoryID = cat.ID
				results = append(results, r)
			}
		}
	}
	return results
}
