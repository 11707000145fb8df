// Package pricing provides rate lookups for the streaming cost estimator
// from an embedded YAML rate card.
package pricing

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/streamcost-estimator/internal/model"
)

//go:embed data/rates.yaml
var embeddedRates []byte

// RateTable provides pricing data lookups.
// Lookups return (rate, true) if found, (0, false) if not found.
type RateTable interface {
	// Metadata identifies the loaded rate card.
	Metadata() Metadata

	// EncodingPerMinute returns the managed encoding rate for a preset.
	EncodingPerMinute(provider model.Provider, preset model.EncodingPreset) (float64, bool)

	// ComputePerHour returns the station compute rate per channel-hour.
	ComputePerHour(engine model.TranscodingEngine, preset model.EncodingPreset) (float64, bool)

	// ManagedStoragePerMinute returns a managed provider's storage rate per minute-month.
	ManagedStoragePerMinute(provider model.Provider) (float64, bool)

	// SelfHostedStoragePerMinute returns the station storage rate per minute-month.
	SelfHostedStoragePerMinute(strategy model.StorageStrategy) (float64, bool)

	// DeliveryPerMinute returns a managed provider's rate per viewer-minute.
	DeliveryPerMinute(provider model.Provider) (float64, bool)

	// OriginEgressPerGB returns the default origin egress rate.
	OriginEgressPerGB() float64

	// CDNPlan returns the flat fee and egress rate for a live CDN plan.
	CDNPlan(plan model.CDNPlan) (CDNPlanRate, bool)

	// VideoCDNEgressPerGB returns the egress rate of a VOD CDN.
	VideoCDNEgressPerGB(provider model.VideoCDNProvider) (float64, bool)

	// RegionMultiplier returns the delivery price multiplier for a region.
	RegionMultiplier(region model.DeliveryRegion) (float64, bool)

	// DataStoreMonthly returns the flat monthly fee of a data store tier.
	DataStoreMonthly(store model.DataStore) (float64, bool)

	// BackupRetentionMonthly returns the tiered backup fee for a retention window.
	BackupRetentionMonthly(days int) float64

	// EmailBaseFee returns the provider's fee per email volume unit.
	EmailBaseFee(provider model.EmailProvider) (float64, bool)

	// EmailVolumeUnit returns the message count covered by one base fee.
	EmailVolumeUnit() float64

	// ViewerAnalyticsMonthly returns the analytics fee, 0 when native to platform.
	ViewerAnalyticsMonthly(option string, platform model.Platform) (float64, bool)

	// SiteAnalyticsMonthly returns the site analytics fee.
	SiteAnalyticsMonthly(option string) (float64, bool)

	// HardwareAddonCost returns the one-time purchase price of an add-on.
	HardwareAddonCost(addon string) (float64, bool)
}

// Client implements RateTable over a parsed rate card.
// It is immutable after initialization and safe for concurrent use.
type Client struct {
	raw    []byte
	logger zerolog.Logger

	// Thread-safe initialization
	once sync.Once
	err  error

	meta Metadata

	// Lookup indexes (composite keys: "provider/preset", "engine/preset")
	encodingIndex map[string]float64
	computeIndex  map[string]float64
	card          rateCard
}

// NewClient creates a Client from the embedded rate card.
func NewClient(logger zerolog.Logger) (*Client, error) {
	return NewClientFromYAML(embeddedRates, logger)
}

// NewClientFromYAML creates a Client from a rate card document, such as an
// operator-supplied override file.
func NewClientFromYAML(data []byte, logger zerolog.Logger) (*Client, error) {
	c := &Client{
		raw:    data,
		logger: logger,
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

// init parses the rate card exactly once
func (c *Client) init() error {
	c.once.Do(func() {
		var card rateCard
		if err := yaml.Unmarshal(c.raw, &card); err != nil {
			c.err = fmt.Errorf("failed to parse rate card: %w", err)
			return
		}
		if card.Currency == "" {
			card.Currency = "USD"
		}
		if card.Email.VolumeUnit <= 0 {
			card.Email.VolumeUnit = 1000
		}
		if err := checkNonNegative(card); err != nil {
			c.err = err
			return
		}

		c.card = card
		c.meta = Metadata{
			Version:         card.Version,
			PublicationDate: card.PublicationDate,
			Currency:        card.Currency,
		}

		c.encodingIndex = make(map[string]float64)
		for provider, presets := range card.EncodingPerMinute {
			for preset, rate := range presets {
				c.encodingIndex[provider+"/"+preset] = rate
			}
		}
		c.computeIndex = make(map[string]float64)
		for engine, presets := range card.SelfHostedComputePerHour {
			for preset, rate := range presets {
				c.computeIndex[engine+"/"+preset] = rate
			}
		}

		// Retention tiers are matched in order.
		slices.SortFunc(c.card.BackupRetentionTiers, func(a, b retentionTier) int {
			return a.UpToDays - b.UpToDays
		})

		if len(c.encodingIndex) == 0 {
			c.logger.Warn().
				Str("rate_card_version", card.Version).
				Msg("managed encoding rates not found in rate card")
		}
		c.logger.Debug().
			Str("rate_card_version", card.Version).
			Str("publication_date", card.PublicationDate).
			Int("encoding_rates", len(c.encodingIndex)).
			Int("compute_rates", len(c.computeIndex)).
			Msg("rate card loaded")
	})
	return c.err
}

// checkNonNegative rejects rate cards carrying negative prices.
func checkNonNegative(card rateCard) error {
	flat := []map[string]float64{
		card.StoragePerMinute,
		card.SelfHostedStoragePerMinute,
		card.DeliveryPerMinute,
		card.VideoCDNEgressPerGB,
		card.RegionMultipliers,
		card.DataStores,
		card.Email.BaseFees,
		card.SiteAnalytics,
		card.HardwareAddons,
	}
	for _, m := range flat {
		for key, rate := range m {
			if rate < 0 {
				return fmt.Errorf("rate card entry %q is negative: %v", key, rate)
			}
		}
	}
	for _, nested := range []map[string]map[string]float64{card.EncodingPerMinute, card.SelfHostedComputePerHour} {
		for outer, m := range nested {
			for inner, rate := range m {
				if rate < 0 {
					return fmt.Errorf("rate card entry %q is negative: %v", outer+"/"+inner, rate)
				}
			}
		}
	}
	for plan, r := range card.CDNPlans {
		if r.Monthly < 0 || r.EgressPerGB < 0 {
			return fmt.Errorf("rate card CDN plan %q is negative", plan)
		}
	}
	for option, r := range card.ViewerAnalytics {
		if r.Monthly < 0 {
			return fmt.Errorf("rate card analytics option %q is negative", option)
		}
	}
	if card.OriginEgressPerGB < 0 {
		return fmt.Errorf("rate card origin egress is negative: %v", card.OriginEgressPerGB)
	}
	return nil
}

// Metadata returns the rate card's version information.
func (c *Client) Metadata() Metadata {
	return c.meta
}

// EncodingPerMinute returns the managed encoding rate for a preset.
func (c *Client) EncodingPerMinute(provider model.Provider, preset model.EncodingPreset) (float64, bool) {
	rate, found := c.encodingIndex[string(provider)+"/"+string(preset)]
	return rate, found
}

// ComputePerHour returns the station compute rate per channel-hour.
func (c *Client) ComputePerHour(engine model.TranscodingEngine, preset model.EncodingPreset) (float64, bool) {
	rate, found := c.computeIndex[string(engine)+"/"+string(preset)]
	return rate, found
}

// ManagedStoragePerMinute returns a managed provider's storage rate per minute-month.
func (c *Client) ManagedStoragePerMinute(provider model.Provider) (float64, bool) {
	rate, found := c.card.StoragePerMinute[string(provider)]
	return rate, found
}

// SelfHostedStoragePerMinute returns the station storage rate per minute-month.
func (c *Client) SelfHostedStoragePerMinute(strategy model.StorageStrategy) (float64, bool) {
	rate, found := c.card.SelfHostedStoragePerMinute[string(strategy)]
	return rate, found
}

// DeliveryPerMinute returns a managed provider's rate per viewer-minute.
func (c *Client) DeliveryPerMinute(provider model.Provider) (float64, bool) {
	rate, found := c.card.DeliveryPerMinute[string(provider)]
	return rate, found
}

// OriginEgressPerGB returns the default origin egress rate.
func (c *Client) OriginEgressPerGB() float64 {
	return c.card.OriginEgressPerGB
}

// CDNPlan returns the flat fee and egress rate for a live CDN plan.
func (c *Client) CDNPlan(plan model.CDNPlan) (CDNPlanRate, bool) {
	rate, found := c.card.CDNPlans[string(plan)]
	return rate, found
}

// VideoCDNEgressPerGB returns the egress rate of a VOD CDN.
func (c *Client) VideoCDNEgressPerGB(provider model.VideoCDNProvider) (float64, bool) {
	rate, found := c.card.VideoCDNEgressPerGB[string(provider)]
	return rate, found
}

// RegionMultiplier returns the delivery price multiplier for a region.
func (c *Client) RegionMultiplier(region model.DeliveryRegion) (float64, bool) {
	m, found := c.card.RegionMultipliers[string(region)]
	return m, found
}

// DataStoreMonthly returns the flat monthly fee of a data store tier.
func (c *Client) DataStoreMonthly(store model.DataStore) (float64, bool) {
	fee, found := c.card.DataStores[string(store)]
	return fee, found
}

// BackupRetentionMonthly returns the fee of the first tier covering days.
// Retention beyond the last tier is billed at the last tier.
func (c *Client) BackupRetentionMonthly(days int) float64 {
	tiers := c.card.BackupRetentionTiers
	if len(tiers) == 0 || days <= 0 {
		return 0
	}
	for _, tier := range tiers {
		if days <= tier.UpToDays {
			return tier.Monthly
		}
	}
	return tiers[len(tiers)-1].Monthly
}

// EmailBaseFee returns the provider's fee per email volume unit.
func (c *Client) EmailBaseFee(provider model.EmailProvider) (float64, bool) {
	fee, found := c.card.Email.BaseFees[string(provider)]
	return fee, found
}

// EmailVolumeUnit returns the message count covered by one base fee.
func (c *Client) EmailVolumeUnit() float64 {
	return c.card.Email.VolumeUnit
}

// ViewerAnalyticsMonthly returns the viewer analytics fee. Options native to
// the selected platform are included in the platform price and cost 0.
func (c *Client) ViewerAnalyticsMonthly(option string, platform model.Platform) (float64, bool) {
	rate, found := c.card.ViewerAnalytics[option]
	if !found {
		return 0, false
	}
	if slices.Contains(rate.NativeTo, string(platform)) {
		return 0, true
	}
	return rate.Monthly, true
}

// SiteAnalyticsMonthly returns the site analytics fee.
func (c *Client) SiteAnalyticsMonthly(option string) (float64, bool) {
	fee, found := c.card.SiteAnalytics[option]
	return fee, found
}

// HardwareAddonCost returns the one-time purchase price of an add-on.
func (c *Client) HardwareAddonCost(addon string) (float64, bool) {
	cost, found := c.card.HardwareAddons[addon]
	return cost, found
}
