// Package cost computes the monthly encoding, storage, delivery and add-on
// costs of a streaming Configuration.
package cost

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/model"
	"github.com/rshade/streamcost-estimator/internal/pricing"
)

// LineItem is one unrounded monthly charge within a bucket.
type LineItem struct {
	Bucket  Bucket  `json:"bucket"`
	Name    string  `json:"name"`
	Monthly float64 `json:"monthly"`
}

// Calculator maps a Configuration to its monthly cost breakdown.
// It holds no mutable state; the same Configuration always yields the same Costs.
type Calculator struct {
	rates  pricing.RateTable
	logger zerolog.Logger
}

// NewCalculator creates a Calculator over the given rate table.
func NewCalculator(rates pricing.RateTable, logger zerolog.Logger) *Calculator {
	return &Calculator{
		rates:  rates,
		logger: logger.With().Str("component", "cost").Logger(),
	}
}

// Calculate returns the monthly Costs for cfg. Each bucket is the sum of its
// line items rounded to cents independently of the others.
func (c *Calculator) Calculate(cfg model.Configuration) model.Costs {
	return Sum(c.Itemize(cfg))
}

// Sum folds line items into their buckets and rounds each bucket to cents.
func Sum(items []LineItem) model.Costs {
	var costs model.Costs
	for _, item := range items {
		switch item.Bucket {
		case BucketEncoding:
			costs.Encoding += item.Monthly
		case BucketStorage:
			costs.Storage += item.Monthly
		case BucketDelivery:
			costs.Delivery += item.Monthly
		case BucketOther:
			costs.Other += item.Monthly
		}
	}

	costs.Encoding = roundCents(costs.Encoding)
	costs.Storage = roundCents(costs.Storage)
	costs.Delivery = roundCents(costs.Delivery)
	costs.Other = roundCents(costs.Other)
	return costs
}

// Itemize returns every non-zero charge behind Calculate, in bucket order.
func (c *Calculator) Itemize(cfg model.Configuration) []LineItem {
	cfg = cfg.Normalized()

	var items []LineItem
	add := func(bucket Bucket, name string, monthly float64) {
		if monthly != 0 {
			items = append(items, LineItem{Bucket: bucket, Name: name, Monthly: monthly})
		}
	}

	c.encoding(cfg, add)
	c.storage(cfg, add)
	c.delivery(cfg, add)
	c.other(cfg, add)
	return items
}

type addFunc func(bucket Bucket, name string, monthly float64)

func (c *Calculator) encoding(cfg model.Configuration, add addFunc) {
	if cfg.StreamEnabled {
		liveMinutes := model.MinutesPerMonth * float64(cfg.EffectiveChannelCount())
		add(BucketEncoding, ItemLiveEncoding, liveMinutes*c.encodingPerMinute(cfg, model.Provider(cfg.Platform)))
	}

	if cfg.LegacyEnabled && !cfg.PreEncoded {
		minutes := cfg.BackCatalogHours * 60
		rate := c.encodingPerMinute(cfg, cfg.ResolvedLegacyProvider())
		add(BucketEncoding, ItemLegacyReencode, minutes*rate/legacyAmortMonths)
	}
}

func (c *Calculator) storage(cfg model.Configuration, add addFunc) {
	if cfg.LiveDVREnabled && cfg.VODEnabled {
		channels := float64(cfg.EffectiveChannelCount())
		minutes := cfg.HoursPerDayArchived * 60 * model.DaysPerMonth * channels *
			(float64(cfg.RetentionWindow) / model.DaysPerMonth)
		add(BucketStorage, ItemVODArchive, minutes*c.storagePerMinute(cfg, cfg.ResolvedVODProvider()))
	}

	if cfg.LegacyEnabled {
		minutes := cfg.BackCatalogHours * 60
		add(BucketStorage, ItemLegacyArchive, minutes*c.storagePerMinute(cfg, cfg.ResolvedLegacyProvider()))
	}
}

func (c *Calculator) delivery(cfg model.Configuration, add addFunc) {
	region := c.regionMultiplier(cfg.DeliveryRegion)

	if cfg.StreamEnabled {
		viewerMinutes := model.MinutesPerMonth * float64(cfg.EffectiveChannelCount()) * float64(cfg.PeakConcurrentViewers)
		rate := c.deliveryPerMinute(cfg, model.Provider(cfg.Platform), c.liveEgressPerGB(cfg))
		add(BucketDelivery, ItemLiveDelivery, viewerMinutes*rate*region)
	}

	if cfg.VODEnabled {
		viewerMinutes := model.MinutesPerMonth * float64(cfg.PeakConcurrentVODViewers)
		rate := c.deliveryPerMinute(cfg, cfg.ResolvedVODProvider(), c.vodEgressPerGB(cfg))
		add(BucketDelivery, ItemVODDelivery, viewerMinutes*rate*region)
	}
}

func (c *Calculator) other(cfg model.Configuration, add addFunc) {
	if fee, found := c.rates.DataStoreMonthly(cfg.DataStore); found {
		add(BucketOther, ItemDataStore, fee)
		if cfg.DataStore != model.DataStoreNone {
			add(BucketOther, ItemDBBackups, c.rates.BackupRetentionMonthly(cfg.DBBackupRetention))
		}
	} else {
		c.warnMissing("data store tier", "data_store", string(cfg.DataStore))
	}

	if fee, found := c.rates.EmailBaseFee(cfg.OutboundEmail); found {
		// The multiplier caps at one volume unit.
		units := math.Min(float64(cfg.MonthlyEmailVolume)/c.rates.EmailVolumeUnit(), 1)
		add(BucketOther, ItemEmail, math.Max(units, 0)*fee)
	} else {
		c.warnMissing("email provider", "outbound_email", string(cfg.OutboundEmail))
	}

	if cfg.Platform.RunsOwnInfrastructure() {
		c.hosting(cfg, add)
	}

	if fee, found := c.rates.ViewerAnalyticsMonthly(cfg.ViewerAnalytics, cfg.Platform); found {
		add(BucketOther, ItemViewerAnalytics, fee)
	} else {
		c.warnMissing("viewer analytics option", "viewer_analytics", cfg.ViewerAnalytics)
	}
	if fee, found := c.rates.SiteAnalyticsMonthly(cfg.SiteAnalytics); found {
		add(BucketOther, ItemSiteAnalytics, fee)
	} else {
		c.warnMissing("site analytics option", "site_analytics", cfg.SiteAnalytics)
	}
}

// hosting adds the station-hardware charges of self-hosted and hybrid setups.
func (c *Calculator) hosting(cfg model.Configuration, add addFunc) {
	servers := float64(serverCount(cfg))
	amort := float64(cfg.AmortMonths)

	if plan, found := c.rates.CDNPlan(cfg.CDNPlan); found {
		add(BucketOther, ItemCDNPlan, plan.Monthly)
	} else {
		c.warnMissing("CDN plan", "cdn_plan", string(cfg.CDNPlan))
	}

	switch cfg.HardwareMode {
	case model.HardwareRent:
		add(BucketOther, ItemHosting, cfg.MonthlyRentalCost*servers)
	case model.HardwareOwn:
		if !cfg.HardwareAvailable {
			capEx := cfg.CapEx
			if capEx <= 0 {
				capEx = cfg.ServerCost * servers
			}
			add(BucketOther, ItemHosting, capEx/amort)
		}
		kWh := cfg.Wattage * model.HoursPerMonth / 1000
		add(BucketOther, ItemPower, kWh*cfg.PowerRate*servers)
	default:
		c.logger.Warn().
			Str("hardware_mode", string(cfg.HardwareMode)).
			Msg("unknown hardware mode, hosting cost omitted")
	}

	if cfg.MacMiniNeeded {
		add(BucketOther, ItemMacMini, c.addonCost(pricing.AddonMacMini)/amort)
	}
	if cfg.NetworkSwitchNeeded {
		add(BucketOther, ItemNetworkSwitch, c.addonCost(pricing.AddonNetworkSwitch)/amort)
	}
	if cfg.RackHostingLocation == model.RackColocation {
		add(BucketOther, ItemColocation, cfg.RackCost*servers)
	}
}

// encodingPerMinute returns the per-minute encoding rate of a concrete provider.
// Station compute is priced per channel-hour and converted to minutes; hybrid
// is the mean of the cloud provider's and the station's rate.
func (c *Calculator) encodingPerMinute(cfg model.Configuration, p model.Provider) float64 {
	switch {
	case p.IsManaged():
		rate, found := c.rates.EncodingPerMinute(p, cfg.EncodingPreset)
		if !found {
			c.warnMissing("encoding rate", "provider", string(p), "encoding_preset", string(cfg.EncodingPreset))
		}
		return rate
	case p == model.ProviderSelfHosted:
		rate, found := c.rates.ComputePerHour(cfg.TranscodingEngine, cfg.EncodingPreset)
		if !found {
			c.warnMissing("compute rate", "transcoding_engine", string(cfg.TranscodingEngine), "encoding_preset", string(cfg.EncodingPreset))
		}
		return rate / 60
	case p == model.ProviderHybrid:
		return (c.encodingPerMinute(cfg, cfg.CloudProvider) + c.encodingPerMinute(cfg, model.ProviderSelfHosted)) / 2
	}
	c.warnMissing("encoding provider", "provider", string(p))
	return 0
}

// storagePerMinute returns the per-minute-month storage rate of a concrete
// provider. Station storage is priced by the video storage strategy.
func (c *Calculator) storagePerMinute(cfg model.Configuration, p model.Provider) float64 {
	if p.IsManaged() {
		rate, found := c.rates.ManagedStoragePerMinute(p)
		if !found {
			c.warnMissing("storage rate", "provider", string(p))
		}
		return rate
	}
	if p.RunsOwnInfrastructure() {
		rate, found := c.rates.SelfHostedStoragePerMinute(cfg.VideoStorageStrategy)
		if !found {
			c.warnMissing("storage strategy", "video_storage_strategy", string(cfg.VideoStorageStrategy))
		}
		return rate
	}
	c.warnMissing("storage provider", "provider", string(p))
	return 0
}

// deliveryPerMinute returns the cost of one viewer-minute. Station delivery is
// the preset's bitrate converted to GB and billed at egressPerGB.
func (c *Calculator) deliveryPerMinute(cfg model.Configuration, p model.Provider, egressPerGB float64) float64 {
	if p.IsManaged() {
		rate, found := c.rates.DeliveryPerMinute(p)
		if !found {
			c.warnMissing("delivery rate", "provider", string(p))
		}
		return rate
	}
	if p.RunsOwnInfrastructure() {
		profile, found := cfg.EncodingPreset.Profile()
		if !found {
			c.warnMissing("encoding preset", "encoding_preset", string(cfg.EncodingPreset))
			return 0
		}
		gbPerMinute := profile.DeliveryBitrateMbps * 60 / megabitsPerGB
		return gbPerMinute * egressPerGB
	}
	c.warnMissing("delivery provider", "provider", string(p))
	return 0
}

// liveEgressPerGB is the CDN plan's egress rate when a plan is set, otherwise
// origin egress. A positive cdnEgressRate overrides the plan's card rate.
func (c *Calculator) liveEgressPerGB(cfg model.Configuration) float64 {
	if cfg.CDNPlan != model.CDNPlanNone {
		if cfg.CDNEgressRate > 0 {
			return cfg.CDNEgressRate
		}
		if plan, found := c.rates.CDNPlan(cfg.CDNPlan); found {
			return plan.EgressPerGB
		}
	}
	return c.originEgressPerGB(cfg)
}

// vodEgressPerGB is the video CDN's egress rate when one is set, otherwise
// origin egress. A positive videoCdnEgressRate overrides the card rate.
func (c *Calculator) vodEgressPerGB(cfg model.Configuration) float64 {
	if cfg.VideoCDNProvider != model.VideoCDNNone {
		if cfg.VideoCDNEgressRate > 0 {
			return cfg.VideoCDNEgressRate
		}
		if rate, found := c.rates.VideoCDNEgressPerGB(cfg.VideoCDNProvider); found {
			return rate
		}
	}
	return c.originEgressPerGB(cfg)
}

func (c *Calculator) originEgressPerGB(cfg model.Configuration) float64 {
	if cfg.OriginEgressCost > 0 {
		return cfg.OriginEgressCost
	}
	return c.rates.OriginEgressPerGB()
}

// regionMultiplier returns the delivery multiplier; unknown regions are unscaled.
func (c *Calculator) regionMultiplier(region model.DeliveryRegion) float64 {
	m, found := c.rates.RegionMultiplier(region)
	if !found {
		c.warnMissing("delivery region", "delivery_region", string(region))
		return 1
	}
	return m
}

func (c *Calculator) addonCost(addon string) float64 {
	cost, found := c.rates.HardwareAddonCost(addon)
	if !found {
		c.warnMissing("hardware add-on", "addon", addon)
	}
	return cost
}

// warnMissing logs a rate lookup miss with key/value pairs as string fields.
func (c *Calculator) warnMissing(what string, kv ...string) {
	event := c.logger.Warn()
	for i := 0; i+1 < len(kv); i += 2 {
		event = event.Str(kv[i], kv[i+1])
	}
	event.Msg(fmt.Sprintf(rateNotFoundTemplate, what))
}

// serverCount is the configured count, raised to what hybrid redundancy requires.
func serverCount(cfg model.Configuration) int {
	n := cfg.ServerCount
	if cfg.Platform == model.PlatformHybrid {
		n = max(n, cfg.HybridRedundancyMode.ServersRequired())
	}
	return n
}

// roundCents rounds a dollar amount to 2 decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
