package validation

import (
	"fmt"
	"math"

	"github.com/rshade/streamcost-estimator/internal/model"
)

// Bounds constrains a numeric field. Nil Min or Max leaves that side open.
type Bounds struct {
	Min     *float64
	Max     *float64
	Integer bool
}

// violation returns the first broken constraint as a message fragment.
func (b Bounds) violation(v float64) (string, bool) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return "must be a finite number", true
	case b.Min != nil && v < *b.Min:
		return fmt.Sprintf("must be at least %g", *b.Min), true
	case b.Max != nil && v > *b.Max:
		return fmt.Sprintf("must be at most %g", *b.Max), true
	case b.Integer && v != math.Trunc(v):
		return "must be a whole number", true
	}
	return "", false
}

// FieldRule checks one numeric field of T. When gates whether the rule
// applies; a nil When always applies.
type FieldRule[T any] struct {
	Field string
	Bounds
	Severity Severity
	When     func(T) bool
	Value    func(T) float64
}

func (r FieldRule[T]) check(subject T) (Result, bool) {
	if r.When != nil && !r.When(subject) {
		return Result{}, false
	}
	msg, broken := r.Bounds.violation(r.Value(subject))
	if !broken {
		return Result{}, false
	}
	return Result{Field: r.Field, Message: r.Field + " " + msg, Severity: r.Severity}, true
}

// Rule is a Configuration-level rule.
type Rule = FieldRule[model.Configuration]

// ChannelRule is evaluated once per channel.
type ChannelRule = FieldRule[model.ChannelStat]

// CategoryRule is evaluated once per VOD category.
type CategoryRule = FieldRule[model.VODCategoryStat]

func bound(v float64) *float64 {
	return &v
}

var (
	zero       = bound(0)
	one        = bound(1)
	hoursInDay = bound(24)
	percent    = bound(100)
)

func nonNegative() Bounds { return Bounds{Min: zero} }
func nonNegativeCount() Bounds { return Bounds{Min: zero, Integer: true} }
func fraction() Bounds { return Bounds{Min: zero, Max: one} }
func percentage() Bounds { return Bounds{Min: zero, Max: percent} }

func streaming(c model.Configuration) bool { return c.StreamEnabled }
func vod(c model.Configuration) bool { return c.VODEnabled }
func archiving(c model.Configuration) bool { return c.LiveDVREnabled && c.VODEnabled }
func legacy(c model.Configuration) bool { return c.LegacyEnabled }
func ownInfra(c model.Configuration) bool { return c.Normalized().Platform.RunsOwnInfrastructure() }
func owned(c model.Configuration) bool {
	return ownInfra(c) && c.Normalized().HardwareMode == model.HardwareOwn
}
func rented(c model.Configuration) bool {
	return ownInfra(c) && c.HardwareMode == model.HardwareRent
}
func colocated(c model.Configuration) bool {
	return ownInfra(c) && c.RackHostingLocation == model.RackColocation
}

func set(p *float64) bool { return p != nil }
func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// configRules are the Configuration-level numeric rules.
var configRules = []Rule{
	{
		Field:    "channelCount",
		Bounds:   Bounds{Min: one, Integer: true},
		Severity: SeverityError,
		When:     streaming,
		Value:    func(c model.Configuration) float64 { return float64(c.ChannelCount) },
	},
	{
		Field:    "peakConcurrentViewers",
		Bounds:   nonNegativeCount(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return float64(c.PeakConcurrentViewers) },
	},

	{
		Field:    "hoursPerDayArchived",
		Bounds:   Bounds{Min: zero, Max: hoursInDay},
		Severity: SeverityError,
		When:     vod,
		Value:    func(c model.Configuration) float64 { return c.HoursPerDayArchived },
	},
	{
		Field:    "retentionWindow",
		Bounds:   Bounds{Min: one, Integer: true},
		Severity: SeverityError,
		When:     archiving,
		Value:    func(c model.Configuration) float64 { return float64(c.RetentionWindow) },
	},
	{
		Field:    "retentionWindow",
		Bounds:   Bounds{Max: bound(3650)},
		Severity: SeverityWarning,
		When:     archiving,
		Value:    func(c model.Configuration) float64 { return float64(c.RetentionWindow) },
	},
	{
		Field:    "peakConcurrentVodViewers",
		Bounds:   nonNegativeCount(),
		Severity: SeverityError,
		When:     vod,
		Value:    func(c model.Configuration) float64 { return float64(c.PeakConcurrentVODViewers) },
	},

	{
		Field:    "backCatalogHours",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     legacy,
		Value:    func(c model.Configuration) float64 { return c.BackCatalogHours },
	},

	{
		Field:    "dbBackupRetention",
		Bounds:   nonNegativeCount(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return float64(c.DBBackupRetention) },
	},
	{
		Field:    "dbBackupRetention",
		Bounds:   Bounds{Max: bound(365)},
		Severity: SeverityWarning,
		Value:    func(c model.Configuration) float64 { return float64(c.DBBackupRetention) },
	},
	{
		Field:    "monthlyEmailVolume",
		Bounds:   nonNegativeCount(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return float64(c.MonthlyEmailVolume) },
	},

	{
		Field:    "cdnEgressRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     ownInfra,
		Value:    func(c model.Configuration) float64 { return c.CDNEgressRate },
	},
	{
		Field:    "videoCdnEgressRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     ownInfra,
		Value:    func(c model.Configuration) float64 { return c.VideoCDNEgressRate },
	},
	{
		Field:    "originEgressCost",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     ownInfra,
		Value:    func(c model.Configuration) float64 { return c.OriginEgressCost },
	},
	{
		Field:    "bandwidthCapacity",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     ownInfra,
		Value:    func(c model.Configuration) float64 { return c.BandwidthCapacity },
	},

	{
		Field:    "serverCount",
		Bounds:   Bounds{Min: one, Integer: true},
		Severity: SeverityWarning,
		When:     ownInfra,
		Value:    func(c model.Configuration) float64 { return float64(c.ServerCount) },
	},
	{
		Field:    "serverCost",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     owned,
		Value:    func(c model.Configuration) float64 { return c.ServerCost },
	},
	{
		Field:    "capEx",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     owned,
		Value:    func(c model.Configuration) float64 { return c.CapEx },
	},
	{
		Field:    "amortMonths",
		Bounds:   Bounds{Min: one, Integer: true},
		Severity: SeverityWarning,
		When:     ownInfra,
		Value:    func(c model.Configuration) float64 { return float64(c.AmortMonths) },
	},
	{
		Field:    "amortMonths",
		Bounds:   Bounds{Max: bound(120)},
		Severity: SeverityWarning,
		When:     ownInfra,
		Value:    func(c model.Configuration) float64 { return float64(c.AmortMonths) },
	},
	{
		Field:    "wattage",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     owned,
		Value:    func(c model.Configuration) float64 { return c.Wattage },
	},
	{
		Field:    "powerRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     owned,
		Value:    func(c model.Configuration) float64 { return c.PowerRate },
	},
	{
		Field:    "monthlyRentalCost",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     rented,
		Value:    func(c model.Configuration) float64 { return c.MonthlyRentalCost },
	},
	{
		Field:    "rackCost",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     colocated,
		Value:    func(c model.Configuration) float64 { return c.RackCost },
	},

	// Revenue assumptions
	{
		Field:    "revenue.averageDailyUniqueViewers",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.AverageDailyUniqueViewers },
	},
	{
		Field:    "revenue.averageViewingHoursPerViewer",
		Bounds:   Bounds{Min: zero, Max: hoursInDay},
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.AverageViewingHoursPerViewer },
	},
	{
		Field:    "revenue.adSpotsPerHour",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.AdSpotsPerHour },
	},
	{
		Field:    "revenue.adSpotsPerHour",
		Bounds:   Bounds{Max: bound(20)},
		Severity: SeverityWarning,
		Value:    func(c model.Configuration) float64 { return c.Revenue.AdSpotsPerHour },
	},
	{
		Field:    "revenue.cpmRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.CPMRate },
	},
	{
		Field:    "revenue.defaultFillRate",
		Bounds:   percentage(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return set(c.Revenue.DefaultFillRate) },
		Value:    func(c model.Configuration) float64 { return deref(c.Revenue.DefaultFillRate) },
	},
	{
		Field:    "revenue.peakTimeMultiplier",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return set(c.Revenue.PeakTimeMultiplier) },
		Value:    func(c model.Configuration) float64 { return deref(c.Revenue.PeakTimeMultiplier) },
	},
	{
		Field:    "revenue.seasonalMultiplier",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return set(c.Revenue.SeasonalMultiplier) },
		Value:    func(c model.Configuration) float64 { return deref(c.Revenue.SeasonalMultiplier) },
	},
	{
		Field:    "revenue.demographicMultiplier",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return set(c.Revenue.DemographicMultiplier) },
		Value:    func(c model.Configuration) float64 { return deref(c.Revenue.DemographicMultiplier) },
	},
	{
		Field:    "revenue.monthlyPaidBlocks",
		Bounds:   nonNegativeCount(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.MonthlyPaidBlocks },
	},
	{
		Field:    "revenue.ratePerBlock",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.RatePerBlock },
	},
	{
		Field:    "revenue.premiumSponsorshipCount",
		Bounds:   nonNegativeCount(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return c.Revenue.PremiumSponsorshipEnabled },
		Value:    func(c model.Configuration) float64 { return c.Revenue.PremiumSponsorshipCount },
	},
	{
		Field:    "revenue.premiumSponsorshipRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return c.Revenue.PremiumSponsorshipEnabled },
		Value:    func(c model.Configuration) float64 { return c.Revenue.PremiumSponsorshipRate },
	},
	{
		Field:    "revenue.monthlyVodViews",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.MonthlyVODViews },
	},
	{
		Field:    "revenue.adSpotsPerVodView",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.AdSpotsPerVODView },
	},
	{
		Field:    "revenue.vodCpmRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.Configuration) float64 { return c.Revenue.VODCPMRate },
	},
	{
		Field:    "revenue.vodSkipRate",
		Bounds:   fraction(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return set(c.Revenue.VODSkipRate) },
		Value:    func(c model.Configuration) float64 { return deref(c.Revenue.VODSkipRate) },
	},
	{
		Field:    "revenue.vodCompletionRate",
		Bounds:   fraction(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return set(c.Revenue.VODCompletionRate) },
		Value:    func(c model.Configuration) float64 { return deref(c.Revenue.VODCompletionRate) },
	},
	{
		Field:    "revenue.vodPremiumPlacementRate",
		Bounds:   fraction(),
		Severity: SeverityError,
		When:     func(c model.Configuration) bool { return set(c.Revenue.VODPremiumPlacementRate) },
		Value:    func(c model.Configuration) float64 { return deref(c.Revenue.VODPremiumPlacementRate) },
	},
}

// channelRules run once per entry in channels.
var channelRules = []ChannelRule{
	{
		Field:    "liveHours",
		Bounds:   Bounds{Min: zero, Max: hoursInDay},
		Severity: SeverityError,
		Value:    func(c model.ChannelStat) float64 { return c.LiveHours },
	},
	{
		Field:    "fillRate",
		Bounds:   percentage(),
		Severity: SeverityError,
		When:     func(c model.ChannelStat) bool { return set(c.FillRate) },
		Value:    func(c model.ChannelStat) float64 { return deref(c.FillRate) },
	},
	{
		Field:    "viewership",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.ChannelStat) float64 { return c.Viewership },
	},
	{
		Field:    "averageRetentionMinutes",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.ChannelStat) float64 { return c.AverageRetentionMinutes },
	},
	{
		Field:    "averageRetentionMinutes",
		Bounds:   Bounds{Max: bound(24 * 60)},
		Severity: SeverityWarning,
		Value:    func(c model.ChannelStat) float64 { return c.AverageRetentionMinutes },
	},
	{
		Field:    "adSpotsPerHour",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.ChannelStat) float64 { return c.AdSpotsPerHour },
	},
	{
		Field:    "cpmRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.ChannelStat) float64 { return c.CPMRate },
	},
	{
		Field:    "vodUniques",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.ChannelStat) float64 { return c.VODUniques },
	},
	{
		Field:    "vodWatchMin",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.ChannelStat) float64 { return c.VODWatchMin },
	},
}

// categoryRules run once per entry in vodCategories.
var categoryRules = []CategoryRule{
	{
		Field:    "monthlyViews",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.VODCategoryStat) float64 { return c.MonthlyViews },
	},
	{
		Field:    "averageWatchTimeMinutes",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.VODCategoryStat) float64 { return c.AverageWatchTimeMinutes },
	},
	{
		Field:    "adSpotsPerView",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.VODCategoryStat) float64 { return c.AdSpotsPerView },
	},
	{
		Field:    "cpmRate",
		Bounds:   nonNegative(),
		Severity: SeverityError,
		Value:    func(c model.VODCategoryStat) float64 { return c.CPMRate },
	},
	{
		Field:    "fillRate",
		Bounds:   percentage(),
		Severity: SeverityError,
		When:     func(c model.VODCategoryStat) bool { return set(c.FillRate) },
		Value:    func(c model.VODCategoryStat) float64 { return deref(c.FillRate) },
	},
}
