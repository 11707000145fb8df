package validation

import (
	"fmt"
	"slices"

	"github.com/rshade/streamcost-estimator/internal/model"
)

// enumRule flags a value outside its enumeration. Unknown values would price
// at zero, so they are errors.
type enumRule struct {
	field string
	value func(model.Configuration) string
	valid func(model.Configuration) bool
}

var enumRules = []enumRule{
	{
		field: "platform",
		value: func(c model.Configuration) string { return string(c.Platform) },
		valid: func(c model.Configuration) bool { return c.Platform.IsValid() },
	},
	{
		field: "encodingPreset",
		value: func(c model.Configuration) string { return string(c.EncodingPreset) },
		valid: func(c model.Configuration) bool { return c.EncodingPreset.IsValid() },
	},
	{
		field: "recordingStorageLocation",
		value: func(c model.Configuration) string { return string(c.RecordingStorageLocation) },
		valid: func(c model.Configuration) bool { return c.RecordingStorageLocation.IsValid() },
	},
	{
		field: "vodProvider",
		value: func(c model.Configuration) string { return string(c.VODProvider) },
		valid: func(c model.Configuration) bool { return c.ResolvedVODProvider() != "" },
	},
	{
		field: "legacyProvider",
		value: func(c model.Configuration) string { return string(c.LegacyProvider) },
		valid: func(c model.Configuration) bool { return c.ResolvedLegacyProvider() != "" },
	},
	{
		field: "deliveryRegion",
		value: func(c model.Configuration) string { return string(c.DeliveryRegion) },
		valid: func(c model.Configuration) bool { return c.DeliveryRegion.IsValid() },
	},
	{
		field: "dataStore",
		value: func(c model.Configuration) string { return string(c.DataStore) },
		valid: func(c model.Configuration) bool { return c.DataStore.IsValid() },
	},
	{
		field: "videoStorageStrategy",
		value: func(c model.Configuration) string { return string(c.VideoStorageStrategy) },
		valid: func(c model.Configuration) bool { return c.VideoStorageStrategy.IsValid() },
	},
	{
		field: "outboundEmail",
		value: func(c model.Configuration) string { return string(c.OutboundEmail) },
		valid: func(c model.Configuration) bool { return c.OutboundEmail.IsValid() },
	},
	{
		field: "cdnPlan",
		value: func(c model.Configuration) string { return string(c.CDNPlan) },
		valid: func(c model.Configuration) bool { return c.CDNPlan.IsValid() },
	},
	{
		field: "videoCdnProvider",
		value: func(c model.Configuration) string { return string(c.VideoCDNProvider) },
		valid: func(c model.Configuration) bool { return c.VideoCDNProvider.IsValid() },
	},
	{
		field: "hardwareMode",
		value: func(c model.Configuration) string { return string(c.HardwareMode) },
		valid: func(c model.Configuration) bool { return c.HardwareMode.IsValid() },
	},
	{
		field: "networkInterface",
		value: func(c model.Configuration) string { return string(c.NetworkInterface) },
		valid: func(c model.Configuration) bool { return c.NetworkInterface.IsValid() },
	},
	{
		field: "transcodingEngine",
		value: func(c model.Configuration) string { return string(c.TranscodingEngine) },
		valid: func(c model.Configuration) bool { return c.TranscodingEngine.IsValid() },
	},
	{
		field: "hybridRedundancyMode",
		value: func(c model.Configuration) string { return string(c.HybridRedundancyMode) },
		valid: func(c model.Configuration) bool { return c.HybridRedundancyMode.IsValid() },
	},
	{
		field: "rackHostingLocation",
		value: func(c model.Configuration) string { return string(c.RackHostingLocation) },
		valid: func(c model.Configuration) bool { return c.RackHostingLocation.IsValid() },
	},
	{
		field: "viewerAnalytics",
		value: func(c model.Configuration) string { return c.ViewerAnalytics },
		valid: func(c model.Configuration) bool { return slices.Contains(model.ViewerAnalyticsOptions, c.ViewerAnalytics) },
	},
	{
		field: "siteAnalytics",
		value: func(c model.Configuration) string { return c.SiteAnalytics },
		valid: func(c model.Configuration) bool { return slices.Contains(model.SiteAnalyticsOptions, c.SiteAnalytics) },
	},
}

// checkEnums validates enumerations after defaults are applied, so empty
// values never fail. cloudProvider must be a managed platform when set.
func checkEnums(cfg model.Configuration) []Result {
	norm := cfg.Normalized()

	var results []Result
	for _, rule := range enumRules {
		if rule.valid(norm) {
			continue
		}
		results = append(results, Result{
			Field:    rule.field,
			Message:  fmt.Sprintf("%s %q is not a recognized option", rule.field, rule.value(norm)),
			Severity: SeverityError,
		})
	}

	if cfg.CloudProvider != "" && !cfg.CloudProvider.IsManaged() {
		results = append(results, Result{
			Field:    "cloudProvider",
			Message:  fmt.Sprintf("cloudProvider %q must be a managed platform", cfg.CloudProvider),
			Severity: SeverityError,
		})
	}
	return results
}
