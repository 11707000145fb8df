package model

import "github.com/google/uuid"

const (
	// DaysPerMonth is the billing month used by every monthly projection.
	DaysPerMonth = 30.0

	// HoursPerMonth is 24 hours a day over a 30-day month.
	HoursPerMonth = 24 * DaysPerMonth

	// MinutesPerMonth is the monthly live minutes of one 24/7 channel.
	MinutesPerMonth = HoursPerMonth * 60

	// DefaultAmortMonths applies when amortMonths is missing or not positive.
	DefaultAmortMonths = 36

	// DefaultFillRate is the station-wide fill rate (percent) when the
	// assumptions leave defaultFillRate unset.
	DefaultFillRate = 75.0

	// CurrentSchemaVersion is written with every persisted Configuration.
	CurrentSchemaVersion = "1.2.0"
)

// idNamespace keeps compiled-in ids stable across runs.
var idNamespace = uuid.MustParse("6f1c0d2e-8a57-4f0b-9a43-5b2f1d9e7c10")

// StableID derives a deterministic id for a compiled-in record.
func StableID(kind, name string) string {
	return uuid.NewSHA1(idNamespace, []byte(kind+"/"+name)).String()
}

// NewID returns a fresh random id for records created at runtime.
func NewID() string {
	return uuid.NewString()
}

// DefaultChannels is the compiled-in channel lineup.
func DefaultChannels() []ChannelStat {
	return []ChannelStat{
		{
			ID:                      StableID("channel", "news"),
			Name:                    "News 24",
			Viewership:              2500,
			AverageRetentionMinutes: 42,
			AdSpotsPerHour:          8,
			CPMRate:                 14,
			LiveHours:               18,
			VODUniques:              900,
			VODWatchMin:             11,
		},
		{
			ID:                      StableID("channel", "community"),
			Name:                    "Community Access",
			Viewership:              800,
			AverageRetentionMinutes: 25,
			AdSpotsPerHour:          4,
			CPMRate:                 9,
			LiveHours:               8,
			VODUniques:              300,
			VODWatchMin:             7,
		},
		{
			ID:                      StableID("channel", "sports"),
			Name:                    "Sports Extra",
			Viewership:              1600,
			AverageRetentionMinutes: 55,
			AdSpotsPerHour:          10,
			CPMRate:                 22,
			FillRate:                Float(85),
			LiveHours:               6,
			VODUniques:              1200,
			VODWatchMin:             16,
		},
	}
}

// DefaultVODCategories is the compiled-in VOD category list.
func DefaultVODCategories() []VODCategoryStat {
	return []VODCategoryStat{
		{
			ID:                      StableID("vod", "local-news"),
			Name:                    "Local News",
			MonthlyViews:            12000,
			AverageWatchTimeMinutes: 6,
			AdSpotsPerView:          1,
			CPMRate:                 16,
		},
		{
			ID:                      StableID("vod", "high-school-sports"),
			Name:                    "High School Sports",
			MonthlyViews:            7000,
			AverageWatchTimeMinutes: 38,
			AdSpotsPerView:          3,
			CPMRate:                 20,
			FillRate:                Float(80),
		},
		{
			ID:                      StableID("vod", "documentaries"),
			Name:                    "Documentaries",
			MonthlyViews:            2500,
			AverageWatchTimeMinutes: 44,
			AdSpotsPerView:          2,
			CPMRate:                 24,
		},
	}
}

// DefaultRevenueAssumptions is the compiled-in revenue model.
func DefaultRevenueAssumptions() RevenueAssumptions {
	return RevenueAssumptions{
		LiveAdsEnabled:               true,
		AverageDailyUniqueViewers:    5000,
		AverageViewingHoursPerViewer: 1.5,
		AdSpotsPerHour:               6,
		CPMRate:                      12,
		DefaultFillRate:              Float(DefaultFillRate),
		PeakTimeMultiplier:           Float(1),
		SeasonalMultiplier:           Float(1),
		DemographicMultiplier:        Float(1),

		PaidProgrammingEnabled:    true,
		MonthlyPaidBlocks:         20,
		RatePerBlock:              250,
		PremiumSponsorshipEnabled: false,
		PremiumSponsorshipCount:   2,
		PremiumSponsorshipRate:    1500,

		VODAdsEnabled:           true,
		MonthlyVODViews:         20000,
		AdSpotsPerVODView:       2,
		VODCPMRate:              18,
		VODSkipRate:             Float(0.25),
		VODCompletionRate:       Float(0.8),
		VODPremiumPlacementRate: Float(0.1),
	}
}

// DefaultConfiguration is the merged compiled-in Configuration used at
// startup and whenever persisted state cannot be read.
func DefaultConfiguration() Configuration {
	channels := DefaultChannels()
	return Configuration{
		SchemaVersion: CurrentSchemaVersion,

		Platform:                 PlatformManagedA,
		StreamEnabled:            true,
		ChannelCount:             len(channels),
		EncodingPreset:           Preset1080pTriLadder,
		PeakConcurrentViewers:    150,
		LiveDVREnabled:           true,
		RecordingStorageLocation: StorageCloud,
		Channels:                 channels,

		VODEnabled:               true,
		VODProvider:              ProviderSameAsLive,
		HoursPerDayArchived:      4,
		RetentionWindow:          30,
		PeakConcurrentVODViewers: 50,
		DeliveryRegion:           RegionNorthAmerica,
		VODCategories:            DefaultVODCategories(),

		LegacyEnabled:    false,
		BackCatalogHours: 500,
		LegacyProvider:   ProviderSameAsVOD,
		PreEncoded:       false,

		DataStore:            DataStoreManagedPostgres,
		DBBackupRetention:    7,
		VideoStorageStrategy: StrategyObjectStorage,
		OutboundEmail:        EmailTransactionalAPI,
		MonthlyEmailVolume:   2000,

		CDNPlan:          CDNPlanNone,
		VideoCDNProvider: VideoCDNNone,

		ServerCount:          1,
		HardwareMode:         HardwareOwn,
		AmortMonths:          DefaultAmortMonths,
		Wattage:              250,
		PowerRate:            0.14,
		NetworkInterface:     Interface1GbE,
		TranscodingEngine:    EngineSoftware,
		CloudProvider:        ProviderManagedA,
		HybridRedundancyMode: RedundancyNone,
		RackHostingLocation:  RackOnPremises,

		ViewerAnalytics: ViewerAnalyticsManagedAInsights,
		SiteAnalytics:   SiteAnalyticsPrivacyFirst,

		Revenue: DefaultRevenueAssumptions(),
	}
}

// Normalized returns a copy of c with missing fields replaced by their
// documented defaults. Unrecognized non-empty enum values are kept as-is so
// validation can report them; engines treat them as zero-rate lookups.
func (c Configuration) Normalized() Configuration {
	if c.Platform == "" {
		c.Platform = PlatformManagedA
	}
	if c.EncodingPreset == "" {
		c.EncodingPreset = Preset1080pTriLadder
	}
	if c.VODProvider == "" {
		c.VODProvider = ProviderSameAsLive
	}
	if c.LegacyProvider == "" {
		c.LegacyProvider = ProviderSameAsVOD
	}
	if !c.CloudProvider.IsManaged() {
		c.CloudProvider = ProviderManagedA
	}
	if c.RecordingStorageLocation == "" {
		c.RecordingStorageLocation = StorageCloud
	}
	if c.DeliveryRegion == "" {
		c.DeliveryRegion = RegionNorthAmerica
	}
	if c.DataStore == "" {
		c.DataStore = DataStoreNone
	}
	if c.VideoStorageStrategy == "" {
		c.VideoStorageStrategy = StrategyLocalDisk
	}
	if c.OutboundEmail == "" {
		c.OutboundEmail = EmailNone
	}
	if c.CDNPlan == "" {
		c.CDNPlan = CDNPlanNone
	}
	if c.VideoCDNProvider == "" {
		c.VideoCDNProvider = VideoCDNNone
	}
	if c.HardwareMode == "" {
		c.HardwareMode = HardwareOwn
	}
	if c.AmortMonths <= 0 {
		c.AmortMonths = DefaultAmortMonths
	}
	if c.ServerCount <= 0 {
		c.ServerCount = 1
	}
	if c.NetworkInterface == "" {
		c.NetworkInterface = Interface1GbE
	}
	if c.TranscodingEngine == "" {
		c.TranscodingEngine = EngineSoftware
	}
	if c.HybridRedundancyMode == "" {
		c.HybridRedundancyMode = RedundancyNone
	}
	if c.RackHostingLocation == "" {
		c.RackHostingLocation = RackOnPremises
	}
	if c.ViewerAnalytics == "" {
		c.ViewerAnalytics = AnalyticsNone
	}
	if c.SiteAnalytics == "" {
		c.SiteAnalytics = AnalyticsNone
	}
	return c
}

// EffectiveChannelCount is the number of channels that incur cost: the
// enabled entries of Channels when detail exists, otherwise ChannelCount.
func (c Configuration) EffectiveChannelCount() int {
	if len(c.Channels) == 0 {
		if c.ChannelCount < 0 {
			return 0
		}
		return c.ChannelCount
	}
	n := 0
	for _, ch := range c.Channels {
		if ch.IsEnabled() {
			n++
		}
	}
	return n
}
