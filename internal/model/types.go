// Package model defines the estimator's Configuration aggregate, its
// documented defaults, and the derived Costs breakdown.
package model

// Configuration is the canonical description of a station's streaming setup.
// Engines take it by value and never mutate it.
type Configuration struct {
	// SchemaVersion is the persisted blob's schema version (semver).
	SchemaVersion string `json:"schemaVersion,omitempty"`

	// Live streaming
	Platform                 Platform        `json:"platform"`
	StreamEnabled            bool            `json:"streamEnabled"`
	ChannelCount             int             `json:"channelCount"`
	EncodingPreset           EncodingPreset  `json:"encodingPreset"`
	PeakConcurrentViewers    int             `json:"peakConcurrentViewers"`
	LiveDVREnabled           bool            `json:"liveDvrEnabled"`
	RecordingStorageLocation StorageLocation `json:"recordingStorageLocation"`
	Channels                 []ChannelStat   `json:"channels"`

	// VOD
	VODEnabled               bool              `json:"vodEnabled"`
	VODProvider              Provider          `json:"vodProvider"`
	HoursPerDayArchived      float64           `json:"hoursPerDayArchived"`
	RetentionWindow          int               `json:"retentionWindow"`
	PeakConcurrentVODViewers int               `json:"peakConcurrentVodViewers"`
	DeliveryRegion           DeliveryRegion    `json:"deliveryRegion"`
	VODCategories            []VODCategoryStat `json:"vodCategories"`

	// Back-catalog migration
	LegacyEnabled    bool     `json:"legacyEnabled"`
	BackCatalogHours float64  `json:"backCatalogHours"`
	LegacyProvider   Provider `json:"legacyProvider"`
	PreEncoded       bool     `json:"preEncoded"`

	// Backend
	DataStore            DataStore       `json:"dataStore"`
	DBBackupRetention    int             `json:"dbBackupRetention"`
	VideoStorageStrategy StorageStrategy `json:"videoStorageStrategy"`
	OutboundEmail        EmailProvider   `json:"outboundEmail"`
	MonthlyEmailVolume   int             `json:"monthlyEmailVolume"`

	// Delivery modifiers (self-hosted / hybrid)
	CDNPlan            CDNPlan          `json:"cdnPlan"`
	CDNEgressRate      float64          `json:"cdnEgressRate"`
	VideoCDNProvider   VideoCDNProvider `json:"videoCdnProvider"`
	VideoCDNEgressRate float64          `json:"videoCdnEgressRate"`

	// Hardware / hosting
	ServerType           string              `json:"serverType"`
	ServerCount          int                 `json:"serverCount"`
	ServerCost           float64             `json:"serverCost"`
	HardwareAvailable    bool                `json:"hardwareAvailable"`
	HardwareMode         HardwareMode        `json:"hardwareMode"`
	CapEx                float64             `json:"capEx"`
	AmortMonths          int                 `json:"amortMonths"`
	Wattage              float64             `json:"wattage"`
	PowerRate            float64             `json:"powerRate"`
	MonthlyRentalCost    float64             `json:"monthlyRentalCost"`
	NetworkInterface     NetworkInterface    `json:"networkInterface"`
	BandwidthCapacity    float64             `json:"bandwidthCapacity"`
	TranscodingEngine    TranscodingEngine   `json:"transcodingEngine"`
	CloudProvider        Provider            `json:"cloudProvider"`
	OriginEgressCost     float64             `json:"originEgressCost"`
	HybridRedundancyMode RedundancyMode      `json:"hybridRedundancyMode"`
	RackHostingLocation  RackHostingLocation `json:"rackHostingLocation"`
	RackCost             float64             `json:"rackCost"`
	NetworkSwitchNeeded  bool                `json:"networkSwitchNeeded"`
	MacMiniNeeded        bool                `json:"macMiniNeeded"`

	// Analytics
	ViewerAnalytics string `json:"viewerAnalytics"`
	SiteAnalytics   string `json:"siteAnalytics"`

	Revenue RevenueAssumptions `json:"revenue"`
}

// ChannelStat is the per-channel audience and ad inventory record.
type ChannelStat struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	Viewership              float64  `json:"viewership"`
	AverageRetentionMinutes float64  `json:"averageRetentionMinutes"`
	AdSpotsPerHour          float64  `json:"adSpotsPerHour"`
	CPMRate                 float64  `json:"cpmRate"`
	FillRate                *float64 `json:"fillRate,omitempty"`
	LiveHours               float64  `json:"liveHours"`
	VODUniques              float64  `json:"vodUniques"`
	VODWatchMin             float64  `json:"vodWatchMin"`
	Enabled                 *bool    `json:"enabled,omitempty"`
}

// IsEnabled resolves the optional Enabled flag (default true).
func (c ChannelStat) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// VODCategoryStat is the per-category VOD ad inventory record.
type VODCategoryStat struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	MonthlyViews            float64  `json:"monthlyViews"`
	AverageWatchTimeMinutes float64  `json:"averageWatchTimeMinutes"`
	AdSpotsPerView          float64  `json:"adSpotsPerView"`
	CPMRate                 float64  `json:"cpmRate"`
	FillRate                *float64 `json:"fillRate,omitempty"`
}

// RevenueAssumptions holds the toggles and rates for the three revenue streams.
// Pointer fields are optional; see DefaultFillRate and the multiplier defaults.
// They persist as null when unset so a cleared value survives a reload.
type RevenueAssumptions struct {
	// Live-ad stream. The aggregate fields are used when no channel detail exists.
	LiveAdsEnabled               bool     `json:"liveAdsEnabled"`
	AverageDailyUniqueViewers    float64  `json:"averageDailyUniqueViewers"`
	AverageViewingHoursPerViewer float64  `json:"averageViewingHoursPerViewer"`
	AdSpotsPerHour               float64  `json:"adSpotsPerHour"`
	CPMRate                      float64  `json:"cpmRate"`
	DefaultFillRate              *float64 `json:"defaultFillRate"`
	PeakTimeMultiplier           *float64 `json:"peakTimeMultiplier"`
	SeasonalMultiplier           *float64 `json:"seasonalMultiplier"`
	DemographicMultiplier        *float64 `json:"demographicMultiplier"`

	// Paid-programming stream.
	PaidProgrammingEnabled    bool    `json:"paidProgrammingEnabled"`
	MonthlyPaidBlocks         float64 `json:"monthlyPaidBlocks"`
	RatePerBlock              float64 `json:"ratePerBlock"`
	PremiumSponsorshipEnabled bool    `json:"premiumSponsorshipEnabled"`
	PremiumSponsorshipCount   float64 `json:"premiumSponsorshipCount"`
	PremiumSponsorshipRate    float64 `json:"premiumSponsorshipRate"`

	// VOD-ad stream. Rates below are fractions in [0,1].
	VODAdsEnabled           bool     `json:"vodAdsEnabled"`
	MonthlyVODViews         float64  `json:"monthlyVodViews"`
	AdSpotsPerVODView       float64  `json:"adSpotsPerVodView"`
	VODCPMRate              float64  `json:"vodCpmRate"`
	VODSkipRate             *float64 `json:"vodSkipRate"`
	VODCompletionRate       *float64 `json:"vodCompletionRate"`
	VODPremiumPlacementRate *float64 `json:"vodPremiumPlacementRate"`
}

// Costs is the monthly dollar breakdown. Each bucket is rounded to cents.
type Costs struct {
	Encoding float64 `json:"encoding"`
	Storage  float64 `json:"storage"`
	Delivery float64 `json:"delivery"`
	Other    float64 `json:"other"`
}

// Total sums the four buckets.
func (c Costs) Total() float64 {
	return c.Encoding + c.Storage + c.Delivery + c.Other
}

// Float returns a pointer to v, for populating optional fields.
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v, for populating optional fields.
func Bool(v bool) *bool {
	return &v
}
