package model

// Platform selects which pricing table drives live encoding and delivery.
type Platform string

const (
	PlatformManagedA   Platform = "managed-A"
	PlatformManagedB   Platform = "managed-B"
	PlatformSelfHosted Platform = "self-hosted"
	PlatformHybrid     Platform = "hybrid"
)

// IsValid reports whether p is a known platform.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformManagedA, PlatformManagedB, PlatformSelfHosted, PlatformHybrid:
		return true
	}
	return false
}

// IsManaged reports whether p is a managed cloud encoder.
func (p Platform) IsManaged() bool {
	return p == PlatformManagedA || p == PlatformManagedB
}

// RunsOwnInfrastructure reports whether the station operates its own servers.
func (p Platform) RunsOwnInfrastructure() bool {
	return p == PlatformSelfHosted || p == PlatformHybrid
}

// Provider names a concrete pricing provider or a "same-as" chain marker.
type Provider string

const (
	ProviderManagedA   Provider = Provider(PlatformManagedA)
	ProviderManagedB   Provider = Provider(PlatformManagedB)
	ProviderSelfHosted Provider = Provider(PlatformSelfHosted)
	ProviderHybrid     Provider = Provider(PlatformHybrid)
	ProviderSameAsLive Provider = "same-as-live"
	ProviderSameAsVOD  Provider = "same-as-vod"
)

// IsConcrete reports whether p names a real provider rather than a chain marker.
func (p Provider) IsConcrete() bool {
	return Platform(p).IsValid()
}

// IsManaged reports whether p is a managed cloud provider.
func (p Provider) IsManaged() bool {
	return Platform(p).IsManaged()
}

// RunsOwnInfrastructure reports whether content handled by p lives on station hardware.
func (p Provider) RunsOwnInfrastructure() bool {
	return Platform(p).RunsOwnInfrastructure()
}

// EncodingPreset names a resolution/ladder combination.
type EncodingPreset string

const (
	Preset720pSingle     EncodingPreset = "720p-single"
	Preset1080pSingle    EncodingPreset = "1080p-single"
	Preset1080pTriLadder EncodingPreset = "1080p-tri-ladder"
	Preset2160pSingle    EncodingPreset = "2160p-single"
	Preset2160pTriLadder EncodingPreset = "2160p-tri-ladder"
)

// PresetProfile describes the output of an encoding preset.
type PresetProfile struct {
	// DeliveryBitrateMbps is the average bitrate a viewer pulls.
	DeliveryBitrateMbps float64
	// UHD marks 2160p presets, which use the larger archive footprint.
	UHD bool
	// Renditions is the number of simultaneous ladder outputs.
	Renditions int
}

var presetProfiles = map[EncodingPreset]PresetProfile{
	Preset720pSingle:     {DeliveryBitrateMbps: 3.0, UHD: false, Renditions: 1},
	Preset1080pSingle:    {DeliveryBitrateMbps: 5.0, UHD: false, Renditions: 1},
	Preset1080pTriLadder: {DeliveryBitrateMbps: 4.5, UHD: false, Renditions: 3},
	Preset2160pSingle:    {DeliveryBitrateMbps: 16.0, UHD: true, Renditions: 1},
	Preset2160pTriLadder: {DeliveryBitrateMbps: 12.0, UHD: true, Renditions: 3},
}

// Profile returns the preset's output profile. Returns (zero, false) for unknown presets.
func (e EncodingPreset) Profile() (PresetProfile, bool) {
	p, ok := presetProfiles[e]
	return p, ok
}

// IsValid reports whether e is a known preset.
func (e EncodingPreset) IsValid() bool {
	_, ok := presetProfiles[e]
	return ok
}

// NetworkInterface is the server's uplink.
type NetworkInterface string

const (
	Interface1GbE  NetworkInterface = "1gbe"
	Interface10GbE NetworkInterface = "10gbe"
	Interface25GbE NetworkInterface = "25gbe"
)

// CapacityMbps returns the nominal interface capacity. Returns (0, false) for unknown interfaces.
func (n NetworkInterface) CapacityMbps() (float64, bool) {
	switch n {
	case Interface1GbE:
		return 1000, true
	case Interface10GbE:
		return 10000, true
	case Interface25GbE:
		return 25000, true
	}
	return 0, false
}

// IsValid reports whether n is a known interface.
func (n NetworkInterface) IsValid() bool {
	_, ok := n.CapacityMbps()
	return ok
}

// HardwareMode is how self-hosted servers are acquired.
type HardwareMode string

const (
	HardwareOwn  HardwareMode = "own"
	HardwareRent HardwareMode = "rent"
)

// IsValid reports whether m is a known hardware mode.
func (m HardwareMode) IsValid() bool {
	return m == HardwareOwn || m == HardwareRent
}

// TranscodingEngine is the encoder used on station hardware.
type TranscodingEngine string

const (
	EngineSoftware     TranscodingEngine = "software"
	EngineNVENC        TranscodingEngine = "nvenc"
	EngineQuickSync    TranscodingEngine = "quicksync"
	EngineVideoToolbox TranscodingEngine = "videotoolbox"
)

// IsValid reports whether t is a known transcoding engine.
func (t TranscodingEngine) IsValid() bool {
	switch t {
	case EngineSoftware, EngineNVENC, EngineQuickSync, EngineVideoToolbox:
		return true
	}
	return false
}

// PrefersSpecializedHardware reports whether t needs hardware encoders.
func (t TranscodingEngine) PrefersSpecializedHardware() bool {
	return t.IsValid() && t != EngineSoftware
}

// StorageLocation is where live DVR recordings are kept.
type StorageLocation string

const (
	StorageCloud StorageLocation = "cloud"
	StorageLocal StorageLocation = "local"
)

// IsValid reports whether s is a known storage location.
func (s StorageLocation) IsValid() bool {
	return s == StorageCloud || s == StorageLocal
}

// DeliveryRegion scales delivery pricing by audience geography.
type DeliveryRegion string

const (
	RegionNorthAmerica DeliveryRegion = "north-america"
	RegionEurope       DeliveryRegion = "europe"
	RegionAsiaPacific  DeliveryRegion = "asia-pacific"
	RegionGlobal       DeliveryRegion = "global"
)

// IsValid reports whether r is a known region.
func (r DeliveryRegion) IsValid() bool {
	switch r {
	case RegionNorthAmerica, RegionEurope, RegionAsiaPacific, RegionGlobal:
		return true
	}
	return false
}

// DataStore is the backend database tier.
type DataStore string

const (
	DataStoreNone              DataStore = "none"
	DataStoreSQLite            DataStore = "sqlite"
	DataStoreManagedPostgres   DataStore = "managed-postgres"
	DataStoreManagedPostgresHA DataStore = "managed-postgres-ha"
)

// IsValid reports whether d is a known data store.
func (d DataStore) IsValid() bool {
	switch d {
	case DataStoreNone, DataStoreSQLite, DataStoreManagedPostgres, DataStoreManagedPostgresHA:
		return true
	}
	return false
}

// StorageStrategy selects how self-hosted video is stored.
type StorageStrategy string

const (
	StrategyLocalDisk     StorageStrategy = "local-disk"
	StrategyObjectStorage StorageStrategy = "object-storage"
	StrategyTieredArchive StorageStrategy = "tiered-archive"
)

// IsValid reports whether s is a known storage strategy.
func (s StorageStrategy) IsValid() bool {
	switch s {
	case StrategyLocalDisk, StrategyObjectStorage, StrategyTieredArchive:
		return true
	}
	return false
}

// EmailProvider is the outbound email service.
type EmailProvider string

const (
	EmailNone             EmailProvider = "none"
	EmailSMTPRelay        EmailProvider = "smtp-relay"
	EmailTransactionalAPI EmailProvider = "transactional-api"
)

// IsValid reports whether e is a known email provider.
func (e EmailProvider) IsValid() bool {
	switch e {
	case EmailNone, EmailSMTPRelay, EmailTransactionalAPI:
		return true
	}
	return false
}

// CDNPlan is the live CDN subscription.
type CDNPlan string

const (
	CDNPlanNone     CDNPlan = "none"
	CDNPlanStarter  CDNPlan = "starter"
	CDNPlanPro      CDNPlan = "pro"
	CDNPlanBusiness CDNPlan = "business"
)

// IsValid reports whether c is a known CDN plan.
func (c CDNPlan) IsValid() bool {
	switch c {
	case CDNPlanNone, CDNPlanStarter, CDNPlanPro, CDNPlanBusiness:
		return true
	}
	return false
}

// VideoCDNProvider is the CDN in front of self-hosted VOD.
type VideoCDNProvider string

const (
	VideoCDNNone       VideoCDNProvider = "none"
	VideoCDNBunny      VideoCDNProvider = "bunny"
	VideoCDNCloudFront VideoCDNProvider = "cloudfront"
	VideoCDNFastly     VideoCDNProvider = "fastly"
)

// IsValid reports whether v is a known video CDN.
func (v VideoCDNProvider) IsValid() bool {
	switch v {
	case VideoCDNNone, VideoCDNBunny, VideoCDNCloudFront, VideoCDNFastly:
		return true
	}
	return false
}

// RackHostingLocation is where station servers are racked.
type RackHostingLocation string

const (
	RackOnPremises RackHostingLocation = "on-premises"
	RackColocation RackHostingLocation = "colocation"
)

// IsValid reports whether r is a known rack location.
func (r RackHostingLocation) IsValid() bool {
	return r == RackOnPremises || r == RackColocation
}

// RedundancyMode is the failover arrangement for station servers.
type RedundancyMode string

const (
	RedundancyNone          RedundancyMode = "none"
	RedundancyActivePassive RedundancyMode = "active-passive"
	RedundancyActiveActive  RedundancyMode = "active-active"
)

// IsValid reports whether r is a known redundancy mode.
func (r RedundancyMode) IsValid() bool {
	switch r {
	case RedundancyNone, RedundancyActivePassive, RedundancyActiveActive:
		return true
	}
	return false
}

// ServersRequired is the number of servers the mode implies.
func (r RedundancyMode) ServersRequired() int {
	if r == RedundancyActivePassive || r == RedundancyActiveActive {
		return 2
	}
	return 1
}

// Analytics option identifiers. Viewer analytics may be native to a managed platform.
const (
	AnalyticsNone = "none"

	ViewerAnalyticsManagedAInsights  = "managed-A-insights"
	ViewerAnalyticsManagedBAnalytics = "managed-B-analytics"
	ViewerAnalyticsOpenSourceStack   = "open-source-stack"
	ViewerAnalyticsEnterpriseQoE     = "enterprise-qoe"

	SiteAnalyticsPrivacyFirst = "privacy-first"
	SiteAnalyticsSelfHosted   = "self-hosted"
	SiteAnalyticsEnterprise   = "enterprise"
)

// ViewerAnalyticsOptions lists the known viewer analytics options.
var ViewerAnalyticsOptions = []string{
	AnalyticsNone,
	ViewerAnalyticsManagedAInsights,
	ViewerAnalyticsManagedBAnalytics,
	ViewerAnalyticsOpenSourceStack,
	ViewerAnalyticsEnterpriseQoE,
}

// SiteAnalyticsOptions lists the known site analytics options.
var SiteAnalyticsOptions = []string{
	AnalyticsNone,
	SiteAnalyticsPrivacyFirst,
	SiteAnalyticsSelfHosted,
	SiteAnalyticsEnterprise,
}
