package pricing

// rateCard mirrors the embedded rates.yaml document.
type rateCard struct {
	Version         string `yaml:"version"`
	PublicationDate string `yaml:"publication_date"`
	Currency        string `yaml:"currency"`

	EncodingPerMinute          map[string]map[string]float64 `yaml:"encoding_per_minute"`          // provider -> preset -> rate
	SelfHostedComputePerHour   map[string]map[string]float64 `yaml:"self_hosted_compute_per_hour"` // engine -> preset -> rate
	StoragePerMinute           map[string]float64            `yaml:"storage_per_minute"`
	SelfHostedStoragePerMinute map[string]float64            `yaml:"self_hosted_storage_per_minute"`
	DeliveryPerMinute          map[string]float64            `yaml:"delivery_per_minute"`
	OriginEgressPerGB          float64                       `yaml:"origin_egress_per_gb"`
	CDNPlans                   map[string]CDNPlanRate        `yaml:"cdn_plans"`
	VideoCDNEgressPerGB        map[string]float64            `yaml:"video_cdn_egress_per_gb"`
	RegionMultipliers          map[string]float64            `yaml:"region_multipliers"`
	DataStores                 map[string]float64            `yaml:"data_stores"`
	BackupRetentionTiers       []retentionTier               `yaml:"backup_retention_tiers"`
	Email                      emailRates                    `yaml:"email"`
	ViewerAnalytics            map[string]analyticsRate      `yaml:"viewer_analytics"`
	SiteAnalytics              map[string]float64            `yaml:"site_analytics"`
	HardwareAddons             map[string]float64            `yaml:"hardware_addons"`
}

// CDNPlanRate is a live CDN subscription: a flat fee plus per-GB egress.
type CDNPlanRate struct {
	Monthly     float64 `yaml:"monthly"`
	EgressPerGB float64 `yaml:"egress_per_gb"`
}

// retentionTier prices database backups up to (and including) UpToDays.
type retentionTier struct {
	UpToDays int     `yaml:"up_to_days"`
	Monthly  float64 `yaml:"monthly"`
}

type emailRates struct {
	// VolumeUnit is the message count covered by one base fee.
	VolumeUnit float64            `yaml:"volume_unit"`
	BaseFees   map[string]float64 `yaml:"base_fees"`
}

// analyticsRate is a flat monthly fee waived on the platforms it is native to.
type analyticsRate struct {
	Monthly  float64  `yaml:"monthly"`
	NativeTo []string `yaml:"native_to"`
}

// Metadata identifies the loaded rate card for traceability.
type Metadata struct {
	// Version is the rate card revision (e.g., "2026.09.1").
	Version string
	// PublicationDate is when the rates were published.
	PublicationDate string
	// Currency is the ISO currency code.
	Currency string
}

// Hardware add-on identifiers.
const (
	AddonMacMini       = "mac-mini"
	AddonNetworkSwitch = "network-switch"
)
