package cost

// legacyAmortMonths spreads the one-time back-catalog re-encode over a year.
const legacyAmortMonths = 12

// megabitsPerGB converts a bitrate in Mbps held for one second into GB.
const megabitsPerGB = 8000.0

// Bucket names the Costs field a line item rolls up into.
type Bucket string

const (
	BucketEncoding Bucket = "encoding"
	BucketStorage  Bucket = "storage"
	BucketDelivery Bucket = "delivery"
	BucketOther    Bucket = "other"
)

// Line item identifiers.
const (
	ItemLiveEncoding    = "live-encoding"
	ItemLegacyReencode  = "legacy-reencode"
	ItemVODArchive      = "vod-archive"
	ItemLegacyArchive   = "legacy-archive"
	ItemLiveDelivery    = "live-delivery"
	ItemVODDelivery     = "vod-delivery"
	ItemDataStore       = "data-store"
	ItemDBBackups       = "db-backups"
	ItemEmail           = "email"
	ItemCDNPlan         = "cdn-plan"
	ItemHosting         = "hosting"
	ItemPower           = "power"
	ItemMacMini         = "mac-mini"
	ItemNetworkSwitch   = "network-switch"
	ItemColocation      = "colocation"
	ItemViewerAnalytics = "viewer-analytics"
	ItemSiteAnalytics   = "site-analytics"
)

// rateNotFoundTemplate is the log message for a missing rate card entry.
// Example: fmt.Sprintf(rateNotFoundTemplate, "encoding rate") -> "encoding rate not found in rate card"
const rateNotFoundTemplate = "%s not found in rate card"
