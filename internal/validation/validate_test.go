package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamcost-estimator/internal/model"
)

func errorsOf(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Severity == SeverityError {
			out = append(out, r)
		}
	}
	return out
}

func findField(results []Result, field string) (Result, bool) {
	for _, r := range results {
		if r.Field == field {
			return r, true
		}
	}
	return Result{}, false
}

func TestValidate_DefaultConfigurationIsClean(t *testing.T) {
	results := Validate(model.DefaultConfiguration())
	assert.Empty(t, results)
	assert.False(t, HasErrors(results))
}

func TestValidate_ZeroChannelCount(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.StreamEnabled = true
	cfg.ChannelCount = 0

	results := Validate(cfg)
	errs := errorsOf(results)

	require.Len(t, errs, 1)
	assert.Equal(t, "channelCount", errs[0].Field)
	assert.Equal(t, "channelCount must be at least 1", errs[0].Message)
	assert.True(t, HasErrors(results))
}

func TestValidate_ChannelCountIgnoredWhenStreamingOff(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.StreamEnabled = false
	cfg.ChannelCount = 0

	results := Validate(cfg)
	assert.False(t, HasErrors(results))
	_, found := findField(results, "channelCount")
	assert.False(t, found)
}

func TestValidate_ConfigRules(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*model.Configuration)
		field    string
		severity Severity
	}{
		{
			name:     "archive hours beyond a day",
			modify:   func(c *model.Configuration) { c.HoursPerDayArchived = 25 },
			field:    "hoursPerDayArchived",
			severity: SeverityError,
		},
		{
			name:     "zero retention while archiving",
			modify:   func(c *model.Configuration) { c.RetentionWindow = 0 },
			field:    "retentionWindow",
			severity: SeverityError,
		},
		{
			name:     "very long retention",
			modify:   func(c *model.Configuration) { c.RetentionWindow = 5000 },
			field:    "retentionWindow",
			severity: SeverityWarning,
		},
		{
			name:     "negative peak viewers",
			modify:   func(c *model.Configuration) { c.PeakConcurrentViewers = -1 },
			field:    "peakConcurrentViewers",
			severity: SeverityError,
		},
		{
			name: "negative back catalog",
			modify: func(c *model.Configuration) {
				c.LegacyEnabled = true
				c.BackCatalogHours = -10
			},
			field:    "backCatalogHours",
			severity: SeverityError,
		},
		{
			name: "self-hosted without servers",
			modify: func(c *model.Configuration) {
				c.Platform = model.PlatformSelfHosted
				c.ServerCount = 0
			},
			field:    "serverCount",
			severity: SeverityWarning,
		},
		{
			name: "negative rental cost",
			modify: func(c *model.Configuration) {
				c.Platform = model.PlatformHybrid
				c.HardwareMode = model.HardwareRent
				c.MonthlyRentalCost = -5
			},
			field:    "monthlyRentalCost",
			severity: SeverityError,
		},
		{
			name: "negative rack cost in colocation",
			modify: func(c *model.Configuration) {
				c.Platform = model.PlatformSelfHosted
				c.RackHostingLocation = model.RackColocation
				c.RackCost = -1
			},
			field:    "rackCost",
			severity: SeverityError,
		},
		{
			name:     "fill rate above 100",
			modify:   func(c *model.Configuration) { c.Revenue.DefaultFillRate = model.Float(120) },
			field:    "revenue.defaultFillRate",
			severity: SeverityError,
		},
		{
			name:     "skip rate is a fraction",
			modify:   func(c *model.Configuration) { c.Revenue.VODSkipRate = model.Float(25) },
			field:    "revenue.vodSkipRate",
			severity: SeverityError,
		},
		{
			name:     "fractional paid blocks",
			modify:   func(c *model.Configuration) { c.Revenue.MonthlyPaidBlocks = 2.5 },
			field:    "revenue.monthlyPaidBlocks",
			severity: SeverityError,
		},
		{
			name:     "ad load above typical",
			modify:   func(c *model.Configuration) { c.Revenue.AdSpotsPerHour = 30 },
			field:    "revenue.adSpotsPerHour",
			severity: SeverityWarning,
		},
		{
			name:     "non-finite cpm",
			modify:   func(c *model.Configuration) { c.Revenue.CPMRate = math.Inf(1) },
			field:    "revenue.cpmRate",
			severity: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultConfiguration()
			tt.modify(&cfg)

			r, found := findField(Validate(cfg), tt.field)
			require.True(t, found, "expected a result on %s", tt.field)
			assert.Equal(t, tt.severity, r.Severity)
			assert.Contains(t, r.Message, tt.field)
		})
	}
}

func TestValidate_RulesGatedByPredicate(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.Platform = model.PlatformManagedA
	cfg.MonthlyRentalCost = -100
	cfg.RackCost = -100
	cfg.ServerCount = 0

	results := Validate(cfg)
	for _, field := range []string{"monthlyRentalCost", "rackCost", "serverCount"} {
		_, found := findField(results, field)
		assert.False(t, found, "%s applies only to station hardware", field)
	}
}

func TestValidate_ChannelRules(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.Channels[0].LiveHours = 30
	cfg.Channels[1].FillRate = model.Float(-5)
	cfg.Channels[2].VODUniques = -1

	results := Validate(cfg)
	errs := errorsOf(results)
	require.Len(t, errs, 3)

	assert.Equal(t, "liveHours", errs[0].Field)
	assert.Equal(t, cfg.Channels[0].ID, errs[0].ChannelID)
	assert.Equal(t, "fillRate", errs[1].Field)
	assert.Equal(t, cfg.Channels[1].ID, errs[1].ChannelID)
	assert.Equal(t, "vodUniques", errs[2].Field)
	assert.Equal(t, cfg.Channels[2].ID, errs[2].ChannelID)
}

func TestValidate_DisabledChannelsStillValidated(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.Channels[0].Enabled = model.Bool(false)
	cfg.Channels[0].LiveHours = -1

	assert.True(t, HasErrors(Validate(cfg)))
}

func TestValidate_DuplicateIDs(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.Channels[1].ID = cfg.Channels[0].ID
	cfg.VODCategories = append(cfg.VODCategories, model.VODCategoryStat{Name: "Untitled"})

	results := Validate(cfg)
	errs := errorsOf(results)
	require.Len(t, errs, 2)

	assert.Equal(t, "channels", errs[0].Field)
	assert.Equal(t, cfg.Channels[0].ID, errs[0].ChannelID)
	assert.Contains(t, errs[0].Message, "more than once")

	assert.Equal(t, "vodCategories", errs[1].Field)
	assert.Contains(t, errs[1].Message, "no id")
}

func TestValidate_CategoryRules(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.VODCategories[1].FillRate = model.Float(101)
	cfg.VODCategories[2].CPMRate = -3

	errs := errorsOf(Validate(cfg))
	require.Len(t, errs, 2)
	assert.Equal(t, "fillRate", errs[0].Field)
	assert.Equal(t, cfg.VODCategories[1].ID, errs[0].CategoryID)
	assert.Equal(t, "cpmRate", errs[1].Field)
	assert.Equal(t, cfg.VODCategories[2].ID, errs[1].CategoryID)
}

func TestValidate_ChannelCountMismatchWarns(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.ChannelCount = 5

	results := Validate(cfg)
	r, found := findField(results, "channels")
	require.True(t, found)
	assert.Equal(t, SeverityWarning, r.Severity)
	assert.False(t, HasErrors(results))
}

func TestValidate_UnknownEnums(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*model.Configuration)
		field  string
	}{
		{name: "platform", modify: func(c *model.Configuration) { c.Platform = "mainframe" }, field: "platform"},
		{name: "preset", modify: func(c *model.Configuration) { c.EncodingPreset = "8k-holo" }, field: "encodingPreset"},
		{name: "region", modify: func(c *model.Configuration) { c.DeliveryRegion = "atlantis" }, field: "deliveryRegion"},
		{name: "analytics", modify: func(c *model.Configuration) { c.ViewerAnalytics = "crystal-ball" }, field: "viewerAnalytics"},
		{name: "circular provider chain", modify: func(c *model.Configuration) { c.VODProvider = model.ProviderSameAsVOD }, field: "vodProvider"},
		{name: "cloud provider must be managed", modify: func(c *model.Configuration) { c.CloudProvider = model.ProviderSelfHosted }, field: "cloudProvider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultConfiguration()
			tt.modify(&cfg)

			r, found := findField(Validate(cfg), tt.field)
			require.True(t, found)
			assert.Equal(t, SeverityError, r.Severity)
		})
	}
}

func TestValidate_EmptyEnumsUseDefaults(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.Platform = ""
	cfg.EncodingPreset = ""
	cfg.DataStore = ""
	cfg.ViewerAnalytics = ""

	assert.False(t, HasErrors(Validate(cfg)))
}

func TestValidate_Deterministic(t *testing.T) {
	cfg := model.DefaultConfiguration()
	cfg.ChannelCount = 0
	cfg.Channels[0].LiveHours = 99
	cfg.Platform = "mainframe"

	first := Validate(cfg)
	for range 5 {
		assert.Equal(t, first, Validate(cfg))
	}
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Result{{Field: "a", Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]Result{
		{Field: "a", Severity: SeverityWarning},
		{Field: "b", Severity: SeverityError},
	}))
}
