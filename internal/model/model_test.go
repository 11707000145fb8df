package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		vod      Provider
		start    Provider
		want     Provider
	}{
		{
			name:     "concrete provider returned unchanged",
			platform: PlatformManagedA,
			vod:      ProviderSameAsLive,
			start:    ProviderSelfHosted,
			want:     ProviderSelfHosted,
		},
		{
			name:     "same-as-live resolves to platform",
			platform: PlatformManagedB,
			start:    ProviderSameAsLive,
			want:     ProviderManagedB,
		},
		{
			name:     "same-as-vod follows vod chain to live",
			platform: PlatformHybrid,
			vod:      ProviderSameAsLive,
			start:    ProviderSameAsVOD,
			want:     ProviderHybrid,
		},
		{
			name:     "same-as-vod with concrete vod provider",
			platform: PlatformManagedA,
			vod:      ProviderSelfHosted,
			start:    ProviderSameAsVOD,
			want:     ProviderSelfHosted,
		},
		{
			name:     "circular chain is unknown",
			platform: PlatformManagedA,
			vod:      ProviderSameAsVOD,
			start:    ProviderSameAsVOD,
			want:     "",
		},
		{
			name:     "unrecognized provider is unknown",
			platform: PlatformManagedA,
			start:    Provider("acme-cloud"),
			want:     "",
		},
		{
			name:     "empty link defers to live platform",
			platform: PlatformSelfHosted,
			vod:      "",
			start:    ProviderSameAsVOD,
			want:     ProviderSelfHosted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Configuration{Platform: tt.platform, VODProvider: tt.vod}
			assert.Equal(t, tt.want, ResolveProvider(cfg, tt.start))
		})
	}
}

func TestNormalized_FillsMissingFields(t *testing.T) {
	cfg := Configuration{}.Normalized()

	assert.Equal(t, PlatformManagedA, cfg.Platform)
	assert.Equal(t, Preset1080pTriLadder, cfg.EncodingPreset)
	assert.Equal(t, ProviderSameAsLive, cfg.VODProvider)
	assert.Equal(t, ProviderSameAsVOD, cfg.LegacyProvider)
	assert.Equal(t, ProviderManagedA, cfg.CloudProvider)
	assert.Equal(t, DefaultAmortMonths, cfg.AmortMonths)
	assert.Equal(t, 1, cfg.ServerCount)
	assert.Equal(t, Interface1GbE, cfg.NetworkInterface)
	assert.Equal(t, EngineSoftware, cfg.TranscodingEngine)
	assert.Equal(t, DataStoreNone, cfg.DataStore)
	assert.Equal(t, AnalyticsNone, cfg.ViewerAnalytics)
}

func TestNormalized_KeepsUnknownEnums(t *testing.T) {
	cfg := Configuration{Platform: "mystery", EncodingPreset: "8k-holo"}.Normalized()

	assert.Equal(t, Platform("mystery"), cfg.Platform)
	assert.Equal(t, EncodingPreset("8k-holo"), cfg.EncodingPreset)
}

func TestNormalized_DoesNotMutateReceiver(t *testing.T) {
	cfg := Configuration{}
	_ = cfg.Normalized()
	assert.Empty(t, cfg.Platform)
	assert.Zero(t, cfg.AmortMonths)
}

func TestEffectiveChannelCount(t *testing.T) {
	t.Run("falls back to channelCount without detail", func(t *testing.T) {
		assert.Equal(t, 4, Configuration{ChannelCount: 4}.EffectiveChannelCount())
	})

	t.Run("counts enabled channels", func(t *testing.T) {
		cfg := Configuration{
			ChannelCount: 9,
			Channels: []ChannelStat{
				{ID: "a"},
				{ID: "b", Enabled: Bool(false)},
				{ID: "c", Enabled: Bool(true)},
			},
		}
		assert.Equal(t, 2, cfg.EffectiveChannelCount())
	})

	t.Run("negative count clamps to zero", func(t *testing.T) {
		assert.Equal(t, 0, Configuration{ChannelCount: -2}.EffectiveChannelCount())
	})
}

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()

	require.Len(t, cfg.Channels, 3)
	assert.Equal(t, len(cfg.Channels), cfg.ChannelCount)
	assert.Equal(t, CurrentSchemaVersion, cfg.SchemaVersion)

	ids := make(map[string]bool)
	for _, ch := range cfg.Channels {
		assert.False(t, ids[ch.ID], "duplicate channel id %s", ch.ID)
		ids[ch.ID] = true
	}

	// Compiled-in ids are stable across calls.
	assert.Equal(t, cfg.Channels[0].ID, DefaultConfiguration().Channels[0].ID)

	// Each call returns an independent copy.
	cfg.Channels[0].Name = "changed"
	assert.Equal(t, "News 24", DefaultConfiguration().Channels[0].Name)
}

func TestEnums(t *testing.T) {
	capacity, ok := Interface10GbE.CapacityMbps()
	require.True(t, ok)
	assert.Equal(t, 10000.0, capacity)

	_, ok = NetworkInterface("100gbe").CapacityMbps()
	assert.False(t, ok)

	profile, ok := Preset2160pTriLadder.Profile()
	require.True(t, ok)
	assert.True(t, profile.UHD)
	assert.Equal(t, 3, profile.Renditions)

	assert.True(t, EngineNVENC.PrefersSpecializedHardware())
	assert.False(t, EngineSoftware.PrefersSpecializedHardware())
	assert.False(t, TranscodingEngine("bogus").PrefersSpecializedHardware())

	assert.Equal(t, 2, RedundancyActiveActive.ServersRequired())
	assert.Equal(t, 1, RedundancyNone.ServersRequired())

	assert.True(t, ProviderHybrid.RunsOwnInfrastructure())
	assert.False(t, ProviderSameAsLive.IsConcrete())
}

func TestNewID_Unique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
	assert.Equal(t, StableID("channel", "x"), StableID("channel", "x"))
	assert.NotEqual(t, StableID("channel", "x"), StableID("vod", "x"))
}
