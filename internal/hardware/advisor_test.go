package hardware

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamcost-estimator/internal/model"
)

func selfHostedChannel() model.Configuration {
	return model.Configuration{
		Platform:              model.PlatformSelfHosted,
		StreamEnabled:         true,
		ChannelCount:          1,
		EncodingPreset:        model.Preset1080pTriLadder,
		PeakConcurrentViewers: 10,
		NetworkInterface:      model.Interface1GbE,
	}
}

func TestCalculate_SelfHostedSingleChannel(t *testing.T) {
	advisor := NewAdvisor(zerolog.Nop())
	overhead := channelOverheads[model.Preset1080pTriLadder]

	req := advisor.Calculate(selfHostedChannel())

	assert.GreaterOrEqual(t, float64(req.CPUCores), baseCPUCores+overhead.CPUCores)
	assert.GreaterOrEqual(t, float64(req.MemoryGB), baseMemoryGB+overhead.MemoryGB)
	assert.GreaterOrEqual(t, float64(req.NetworkMbps), baseNetworkMbps+overhead.NetworkMbps)
	assert.Equal(t, 170, req.NetworkMbps, "base + ingest + 10 viewers at 4.5 Mbps")
	assert.Equal(t, baseStorageGB, req.StorageGB)

	// Independently find the cheapest SKU meeting all four dimensions.
	var want SKU
	for _, s := range Options() {
		if s.CPUCores >= req.CPUCores && s.MemoryGB >= req.MemoryGB &&
			s.StorageGB >= req.StorageGB && s.NetworkMbps >= req.NetworkMbps {
			if want.Name == "" || s.Cost < want.Cost {
				want = s
			}
		}
	}
	require.NotEmpty(t, want.Name)
	assert.Equal(t, want.Name, req.RecommendedHardware)
	assert.Equal(t, want, req.Recommended)
	assert.True(t, req.IsAvailable)
	assert.Equal(t, 1, req.ServerCount)
	assert.InDelta(t, want.Cost, req.EstimatedCost, 1e-9)
}

func TestCalculate_Requirements(t *testing.T) {
	advisor := NewAdvisor(zerolog.Nop())

	tests := []struct {
		name        string
		modify      func(*model.Configuration)
		wantCPU     int
		wantMemory  int
		wantStorage int
		wantNetwork int
	}{
		{
			name:        "managed platform sizes control plane only",
			modify:      func(c *model.Configuration) { c.Platform = model.PlatformManagedA },
			wantCPU:     2,
			wantMemory:  4,
			wantStorage: 64,
			wantNetwork: 100,
		},
		{
			name: "hybrid offloads part of the encode",
			modify: func(c *model.Configuration) {
				c.Platform = model.PlatformHybrid
				c.ChannelCount = 2
				c.PeakConcurrentViewers = 0
			},
			wantCPU:     8,   // 2 + 4*2*0.7 = 7.6
			wantMemory:  10,  // 4 + 4*2*0.7 = 9.6
			wantStorage: 64,  // no archive
			wantNetwork: 135, // 100 + 25*2*0.7
		},
		{
			name:        "network capped at interface capacity",
			modify:      func(c *model.Configuration) { c.PeakConcurrentViewers = 1000 },
			wantCPU:     6,
			wantMemory:  8,
			wantStorage: 64,
			wantNetwork: 1000,
		},
		{
			name: "network capped at provisioned bandwidth",
			modify: func(c *model.Configuration) {
				c.PeakConcurrentViewers = 1000
				c.BandwidthCapacity = 500
			},
			wantCPU:     6,
			wantMemory:  8,
			wantStorage: 64,
			wantNetwork: 500,
		},
		{
			name: "self-hosted VOD archive at HD footprint",
			modify: func(c *model.Configuration) {
				c.LiveDVREnabled = true
				c.VODEnabled = true
				c.VODProvider = model.ProviderSameAsLive
				c.HoursPerDayArchived = 4
				c.RetentionWindow = 30
			},
			wantCPU:     6,
			wantMemory:  8,
			wantStorage: 424, // 64 + 120h * 3
			wantNetwork: 170,
		},
		{
			name: "UHD archive and self-hosted back catalog",
			modify: func(c *model.Configuration) {
				c.EncodingPreset = model.Preset2160pSingle
				c.PeakConcurrentViewers = 0
				c.LiveDVREnabled = true
				c.VODEnabled = true
				c.HoursPerDayArchived = 4
				c.RetentionWindow = 30
				c.LegacyEnabled = true
				c.BackCatalogHours = 100
			},
			wantCPU:     8,
			wantMemory:  10,
			wantStorage: 2704, // 64 + 220h * 12
			wantNetwork: 140,
		},
		{
			name: "managed VOD with local recordings still archives locally",
			modify: func(c *model.Configuration) {
				c.Platform = model.PlatformManagedB
				c.LiveDVREnabled = true
				c.VODEnabled = true
				c.RecordingStorageLocation = model.StorageLocal
				c.HoursPerDayArchived = 2
				c.RetentionWindow = 10
			},
			wantCPU:     2,
			wantMemory:  4,
			wantStorage: 124, // 64 + 20h * 3
			wantNetwork: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := selfHostedChannel()
			tt.modify(&cfg)
			req := advisor.Calculate(cfg)

			assert.Equal(t, tt.wantCPU, req.CPUCores, "cpu")
			assert.Equal(t, tt.wantMemory, req.MemoryGB, "memory")
			assert.Equal(t, tt.wantStorage, req.StorageGB, "storage")
			assert.Equal(t, tt.wantNetwork, req.NetworkMbps, "network")
		})
	}
}

func TestCalculate_MaxViewers(t *testing.T) {
	advisor := NewAdvisor(zerolog.Nop())

	t.Run("headroom above base floor", func(t *testing.T) {
		// (1000 - 100) / 4.5 = 200
		assert.Equal(t, 200, advisor.Calculate(selfHostedChannel()).MaxViewers)
	})

	t.Run("divided across channels", func(t *testing.T) {
		cfg := selfHostedChannel()
		cfg.ChannelCount = 2
		cfg.NetworkInterface = model.Interface10GbE
		// (10000 - 100) / 4.5 / 2 = 1100
		assert.Equal(t, 1100, advisor.Calculate(cfg).MaxViewers)
	})

	t.Run("unknown preset has no capacity", func(t *testing.T) {
		cfg := selfHostedChannel()
		cfg.EncodingPreset = "8k-holo"
		assert.Zero(t, advisor.Calculate(cfg).MaxViewers)
	})
}

func TestCalculate_SKUSelection(t *testing.T) {
	advisor := NewAdvisor(zerolog.Nop())

	t.Run("software engine picks cheapest general SKU", func(t *testing.T) {
		cfg := selfHostedChannel()
		cfg.ChannelCount = 4
		cfg.PeakConcurrentViewers = 0
		req := advisor.Calculate(cfg)

		assert.Equal(t, 18, req.CPUCores)
		assert.Equal(t, "rack-2u-epyc-32c", req.RecommendedHardware)
		assert.True(t, req.IsAvailable)
	})

	t.Run("hardware encoder prefers specialized SKU", func(t *testing.T) {
		cfg := selfHostedChannel()
		cfg.ChannelCount = 4
		cfg.PeakConcurrentViewers = 0
		cfg.TranscodingEngine = model.EngineNVENC
		req := advisor.Calculate(cfg)

		assert.Equal(t, "rack-2u-epyc-gpu", req.RecommendedHardware)
		assert.True(t, req.Recommended.Specialized)
		assert.True(t, req.IsAvailable)
	})

	t.Run("falls back to most capable SKU", func(t *testing.T) {
		cfg := selfHostedChannel()
		cfg.ChannelCount = 100
		cfg.EncodingPreset = model.Preset2160pTriLadder
		req := advisor.Calculate(cfg)

		assert.False(t, req.IsAvailable)
		assert.Equal(t, "rack-4u-dual-epyc-64c", req.RecommendedHardware)
	})

	t.Run("redundant hybrid doubles servers", func(t *testing.T) {
		cfg := selfHostedChannel()
		cfg.Platform = model.PlatformHybrid
		cfg.HybridRedundancyMode = model.RedundancyActiveActive
		req := advisor.Calculate(cfg)

		assert.Equal(t, 2, req.ServerCount)
		assert.InDelta(t, req.Recommended.Cost*2, req.EstimatedCost, 1e-9)
	})
}

func TestCalculate_Deterministic(t *testing.T) {
	advisor := NewAdvisor(zerolog.Nop())
	cfg := model.DefaultConfiguration()
	cfg.Platform = model.PlatformHybrid

	first := advisor.Calculate(cfg)
	for range 5 {
		assert.Equal(t, first, advisor.Calculate(cfg))
	}
}

func TestOptions(t *testing.T) {
	opts := Options()
	require.NotEmpty(t, opts)

	names := make(map[string]bool)
	for _, s := range opts {
		assert.False(t, names[s.Name], "duplicate SKU %s", s.Name)
		names[s.Name] = true
		assert.Positive(t, s.Cost)
	}

	opts[0].Name = "mutated"
	assert.NotEqual(t, "mutated", Options()[0].Name)
}

func TestMostCapable(t *testing.T) {
	best := mostCapable(Options())
	for _, s := range Options() {
		assert.GreaterOrEqual(t, best.Score(), s.Score())
	}
}
