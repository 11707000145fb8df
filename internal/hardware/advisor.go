// Package hardware sizes station servers for a streaming Configuration and
// recommends a SKU from a fixed catalog.
package hardware

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/model"
)

// Requirements is the derived server sizing for a Configuration.
type Requirements struct {
	CPUCores    int `json:"cpuCores"`
	MemoryGB    int `json:"memoryGB"`
	StorageGB   int `json:"storageGB"`
	NetworkMbps int `json:"networkMbps"`

	RecommendedHardware string  `json:"recommendedHardware"`
	Recommended         SKU     `json:"recommended"`
	ServerCount         int     `json:"serverCount"`
	EstimatedCost       float64 `json:"estimatedCost"`

	// IsAvailable is false when no catalog SKU met every dimension and the
	// most capable SKU was recommended instead.
	IsAvailable bool `json:"isAvailable"`

	// MaxViewers is the concurrent viewers per channel the uplink can serve.
	MaxViewers int `json:"maxViewers"`
}

// Advisor computes hardware requirements. It holds no mutable state.
type Advisor struct {
	logger zerolog.Logger
}

// NewAdvisor creates an Advisor.
func NewAdvisor(logger zerolog.Logger) *Advisor {
	return &Advisor{logger: logger.With().Str("component", "hardware").Logger()}
}

// Calculate sizes the deployment described by cfg. It never fails: when no
// SKU meets the requirements the most capable catalog SKU is recommended.
func (a *Advisor) Calculate(cfg model.Configuration) Requirements {
	cfg = cfg.Normalized()
	channels := float64(cfg.EffectiveChannelCount())

	cpu := float64(baseCPUCores)
	memory := float64(baseMemoryGB)
	network := float64(baseNetworkMbps)

	if cfg.Platform.RunsOwnInfrastructure() {
		overhead, found := channelOverheads[cfg.EncodingPreset]
		if !found {
			a.logger.Warn().
				Str("encoding_preset", string(cfg.EncodingPreset)).
				Msg("encoding preset has no channel overhead, sizing base footprint only")
		}
		factor := 1.0
		if cfg.Platform == model.PlatformHybrid {
			factor = hybridOffloadFactor
		}
		cpu += overhead.CPUCores * channels * factor
		memory += overhead.MemoryGB * channels * factor
		network += overhead.NetworkMbps * channels * factor
	}

	profile, _ := cfg.EncodingPreset.Profile()
	capacity := a.uplinkCapacity(cfg)

	headroom := math.Max(capacity-baseNetworkMbps, 0)
	maxViewers := 0
	if profile.DeliveryBitrateMbps > 0 {
		maxViewers = int(math.Floor(headroom / profile.DeliveryBitrateMbps / math.Max(channels, 1)))
	}

	if cfg.Platform.RunsOwnInfrastructure() {
		network += float64(cfg.PeakConcurrentViewers) * profile.DeliveryBitrateMbps * channels
	}
	network = math.Min(network, capacity)

	req := Requirements{
		CPUCores:    int(math.Ceil(cpu)),
		MemoryGB:    int(math.Ceil(memory)),
		StorageGB:   int(math.Ceil(baseStorageGB + archiveGB(cfg, profile))),
		NetworkMbps: int(math.Ceil(network)),
		MaxViewers:  maxViewers,
		ServerCount: recommendedServers(cfg),
	}

	sku, available := selectSKU(req, cfg.TranscodingEngine.PrefersSpecializedHardware())
	req.Recommended = sku
	req.RecommendedHardware = sku.Name
	req.IsAvailable = available
	req.EstimatedCost = sku.Cost * float64(req.ServerCount)

	if !available {
		a.logger.Debug().
			Int("cpu_cores", req.CPUCores).
			Int("memory_gb", req.MemoryGB).
			Int("storage_gb", req.StorageGB).
			Int("network_mbps", req.NetworkMbps).
			Str("fallback_sku", sku.Name).
			Msg("no catalog SKU meets requirements")
	}
	return req
}

// uplinkCapacity is the interface's nominal capacity, limited by the
// provisioned bandwidth when one is configured.
func (a *Advisor) uplinkCapacity(cfg model.Configuration) float64 {
	capacity, found := cfg.NetworkInterface.CapacityMbps()
	if !found {
		a.logger.Warn().
			Str("network_interface", string(cfg.NetworkInterface)).
			Msg("unknown network interface, assuming 1gbe")
		capacity, _ = model.Interface1GbE.CapacityMbps()
	}
	if cfg.BandwidthCapacity > 0 {
		capacity = math.Min(capacity, cfg.BandwidthCapacity)
	}
	return capacity
}

// archiveGB is the content stored on station hardware: the VOD/DVR archive
// when it lives locally and the back catalog when self-hosted.
func archiveGB(cfg model.Configuration, profile model.PresetProfile) float64 {
	perHour := hdGBPerHour
	if profile.UHD {
		perHour = uhdGBPerHour
	}

	var hours float64
	if cfg.LiveDVREnabled && cfg.VODEnabled &&
		(cfg.ResolvedVODProvider().RunsOwnInfrastructure() || cfg.RecordingStorageLocation == model.StorageLocal) {
		hours += cfg.HoursPerDayArchived * float64(cfg.RetentionWindow) * float64(cfg.EffectiveChannelCount())
	}
	if cfg.LegacyEnabled && cfg.ResolvedLegacyProvider().RunsOwnInfrastructure() {
		hours += cfg.BackCatalogHours
	}
	return math.Max(hours, 0) * perHour
}

// recommendedServers is two for redundant hybrid deployments, otherwise one.
func recommendedServers(cfg model.Configuration) int {
	if cfg.Platform == model.PlatformHybrid {
		return cfg.HybridRedundancyMode.ServersRequired()
	}
	return 1
}

// selectSKU returns the cheapest SKU meeting req. Specialized SKUs are tried
// first when preferred. With no viable SKU it returns the most capable one.
func selectSKU(req Requirements, preferSpecialized bool) (SKU, bool) {
	if preferSpecialized {
		var specialized []SKU
		for _, s := range catalog {
			if s.Specialized {
				specialized = append(specialized, s)
			}
		}
		if sku, ok := cheapestViable(specialized, req); ok {
			return sku, true
		}
	}
	if sku, ok := cheapestViable(catalog, req); ok {
		return sku, true
	}
	return mostCapable(catalog), false
}

func cheapestViable(skus []SKU, req Requirements) (SKU, bool) {
	var best SKU
	found := false
	for _, s := range skus {
		if !s.meets(req) {
			continue
		}
		if !found || s.Cost < best.Cost {
			best = s
			found = true
		}
	}
	return best, found
}

func mostCapable(skus []SKU) SKU {
	var best SKU
	for i, s := range skus {
		if i == 0 || s.Score() > best.Score() {
			best = s
		}
	}
	return best
}
