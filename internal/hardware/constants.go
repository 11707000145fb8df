package hardware

import "github.com/rshade/streamcost-estimator/internal/model"

// Control-plane and web-server footprint every deployment needs.
const (
	baseCPUCores    = 2
	baseMemoryGB    = 4
	baseStorageGB   = 64
	baseNetworkMbps = 100
)

// hybridOffloadFactor is the share of encode work kept on station hardware
// when a hybrid deployment offloads the rest to the cloud.
const hybridOffloadFactor = 0.7

// Archive footprint per hour of stored content.
const (
	hdGBPerHour  = 3.0
	uhdGBPerHour = 12.0
)

// channelOverhead is the encode cost of one live channel on station hardware.
type channelOverhead struct {
	CPUCores    float64
	MemoryGB    float64
	NetworkMbps float64
}

var channelOverheads = map[model.EncodingPreset]channelOverhead{
	model.Preset720pSingle:     {CPUCores: 1, MemoryGB: 1, NetworkMbps: 10},
	model.Preset1080pSingle:    {CPUCores: 2, MemoryGB: 2, NetworkMbps: 15},
	model.Preset1080pTriLadder: {CPUCores: 4, MemoryGB: 4, NetworkMbps: 25},
	model.Preset2160pSingle:    {CPUCores: 6, MemoryGB: 6, NetworkMbps: 40},
	model.Preset2160pTriLadder: {CPUCores: 10, MemoryGB: 8, NetworkMbps: 60},
}
