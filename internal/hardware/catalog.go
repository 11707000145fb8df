package hardware

// SKU is one purchasable server configuration.
type SKU struct {
	Name        string  `json:"name"`
	CPUCores    int     `json:"cpuCores"`
	MemoryGB    int     `json:"memoryGB"`
	StorageGB   int     `json:"storageGB"`
	NetworkMbps int     `json:"networkMbps"`
	Cost        float64 `json:"cost"`
	// Specialized marks hardware transcoding support (GPU, Quick Sync, media engine).
	Specialized bool `json:"specialized"`
}

// Score is the weighted capability used to pick a fallback when no SKU fits.
func (s SKU) Score() float64 {
	return float64(s.CPUCores) +
		0.5*float64(s.MemoryGB) +
		0.25*float64(s.StorageGB)/1000 +
		0.5*float64(s.NetworkMbps)/1000
}

// meets reports whether s satisfies every requirement dimension.
func (s SKU) meets(r Requirements) bool {
	return s.CPUCores >= r.CPUCores &&
		s.MemoryGB >= r.MemoryGB &&
		s.StorageGB >= r.StorageGB &&
		s.NetworkMbps >= r.NetworkMbps
}

var catalog = []SKU{
	{Name: "mini-pc-i5", CPUCores: 4, MemoryGB: 16, StorageGB: 512, NetworkMbps: 1000, Cost: 800, Specialized: true},
	{Name: "mac-mini-m2", CPUCores: 8, MemoryGB: 16, StorageGB: 512, NetworkMbps: 10000, Cost: 799, Specialized: true},
	{Name: "tower-ryzen-7", CPUCores: 8, MemoryGB: 32, StorageGB: 2000, NetworkMbps: 1000, Cost: 1400},
	{Name: "rack-1u-xeon-16c", CPUCores: 16, MemoryGB: 64, StorageGB: 4000, NetworkMbps: 10000, Cost: 3200},
	{Name: "rack-1u-xeon-gpu", CPUCores: 16, MemoryGB: 64, StorageGB: 4000, NetworkMbps: 10000, Cost: 5200, Specialized: true},
	{Name: "rack-2u-epyc-32c", CPUCores: 32, MemoryGB: 128, StorageGB: 8000, NetworkMbps: 10000, Cost: 6800},
	{Name: "rack-2u-epyc-gpu", CPUCores: 32, MemoryGB: 256, StorageGB: 16000, NetworkMbps: 10000, Cost: 9800, Specialized: true},
	{Name: "rack-4u-dual-epyc-64c", CPUCores: 64, MemoryGB: 512, StorageGB: 32000, NetworkMbps: 25000, Cost: 16500},
}

// Options returns a copy of the hardware catalog.
func Options() []SKU {
	out := make([]SKU, len(catalog))
	copy(out, catalog)
	return out
}
