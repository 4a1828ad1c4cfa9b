package smc

// KnownKey is a documented temperature key and what it measures.
type KnownKey struct {
	Key   string
	Label string
}

// KnownKeys lists temperature keys seen across Intel and Apple Silicon Macs.
var KnownKeys = []KnownKey{
	// Intel CPU
	{"TC0D", "Intel CPU Die"},
	{"TC0E", "Intel CPU Die 2"},
	{"TC0F", "Intel CPU Die 3"},
	{"TC0P", "Intel CPU Proximity"},
	{"TC1D", "Intel CPU Core 1 Die"},
	{"TC2D", "Intel CPU Core 2 Die"},
	{"TC3D", "Intel CPU Core 3 Die"},
	{"TC4D", "Intel CPU Core 4 Die"},
	{"TCAD", "Intel CPU Package Die"},
	{"TCXC", "Intel CPU PECI"},
	// Apple Silicon CPU
	{"Tp01", "Apple Silicon CPU Core 1"},
	{"Tp02", "Apple Silicon CPU Core 2"},
	{"Tp03", "Apple Silicon CPU Core 3"},
	{"Tp04", "Apple Silicon CPU Core 4"},
	{"Tp05", "Apple Silicon CPU Core 5"},
	{"Tp06", "Apple Silicon CPU Core 6"},
	{"Tp07", "Apple Silicon CPU Core 7"},
	{"Tp08", "Apple Silicon CPU Core 8"},
	{"Tp09", "Apple Silicon CPU Core 9"},
	{"Tp0D", "Apple Silicon CPU P-cluster 1"},
	{"Tp0H", "Apple Silicon CPU P-cluster 2"},
	{"Tp0b", "Apple Silicon CPU E-cluster 1"},
	{"Tp0f", "Apple Silicon CPU E-cluster 2"},
	{"Tp0j", "Apple Silicon CPU E-cluster 3"},
	{"Tp0n", "Apple Silicon CPU E-cluster 4"},
	{"Tp0r", "Apple Silicon CPU E-cluster 5"},
	// GPU
	{"Tg0D", "GPU Die"},
	{"Tg0P", "GPU Proximity"},
	{"TG0D", "Intel GPU Die"},
	{"Tg05", "Apple Silicon GPU 1"},
	{"Tg0f", "Apple Silicon GPU 2"},
	{"Tg0j", "Apple Silicon GPU 3"},
	// Other
	{"TA0P", "Ambient"},
	{"Ts0P", "Palm rest"},
	{"Ts1P", "Palm rest 2"},
	{"TH0P", "Heatpipe"},
	{"TB0T", "Battery"},
	{"Tm0P", "Memory Proximity"},
	{"TW0P", "Wireless Module"},
	{"TN0P", "Northbridge Proximity"},
	{"TI0P", "Thunderbolt Proximity"},
	{"Tp0C", "Apple Silicon Power Block"},
	{"Tp0S", "Apple Silicon SOC"},
	{"Tp0z", "Apple Silicon Unknown z"},
}

// Probe is one responding key from a catalog sweep.
type Probe struct {
	KnownKey
	Reading Reading
}

// ProbeKnown reads every catalog key and returns those that responded.
func (c *Client) ProbeKnown() []Probe {
	var found []Probe
	for _, k := range KnownKeys {
		r, ok := c.ReadKey(MustKey(k.Key))
		if !ok {
			continue
		}
		found = append(found, Probe{KnownKey: k, Reading: r})
	}
	return found
}
