package collector

import (
	"siliconstats/internal/logger"
)

// ACPower is the power source state that means the machine is on mains.
// It matches IOKit's kIOPSACPowerValue.
const ACPower = "AC Power"

// BatteryPower is the state for a machine running from its battery.
const BatteryPower = "Battery Power"

// PowerSource is one power source description. Nil fields were not
// reported by the OS.
type PowerSource struct {
	Capacity   *int
	IsCharging *bool
	State      string
}

// PowerSourceEnumerator lists the host's power sources.
type PowerSourceEnumerator interface {
	PowerSources() ([]PowerSource, error)
}

// BatteryStatus is the state of the primary battery.
type BatteryStatus struct {
	Percentage  int  `json:"percentage"`
	IsCharging  bool `json:"is_charging"`
	IsPluggedIn bool `json:"is_plugged_in"`
}

// BatteryReader reports the state of the first power source.
type BatteryReader struct {
	source PowerSourceEnumerator
}

// NewBatteryReader creates a reader over the given enumerator.
func NewBatteryReader(source PowerSourceEnumerator) *BatteryReader {
	return &BatteryReader{source: source}
}

// Read returns false on machines without a battery or when the first
// source lacks a capacity or charging flag.
func (r *BatteryReader) Read() (BatteryStatus, bool) {
	sources, err := r.source.PowerSources()
	if err != nil {
		log := logger.WithComponent("battery")
		log.Debug().Err(err).Msg("Failed to enumerate power sources")
		return BatteryStatus{}, false
	}
	if len(sources) == 0 {
		return BatteryStatus{}, false
	}

	first := sources[0]
	if first.Capacity == nil || first.IsCharging == nil {
		return BatteryStatus{}, false
	}
	return BatteryStatus{
		Percentage:  *first.Capacity,
		IsCharging:  *first.IsCharging,
		IsPluggedIn: first.State == ACPower,
	}, true
}
