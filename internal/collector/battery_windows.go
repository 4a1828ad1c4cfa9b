//go:build windows

package collector

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// win32Battery maps the Win32_Battery fields we need.
type win32Battery struct {
	EstimatedChargeRemaining uint16
	BatteryStatus            uint16
}

// Win32_Battery BatteryStatus values.
const (
	batteryStatusDischarging = 1
	batteryStatusOnAC        = 2
	batteryStatusCharging    = 6
	batteryStatusChargingMax = 9
)

type wmiPowerSources struct{}

// NewPowerSourceEnumerator returns the WMI Win32_Battery enumerator.
func NewPowerSourceEnumerator() PowerSourceEnumerator {
	return wmiPowerSources{}
}

func (wmiPowerSources) PowerSources() ([]PowerSource, error) {
	var batteries []win32Battery
	if err := wmi.Query("SELECT EstimatedChargeRemaining, BatteryStatus FROM Win32_Battery", &batteries); err != nil {
		return nil, fmt.Errorf("wmi Win32_Battery query: %w", err)
	}

	sources := make([]PowerSource, 0, len(batteries))
	for _, b := range batteries {
		capacity := int(b.EstimatedChargeRemaining)
		charging := b.BatteryStatus >= batteryStatusCharging && b.BatteryStatus <= batteryStatusChargingMax
		state := BatteryPower
		if b.BatteryStatus != batteryStatusDischarging {
			state = ACPower
		}
		sources = append(sources, PowerSource{
			Capacity:   &capacity,
			IsCharging: &charging,
			State:      state,
		})
	}
	return sources, nil
}
