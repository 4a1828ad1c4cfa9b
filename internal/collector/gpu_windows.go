//go:build windows

package collector

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// gpuEngine maps Win32_PerfFormattedData_GPUPerformanceCounters_GPUEngine.
type gpuEngine struct {
	Name                  string
	UtilizationPercentage uint64
}

const gpuEngineQuery = "SELECT Name, UtilizationPercentage FROM Win32_PerfFormattedData_GPUPerformanceCounters_GPUEngine WHERE Name LIKE '%engtype_3D'"

type wmiRegistry struct{}

// NewDeviceRegistry returns the WMI GPU engine registry. Each 3D engine
// instance is reported as one device.
func NewDeviceRegistry() DeviceRegistry {
	return wmiRegistry{}
}

func (wmiRegistry) Accelerators() (DeviceIterator, error) {
	var engines []gpuEngine
	if err := wmi.Query(gpuEngineQuery, &engines); err != nil {
		return nil, fmt.Errorf("wmi GPUEngine query: %w", err)
	}

	// Per-process engine instances split the load; report the busiest.
	var busiest *gpuEngine
	for i := range engines {
		if busiest == nil || engines[i].UtilizationPercentage > busiest.UtilizationPercentage {
			busiest = &engines[i]
		}
	}
	var devices []Device
	if busiest != nil {
		devices = append(devices, wmiEngine{util: busiest.UtilizationPercentage})
	}
	return newSliceIterator(devices), nil
}

type wmiEngine struct {
	util uint64
}

func (e wmiEngine) PerformanceStatistics() (PropertyBag, bool) {
	return PropertyBag{"UtilizationPercentage": e.util}, true
}

func (wmiEngine) Release() {}
