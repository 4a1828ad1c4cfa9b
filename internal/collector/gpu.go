package collector

import (
	"siliconstats/internal/logger"
)

// PropertyBag is a device's performance statistics dictionary.
type PropertyBag map[string]any

// Device is one accelerator entry in the hardware registry.
type Device interface {
	// PerformanceStatistics returns the device's counters, if it publishes any.
	PerformanceStatistics() (PropertyBag, bool)

	// Release frees the registry handle.
	Release()
}

// DeviceIterator walks accelerator devices. Release frees the iterator and
// any devices not yet returned by Next.
type DeviceIterator interface {
	Next() (Device, bool)
	Release()
}

// DeviceRegistry enumerates accelerator devices.
type DeviceRegistry interface {
	Accelerators() (DeviceIterator, error)
}

// UtilizationKeys are the statistic names that carry GPU busy percentage,
// checked in order. Drivers disagree on the name.
var UtilizationKeys = []string{
	"Device Utilization %",
	"GPU Activity(%)",
	"GPU Core Utilization",
	"gpuCoreUtilizationPercent",
	"gpu_busy_percent",
	"UtilizationPercentage",
}

// GPUProber finds a GPU utilization figure in the hardware registry.
type GPUProber struct {
	registry DeviceRegistry
}

// NewGPUProber creates a prober over the given registry.
func NewGPUProber(registry DeviceRegistry) *GPUProber {
	return &GPUProber{registry: registry}
}

// Utilization returns the first plausible utilization percentage found on
// any accelerator. Every device handle is released before returning.
func (p *GPUProber) Utilization() (float64, bool) {
	it, err := p.registry.Accelerators()
	if err != nil {
		log := logger.WithComponent("gpu-load")
		log.Debug().Err(err).Msg("Failed to enumerate accelerators")
		return 0, false
	}
	defer it.Release()

	for {
		dev, ok := it.Next()
		if !ok {
			return 0, false
		}
		v, found := deviceUtilization(dev)
		if found {
			return v, true
		}
	}
}

func deviceUtilization(dev Device) (float64, bool) {
	defer dev.Release()

	stats, ok := dev.PerformanceStatistics()
	if !ok {
		return 0, false
	}
	for _, key := range UtilizationKeys {
		v, ok := percentValue(stats[key])
		if ok {
			return v, true
		}
	}
	return 0, false
}

// percentValue accepts integer and floating point values in [0,100].
func percentValue(raw any) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case int:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case float32:
		v = float64(n)
	case float64:
		v = n
	default:
		return 0, false
	}
	if v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}
