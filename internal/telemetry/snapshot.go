package telemetry

import "siliconstats/internal/collector"

type (
	MemorySnapshot  = collector.MemoryUsage
	BatterySnapshot = collector.BatteryStatus
)

// Snapshot is the result of one poll. A nil field means the metric was
// disabled or could not be read this cycle.
type Snapshot struct {
	CPUTemp *float64         `json:"cpu_temp,omitempty"`
	GPUTemp *float64         `json:"gpu_temp,omitempty"`
	CPULoad *float64         `json:"cpu_load,omitempty"`
	GPULoad *float64         `json:"gpu_load,omitempty"`
	Memory  *MemorySnapshot  `json:"memory,omitempty"`
	Battery *BatterySnapshot `json:"battery,omitempty"`
}

// Present reports which metrics carry a value.
func (s Snapshot) Present() MetricSet {
	var set MetricSet
	if s.CPUTemp != nil {
		set = set.With(CPUTemp)
	}
	if s.GPUTemp != nil {
		set = set.With(GPUTemp)
	}
	if s.CPULoad != nil {
		set = set.With(CPULoad)
	}
	if s.GPULoad != nil {
		set = set.With(GPULoad)
	}
	if s.Memory != nil {
		set = set.With(Memory)
	}
	if s.Battery != nil {
		set = set.With(Battery)
	}
	return set
}

// Value returns a scalar view of a metric for gauge style sinks. Memory
// maps to used GB and battery to its percentage.
func (s Snapshot) Value(m Metric) (float64, bool) {
	switch m {
	case CPUTemp:
		return deref(s.CPUTemp)
	case GPUTemp:
		return deref(s.GPUTemp)
	case CPULoad:
		return deref(s.CPULoad)
	case GPULoad:
		return deref(s.GPULoad)
	case Memory:
		if s.Memory != nil {
			return s.Memory.UsedGB, true
		}
	case Battery:
		if s.Battery != nil {
			return float64(s.Battery.Percentage), true
		}
	}
	return 0, false
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
