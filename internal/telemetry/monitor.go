package telemetry

import (
	"sync"

	"siliconstats/internal/logger"
)

// TemperatureReader reads a resolved temperature sensor.
type TemperatureReader interface {
	Read() (float64, bool)
}

// LoadSampler produces a CPU busy percentage from consecutive samples.
type LoadSampler interface {
	Sample() (float64, bool)
}

// UtilizationProber finds the current GPU utilization.
type UtilizationProber interface {
	Utilization() (float64, bool)
}

// MemoryReader reads memory usage.
type MemoryReader interface {
	Read() (MemorySnapshot, bool)
}

// BatteryReader reads the primary battery.
type BatteryReader interface {
	Read() (BatterySnapshot, bool)
}

// Options holds the readers behind each metric. A nil reader leaves its
// metric permanently absent.
type Options struct {
	CPUTemp TemperatureReader
	GPUTemp TemperatureReader
	CPULoad LoadSampler
	GPULoad UtilizationProber
	Memory  MemoryReader
	Battery BatteryReader

	// TemperatureSource names the backend behind the temperature readers,
	// e.g. "smc" or "hwmon". Empty means none was found.
	TemperatureSource string

	// OnClose runs once when the monitor is closed.
	OnClose func()
}

// Monitor polls the enabled readers. Poll must not be called concurrently;
// callers serialize it on a single goroutine.
type Monitor struct {
	opts      Options
	closeOnce sync.Once
}

// New creates a monitor over explicit readers.
func New(opts Options) *Monitor {
	return &Monitor{opts: opts}
}

// Poll reads every enabled metric once. Disabled metrics are not read.
func (m *Monitor) Poll(enabled MetricSet) Snapshot {
	var s Snapshot
	o := &m.opts

	if enabled.Has(CPUTemp) && o.CPUTemp != nil {
		s.CPUTemp = optional[float64](o.CPUTemp.Read())
	}
	if enabled.Has(GPUTemp) && o.GPUTemp != nil {
		s.GPUTemp = optional[float64](o.GPUTemp.Read())
	}
	if enabled.Has(CPULoad) && o.CPULoad != nil {
		s.CPULoad = optional[float64](o.CPULoad.Sample())
	}
	if enabled.Has(GPULoad) && o.GPULoad != nil {
		s.GPULoad = optional[float64](o.GPULoad.Utilization())
	}
	if enabled.Has(Memory) && o.Memory != nil {
		s.Memory = optional[MemorySnapshot](o.Memory.Read())
	}
	if enabled.Has(Battery) && o.Battery != nil {
		s.Battery = optional[BatterySnapshot](o.Battery.Read())
	}

	log := logger.WithComponent("telemetry")
	if e := log.Debug(); e.Enabled() {
		e.Str("enabled", enabled.String()).
			Str("present", s.Present().String()).
			Msg("Poll completed")
	}
	return s
}

// Prime takes a CPU sample so that the first Poll measures load over the
// polling interval rather than since boot.
func (m *Monitor) Prime() {
	if m.opts.CPULoad != nil {
		m.opts.CPULoad.Sample()
	}
}

// TemperatureAvailable reports whether a hardware temperature source is open.
func (m *Monitor) TemperatureAvailable() bool {
	return m.opts.TemperatureSource != ""
}

// TemperatureSource names the temperature backend in use.
func (m *Monitor) TemperatureSource() string {
	return m.opts.TemperatureSource
}

// Close releases hardware handles. Only the first call has an effect.
func (m *Monitor) Close() {
	m.closeOnce.Do(func() {
		if m.opts.OnClose != nil {
			m.opts.OnClose()
		}
	})
}
