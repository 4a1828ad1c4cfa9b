package telemetry

import (
	"encoding/json"
	"strings"
	"testing"

	"siliconstats/internal/collector"
	"siliconstats/internal/logger"
	"siliconstats/internal/sensor"
)

func init() {
	_ = logger.Init(logger.Config{Level: "disabled"})
}

type fakeTemp struct {
	value float64
	ok    bool
	calls int
}

func (f *fakeTemp) Read() (float64, bool) { f.calls++; return f.value, f.ok }

type fakeTicks struct {
	samples [][]collector.TickCounters
	calls   int
}

func (f *fakeTicks) ProcessorTicks() ([]collector.TickCounters, error) {
	s := f.samples[f.calls]
	if f.calls < len(f.samples)-1 {
		f.calls++
	}
	return s, nil
}

type fakeGPU struct{ calls int }

func (f *fakeGPU) Utilization() (float64, bool) { f.calls++; return 40, true }

type fakeMem struct{ calls int }

func (f *fakeMem) Read() (MemorySnapshot, bool) {
	f.calls++
	return MemorySnapshot{UsedGB: 6, TotalGB: 16}, true
}

type fakeBattery struct {
	calls int
	ok    bool
}

func (f *fakeBattery) Read() (BatterySnapshot, bool) {
	f.calls++
	return BatterySnapshot{Percentage: 90, IsPluggedIn: true}, f.ok
}

type fixture struct {
	cpuTemp, gpuTemp *fakeTemp
	ticks            *fakeTicks
	gpu              *fakeGPU
	mem              *fakeMem
	battery          *fakeBattery
	monitor          *Monitor
}

func newFixture() *fixture {
	f := &fixture{
		cpuTemp: &fakeTemp{value: 55, ok: true},
		gpuTemp: &fakeTemp{value: 48, ok: true},
		ticks: &fakeTicks{samples: [][]collector.TickCounters{
			{{User: 5, System: 2, Idle: 40}, {User: 5, System: 3, Idle: 45}},
		}},
		gpu:     &fakeGPU{},
		mem:     &fakeMem{},
		battery: &fakeBattery{ok: true},
	}
	f.monitor = New(Options{
		CPUTemp:           f.cpuTemp,
		GPUTemp:           f.gpuTemp,
		CPULoad:           collector.NewCPULoadSampler(f.ticks),
		GPULoad:           f.gpu,
		Memory:            f.mem,
		Battery:           f.battery,
		TemperatureSource: "smc",
	})
	return f
}

func TestPoll_OnlyCPULoad(t *testing.T) {
	f := newFixture()

	s := f.monitor.Poll(NewMetricSet(CPULoad))

	if s.CPULoad == nil {
		t.Fatal("CPULoad absent")
	}
	// (10+5)/(10+5+85)
	if *s.CPULoad != 15 {
		t.Errorf("CPULoad = %v, want 15", *s.CPULoad)
	}
	if got := s.Present(); got != NewMetricSet(CPULoad) {
		t.Errorf("Present = %v, want cpu_load", got)
	}
	if f.cpuTemp.calls+f.gpuTemp.calls+f.gpu.calls+f.mem.calls+f.battery.calls != 0 {
		t.Error("disabled readers were called")
	}
}

func TestPoll_AllMetrics(t *testing.T) {
	f := newFixture()

	s := f.monitor.Poll(AllMetricSet())

	if s.Present() != AllMetricSet() {
		t.Fatalf("Present = %v, want all", s.Present())
	}
	if *s.CPUTemp != 55 || *s.GPUTemp != 48 || *s.GPULoad != 40 {
		t.Errorf("unexpected values: %+v", s)
	}
	if s.Memory.UsedGB != 6 || s.Battery.Percentage != 90 {
		t.Errorf("unexpected memory/battery: %+v %+v", *s.Memory, *s.Battery)
	}
}

func TestPoll_AbsentReadingsAreNil(t *testing.T) {
	f := newFixture()
	f.gpuTemp.ok = false
	f.battery.ok = false

	s := f.monitor.Poll(AllMetricSet())

	if s.GPUTemp != nil || s.Battery != nil {
		t.Errorf("failed readings should be nil: %+v", s)
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "gpu_temp") || strings.Contains(string(data), "battery") {
		t.Errorf("absent fields serialized: %s", data)
	}
}

func TestPoll_ZeroIsNotAbsent(t *testing.T) {
	m := New(Options{GPULoad: zeroGPU{}})
	s := m.Poll(NewMetricSet(GPULoad))
	if s.GPULoad == nil || *s.GPULoad != 0 {
		t.Fatalf("GPULoad = %v, want pointer to 0", s.GPULoad)
	}
	data, _ := json.Marshal(s)
	if string(data) != `{"gpu_load":0}` {
		t.Errorf("json = %s", data)
	}
}

type zeroGPU struct{}

func (zeroGPU) Utilization() (float64, bool) { return 0, true }

func TestPoll_NilReaders(t *testing.T) {
	m := New(Options{})
	if s := m.Poll(AllMetricSet()); s.Present() != 0 {
		t.Errorf("Present = %v, want empty", s.Present())
	}
	if m.TemperatureAvailable() {
		t.Error("TemperatureAvailable without a source")
	}
}

func TestPoll_DisabledDebugBuildsNoSummary(t *testing.T) {
	m := New(Options{})
	all := AllMetricSet()

	base := testing.AllocsPerRun(100, func() {
		l := logger.WithComponent("telemetry")
		_ = l
	})
	got := testing.AllocsPerRun(100, func() {
		m.Poll(all)
	})
	if got > base {
		t.Errorf("Poll allocs = %v, want at most %v with debug logging off", got, base)
	}
}

func TestPrime_EstablishesBaseline(t *testing.T) {
	ticks := &fakeTicks{samples: [][]collector.TickCounters{
		{{User: 1000, System: 500, Idle: 8500}},
		{{User: 1010, System: 505, Idle: 8585}},
	}}
	m := New(Options{CPULoad: collector.NewCPULoadSampler(ticks)})

	m.Prime()
	s := m.Poll(NewMetricSet(CPULoad))
	if s.CPULoad == nil || *s.CPULoad != 15 {
		t.Fatalf("CPULoad = %v, want 15", s.CPULoad)
	}
}

func TestPoll_ResolverIntegration(t *testing.T) {
	src := mapSource{"TC0D": 150, "TC0E": 45, "TC0F": 60}
	m := New(Options{
		CPUTemp: sensor.NewResolver("cpu_temp", src, []string{"TC0D", "TC0E", "TC0F", "TC0P"}),
	})
	s := m.Poll(NewMetricSet(CPUTemp))
	if s.CPUTemp == nil || *s.CPUTemp != 60 {
		t.Fatalf("CPUTemp = %v, want 60", s.CPUTemp)
	}
}

type mapSource map[string]float64

func (m mapSource) Temperature(key string) (float64, bool) {
	v, ok := m[key]
	return v, ok
}

func TestClose_Once(t *testing.T) {
	closes := 0
	m := New(Options{OnClose: func() { closes++ }})
	m.Close()
	m.Close()
	if closes != 1 {
		t.Errorf("OnClose ran %d times, want 1", closes)
	}
}
