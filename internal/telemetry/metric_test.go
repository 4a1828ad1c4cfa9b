package telemetry

import "testing"

func TestDefaultMetrics(t *testing.T) {
	want := NewMetricSet(CPUTemp, CPULoad)
	if got := DefaultMetrics(); got != want {
		t.Errorf("DefaultMetrics = %v, want %v", got, want)
	}
}

func TestParseMetricSet(t *testing.T) {
	tests := []struct {
		in      string
		want    MetricSet
		wantErr bool
	}{
		{"cpu_temp", NewMetricSet(CPUTemp), false},
		{"cpu_load, memory ,battery", NewMetricSet(CPULoad, Memory, Battery), false},
		{"GPU_LOAD", NewMetricSet(GPULoad), false},
		{"all", AllMetricSet(), false},
		{"", 0, false},
		{"fan_speed", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMetricSet(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMetricSet(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMetricSet(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMetricSet_Ops(t *testing.T) {
	s := NewMetricSet(GPUTemp).With(Battery)
	if !s.Has(GPUTemp) || !s.Has(Battery) || s.Has(CPUTemp) {
		t.Errorf("membership wrong: %v", s)
	}
	s = s.Without(GPUTemp)
	if s.Has(GPUTemp) {
		t.Error("Without did not remove")
	}
	if got := AllMetricSet().String(); got != "cpu_temp,gpu_temp,cpu_load,gpu_load,memory,battery" {
		t.Errorf("String = %q", got)
	}
}

func TestMetricLabels(t *testing.T) {
	for _, m := range AllMetrics() {
		if m.Label() == "" || m.Name() == "" {
			t.Errorf("metric %d missing name or label", m)
		}
		parsed, err := ParseMetric(m.Name())
		if err != nil || parsed != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m.Name(), parsed, err)
		}
	}
}
