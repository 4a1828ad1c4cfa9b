package collector

import (
	"errors"
	"testing"
)

type fakeDevice struct {
	stats    PropertyBag
	hasStats bool
	released int
}

func (d *fakeDevice) PerformanceStatistics() (PropertyBag, bool) {
	return d.stats, d.hasStats
}

func (d *fakeDevice) Release() { d.released++ }

type fakeIterator struct {
	*sliceIterator
	released int
}

func (it *fakeIterator) Release() {
	it.released++
	it.sliceIterator.Release()
}

type fakeRegistry struct {
	devices []*fakeDevice
	err     error
	it      *fakeIterator
}

func (r *fakeRegistry) Accelerators() (DeviceIterator, error) {
	if r.err != nil {
		return nil, r.err
	}
	devs := make([]Device, len(r.devices))
	for i, d := range r.devices {
		devs[i] = d
	}
	r.it = &fakeIterator{sliceIterator: newSliceIterator(devs)}
	return r.it, nil
}

func TestGPUProber_Utilization(t *testing.T) {
	tests := []struct {
		name    string
		devices []*fakeDevice
		want    float64
		wantOK  bool
	}{
		{
			name: "integer device utilization",
			devices: []*fakeDevice{
				{hasStats: true, stats: PropertyBag{"Device Utilization %": int64(37)}},
			},
			want: 37, wantOK: true,
		},
		{
			name: "float value",
			devices: []*fakeDevice{
				{hasStats: true, stats: PropertyBag{"GPU Activity(%)": 12.5}},
			},
			want: 12.5, wantOK: true,
		},
		{
			name: "key order wins over map contents",
			devices: []*fakeDevice{
				{hasStats: true, stats: PropertyBag{
					"gpuCoreUtilizationPercent": int64(90),
					"GPU Core Utilization":      int64(20),
				}},
			},
			want: 20, wantOK: true,
		},
		{
			name: "out of range value falls through to next key",
			devices: []*fakeDevice{
				{hasStats: true, stats: PropertyBag{
					"Device Utilization %": int64(4096),
					"GPU Activity(%)":      int64(8),
				}},
			},
			want: 8, wantOK: true,
		},
		{
			name: "first device without stats is skipped",
			devices: []*fakeDevice{
				{hasStats: false},
				{hasStats: true, stats: PropertyBag{"In use system memory": int64(1 << 30)}},
				{hasStats: true, stats: PropertyBag{"Device Utilization %": int64(64)}},
			},
			want: 64, wantOK: true,
		},
		{
			name: "non numeric value",
			devices: []*fakeDevice{
				{hasStats: true, stats: PropertyBag{"Device Utilization %": "high"}},
			},
			wantOK: false,
		},
		{
			name:   "no devices",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &fakeRegistry{devices: tt.devices}
			got, ok := NewGPUProber(reg).Utilization()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Utilization = %v, want %v", got, tt.want)
			}
			for i, d := range tt.devices {
				if d.released != 1 {
					t.Errorf("device %d released %d times, want 1", i, d.released)
				}
			}
			if reg.it.released != 1 {
				t.Errorf("iterator released %d times, want 1", reg.it.released)
			}
		})
	}
}

func TestGPUProber_RegistryError(t *testing.T) {
	reg := &fakeRegistry{err: errors.New("no matching services")}
	if _, ok := NewGPUProber(reg).Utilization(); ok {
		t.Error("Utilization should fail when the registry cannot be enumerated")
	}
}

func TestPercentValue(t *testing.T) {
	tests := []struct {
		raw    any
		want   float64
		wantOK bool
	}{
		{int(0), 0, true},
		{int32(100), 100, true},
		{uint64(55), 55, true},
		{float32(99.5), 99.5, true},
		{-1.0, 0, false},
		{100.01, 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := percentValue(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("percentValue(%v) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
