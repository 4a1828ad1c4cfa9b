package collector

import (
	"errors"
	"testing"
)

type fakePower struct {
	sources []PowerSource
	err     error
}

func (f fakePower) PowerSources() ([]PowerSource, error) {
	return f.sources, f.err
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestBatteryReader_Read(t *testing.T) {
	tests := []struct {
		name    string
		sources []PowerSource
		err     error
		want    BatteryStatus
		wantOK  bool
	}{
		{
			name:    "charging on AC",
			sources: []PowerSource{{Capacity: intPtr(80), IsCharging: boolPtr(true), State: ACPower}},
			want:    BatteryStatus{Percentage: 80, IsCharging: true, IsPluggedIn: true},
			wantOK:  true,
		},
		{
			name:    "on battery",
			sources: []PowerSource{{Capacity: intPtr(42), IsCharging: boolPtr(false), State: BatteryPower}},
			want:    BatteryStatus{Percentage: 42},
			wantOK:  true,
		},
		{
			name:    "missing state means not plugged in",
			sources: []PowerSource{{Capacity: intPtr(100), IsCharging: boolPtr(false)}},
			want:    BatteryStatus{Percentage: 100},
			wantOK:  true,
		},
		{
			name: "only the first source counts",
			sources: []PowerSource{
				{Capacity: intPtr(10), IsCharging: boolPtr(false), State: BatteryPower},
				{Capacity: intPtr(99), IsCharging: boolPtr(true), State: ACPower},
			},
			want:   BatteryStatus{Percentage: 10},
			wantOK: true,
		},
		{name: "no power source", wantOK: false},
		{
			name:    "missing capacity",
			sources: []PowerSource{{IsCharging: boolPtr(true), State: ACPower}},
			wantOK:  false,
		},
		{
			name:    "missing charging flag",
			sources: []PowerSource{{Capacity: intPtr(50), State: ACPower}},
			wantOK:  false,
		},
		{name: "enumeration error", err: errors.New("IOPS failed"), wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewBatteryReader(fakePower{sources: tt.sources, err: tt.err}).Read()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Read = %+v, want %+v", got, tt.want)
			}
		})
	}
}
