package sender

import (
	"testing"
	"time"

	"siliconstats/internal/telemetry"
)

func TestFormatTextTimestamp(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 7000000, time.UTC)
	if got := FormatTextTimestamp(ts); got != "2026-01-02 03:04:05,007" {
		t.Errorf("FormatTextTimestamp() = %q", got)
	}
}

func TestRowString_NoScientificNotation(t *testing.T) {
	r := Row{Timestamp: testTimestamp, Host: "h", Category: "memory", Metric: "total_gb", Value: 1e-7}
	want := "2026-02-24 10:30:45,123 host:h,category:memory,metric:total_gb,value:0.0000001"
	if got := r.String(); got != want {
		t.Errorf("String()\n got %q\nwant %q", got, want)
	}
}

func TestReportRows(t *testing.T) {
	tests := []struct {
		name string
		snap telemetry.Snapshot
		want []string // category.metric=value
	}{
		{
			name: "empty snapshot",
			snap: telemetry.Snapshot{},
			want: nil,
		},
		{
			name: "gpu only",
			snap: telemetry.Snapshot{GPUTemp: f64(48), GPULoad: f64(0)},
			want: []string{"gpu.temperature_c=48", "gpu.used_pct=0"},
		},
		{
			name: "battery flags",
			snap: telemetry.Snapshot{Battery: &telemetry.BatterySnapshot{Percentage: 55, IsCharging: true, IsPluggedIn: true}},
			want: []string{"battery.charge_pct=55", "battery.charging=1", "battery.plugged_in=1"},
		},
		{
			name: "memory",
			snap: telemetry.Snapshot{Memory: &telemetry.MemorySnapshot{UsedGB: 4.25, TotalGB: 8}},
			want: []string{"memory.used_gb=4.25", "memory.total_gb=8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ReportRows(NewReport(testTimestamp, "a", "h", tt.snap))
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.want))
			}
			for i, row := range rows {
				got := row.Category + "." + row.Metric + "=" + formatValue(row.Value)
				if got != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}
