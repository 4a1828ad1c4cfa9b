package sender

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectGauges(t *testing.T, reader *sdkmetric.ManualReader) map[string]float64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	out := map[string]float64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			g, ok := m.Data.(metricdata.Gauge[float64])
			if !ok || len(g.DataPoints) == 0 {
				continue
			}
			out[m.Name] = g.DataPoints[0].Value
		}
	}
	return out
}

func TestOTelSender_ObservesLatestReport(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	s, err := newOTelSender(reader, nil)
	if err != nil {
		t.Fatalf("newOTelSender failed: %v", err)
	}
	defer s.Close()

	if got := collectGauges(t, reader); len(got) != 0 {
		t.Errorf("expected no data points before first report, got %v", got)
	}

	if err := s.Send(context.Background(), testReport()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	got := collectGauges(t, reader)

	want := map[string]float64{
		"siliconstats.cpu.temperature": 61.5,
		"siliconstats.cpu.utilization": 12.25,
		"siliconstats.memory.used":     9.5,
		"siliconstats.memory.total":    16,
		"siliconstats.battery.charge":  80,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %v, want %v", name, got[name], v)
		}
	}
	if _, ok := got["siliconstats.gpu.temperature"]; ok {
		t.Error("absent gpu temperature should not be observed")
	}
}
