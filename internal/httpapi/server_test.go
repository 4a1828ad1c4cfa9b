package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"siliconstats/internal/logger"
	"siliconstats/internal/sender"
	"siliconstats/internal/telemetry"
)

func init() {
	_ = logger.Init(logger.Config{Level: "disabled"})
}

func newTestServer(t *testing.T) (*httptest.Server, *sender.Latest) {
	t.Helper()
	latest := sender.NewLatest()
	enabled := telemetry.NewMetricSet(telemetry.CPULoad, telemetry.Memory)
	srv := NewServer(latest, func() telemetry.MetricSet { return enabled }, "1.2.3")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, latest
}

func get(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	var body map[string]string
	if code := get(t, ts.URL+"/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" || body["version"] != "1.2.3" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestSnapshot_BeforeFirstPoll(t *testing.T) {
	ts, _ := newTestServer(t)
	var body map[string]string
	if code := get(t, ts.URL+"/api/snapshot", &body); code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", code)
	}
	if body["error"] == "" {
		t.Error("expected error message")
	}
}

func TestSnapshot_ServesLatest(t *testing.T) {
	ts, latest := newTestServer(t)
	load := 0.0
	r := sender.NewReport(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "agent-1", "mac-01", telemetry.Snapshot{
		CPULoad: &load,
		Memory:  &telemetry.MemorySnapshot{UsedGB: 3, TotalGB: 8},
	})
	_ = latest.Send(context.Background(), r)

	var body struct {
		AgentID  string                    `json:"agent_id"`
		Snapshot map[string]json.RawMessage `json:"snapshot"`
	}
	if code := get(t, ts.URL+"/api/snapshot", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.AgentID != "agent-1" {
		t.Errorf("agent_id = %q", body.AgentID)
	}
	if string(body.Snapshot["cpu_load"]) != "0" {
		t.Errorf("cpu_load = %s, want 0", body.Snapshot["cpu_load"])
	}
	if _, ok := body.Snapshot["cpu_temp"]; ok {
		t.Error("absent cpu_temp should be omitted")
	}
}

func TestMetrics(t *testing.T) {
	ts, _ := newTestServer(t)
	var body []metricInfo
	if code := get(t, ts.URL+"/api/metrics", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(body) != len(telemetry.AllMetrics()) {
		t.Fatalf("got %d metrics, want %d", len(body), len(telemetry.AllMetrics()))
	}
	want := map[string]bool{"cpu_load": true, "memory": true}
	for _, m := range body {
		if m.Enabled != want[m.Name] {
			t.Errorf("%s enabled = %v", m.Name, m.Enabled)
		}
		if m.Label == "" {
			t.Errorf("%s has no label", m.Name)
		}
	}
}

func TestStartShutdown(t *testing.T) {
	srv := NewServer(sender.NewLatest(), telemetry.DefaultMetrics, "dev")
	if err := srv.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}
