package sender

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"siliconstats/internal/config"
	"siliconstats/internal/logger"
	"siliconstats/internal/telemetry"
)

func init() {
	_ = logger.Init(logger.Config{Level: "disabled"})
}

var testTimestamp = time.Date(2026, 2, 24, 10, 30, 45, 123000000, time.UTC)

func f64(v float64) *float64 { return &v }

func testReport() *Report {
	return NewReport(testTimestamp, "agent-1", "mac-01", telemetry.Snapshot{
		CPUTemp: f64(61.5),
		CPULoad: f64(12.25),
		Memory:  &telemetry.MemorySnapshot{UsedGB: 9.5, TotalGB: 16},
		Battery: &telemetry.BatterySnapshot{Percentage: 80, IsPluggedIn: true},
	})
}

func tempFileConfig(t *testing.T, format string) config.FileConfig {
	t.Helper()
	dir := t.TempDir()
	return config.FileConfig{
		FilePath:   filepath.Join(dir, "metrics.log"),
		MaxSizeMB:  10,
		MaxBackups: 1,
		Format:     format,
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestNewFileSender_DefaultFormat(t *testing.T) {
	s, err := NewFileSender(tempFileConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()
	if s.format != "json" {
		t.Errorf("expected default format 'json', got %q", s.format)
	}
}

func TestNewFileSender_InvalidFormat(t *testing.T) {
	_, err := NewFileSender(tempFileConfig(t, "xml"))
	if err == nil {
		t.Fatal("expected error for invalid format, got nil")
	}
	if !strings.Contains(err.Error(), "unsupported file format") {
		t.Errorf("expected 'unsupported file format' error, got: %v", err)
	}
}

func TestNewFileSender_MissingPath(t *testing.T) {
	if _, err := NewFileSender(config.FileConfig{Format: "json"}); err == nil {
		t.Fatal("expected error for empty FilePath")
	}
}

func TestFileSender_Send_JSONFormat(t *testing.T) {
	cfg := tempFileConfig(t, "json")
	s, err := NewFileSender(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Send(context.Background(), testReport()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := s.Send(context.Background(), testReport()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	s.Close()

	lines := readLines(t, cfg.FilePath)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if got["agent_id"] != "agent-1" || got["hostname"] != "mac-01" {
		t.Errorf("unexpected identity fields: %v", got)
	}
	snap, ok := got["snapshot"].(map[string]any)
	if !ok {
		t.Fatalf("snapshot missing: %v", got)
	}
	if snap["cpu_temp"] != 61.5 {
		t.Errorf("cpu_temp = %v, want 61.5", snap["cpu_temp"])
	}
	if _, present := snap["gpu_temp"]; present {
		t.Error("absent gpu_temp should be omitted")
	}
}

func TestFileSender_Send_TextFormat(t *testing.T) {
	cfg := tempFileConfig(t, "text")
	s, err := NewFileSender(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Send(context.Background(), testReport()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	s.Close()

	lines := readLines(t, cfg.FilePath)
	// cpu temp, cpu load, memory x2, battery x3
	if len(lines) != 7 {
		t.Fatalf("expected 7 rows, got %d: %v", len(lines), lines)
	}
	want := "2026-02-24 10:30:45,123 host:mac-01,category:cpu,metric:temperature_c,value:61.5"
	if lines[0] != want {
		t.Errorf("line 0:\n got %q\nwant %q", lines[0], want)
	}
}

func TestFileSender_SendAfterClose(t *testing.T) {
	s, err := NewFileSender(tempFileConfig(t, "json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if err := s.Send(context.Background(), testReport()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
