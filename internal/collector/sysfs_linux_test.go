//go:build linux

package collector

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAttr(t *testing.T, dir, name, value string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSysfsRegistry_GPUBusyPercent(t *testing.T) {
	root := t.TempDir()
	writeAttr(t, filepath.Join(root, "card0", "device"), "vendor", "0x8086")
	writeAttr(t, filepath.Join(root, "card1", "device"), "gpu_busy_percent", "23")
	writeAttr(t, filepath.Join(root, "card1-DP-1"), "status", "connected")

	got, ok := NewGPUProber(sysfsRegistry{root: root}).Utilization()
	if !ok || got != 23 {
		t.Fatalf("Utilization = %v, %v; want 23, true", got, ok)
	}
}

func TestSysfsRegistry_NoCards(t *testing.T) {
	if _, ok := NewGPUProber(sysfsRegistry{root: t.TempDir()}).Utilization(); ok {
		t.Error("Utilization should fail without DRM cards")
	}
}

func TestSysfsPowerSupply(t *testing.T) {
	root := t.TempDir()
	writeAttr(t, filepath.Join(root, "AC"), "type", "Mains")
	writeAttr(t, filepath.Join(root, "AC"), "online", "1")
	bat := filepath.Join(root, "BAT0")
	writeAttr(t, bat, "type", "Battery")
	writeAttr(t, bat, "capacity", "67")
	writeAttr(t, bat, "status", "Charging")

	got, ok := NewBatteryReader(sysfsPowerSupply{root: root}).Read()
	if !ok {
		t.Fatal("Read failed")
	}
	want := BatteryStatus{Percentage: 67, IsCharging: true, IsPluggedIn: true}
	if got != want {
		t.Errorf("Read = %+v, want %+v", got, want)
	}
}

func TestSysfsPowerSupply_DesktopWithoutBattery(t *testing.T) {
	root := t.TempDir()
	writeAttr(t, filepath.Join(root, "AC"), "type", "Mains")
	writeAttr(t, filepath.Join(root, "AC"), "online", "1")

	if _, ok := NewBatteryReader(sysfsPowerSupply{root: root}).Read(); ok {
		t.Error("Read should report no battery")
	}
}

func TestSysfsPowerSupply_MissingRoot(t *testing.T) {
	src := sysfsPowerSupply{root: filepath.Join(t.TempDir(), "missing")}
	sources, err := src.PowerSources()
	if err != nil || len(sources) != 0 {
		t.Errorf("PowerSources = %v, %v; want none, nil", sources, err)
	}
}
