//go:build !darwin || !cgo

package collector

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/mem"
)

func TestGopsutilMemorySource(t *testing.T) {
	src := gopsutilMemorySource{virtualMemory: func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{
			Total:  8 * bytesPerGB,
			Active: 3 * bytesPerGB,
			Wired:  bytesPerGB,
			Used:   6 * bytesPerGB,
		}, nil
	}}

	r := NewMemoryReader(src)
	got, ok := r.Read()
	if !ok {
		t.Fatal("expected memory reading")
	}
	if got.TotalGB != 8 || got.UsedGB != 4 {
		t.Errorf("got %+v, want used 4 total 8", got)
	}
}

func TestGopsutilMemorySource_Error(t *testing.T) {
	src := gopsutilMemorySource{virtualMemory: func() (*mem.VirtualMemoryStat, error) {
		return nil, errors.New("no /proc")
	}}
	if _, err := src.PhysicalMemory(); err == nil {
		t.Error("expected PhysicalMemory error")
	}
	if _, err := src.PageStats(); err == nil {
		t.Error("expected PageStats error")
	}
}
