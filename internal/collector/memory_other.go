//go:build !darwin || !cgo

package collector

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

type gopsutilMemorySource struct {
	virtualMemory func() (*mem.VirtualMemoryStat, error)
}

// NewMemorySource returns a memory source backed by gopsutil.
func NewMemorySource() MemorySource {
	return gopsutilMemorySource{virtualMemory: mem.VirtualMemory}
}

func (s gopsutilMemorySource) PhysicalMemory() (uint64, error) {
	vm, err := s.virtualMemory()
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.Total, nil
}

// PageStats reports active and wired memory in bytes, as one-byte pages.
// Wired is zero on platforms that do not report it.
func (s gopsutilMemorySource) PageStats() (PageStats, error) {
	vm, err := s.virtualMemory()
	if err != nil {
		return PageStats{}, fmt.Errorf("virtual memory: %w", err)
	}
	return PageStats{Active: vm.Active, Wired: vm.Wired, PageSize: 1}, nil
}
