//go:build darwin && cgo

package collector

/*
#include <mach/mach.h>
#include <mach/mach_host.h>

static kern_return_t vm_pages(uint64_t *active, uint64_t *wired, uint64_t *compressed, uint64_t *pageSize) {
	vm_statistics64_data_t stats;
	mach_msg_type_number_t count = HOST_VM_INFO64_COUNT;
	kern_return_t kr = host_statistics64(mach_host_self(), HOST_VM_INFO64, (host_info64_t)&stats, &count);
	if (kr != KERN_SUCCESS) {
		return kr;
	}
	*active = stats.active_count;
	*wired = stats.wire_count;
	*compressed = stats.compressor_page_count;
	*pageSize = vm_kernel_page_size;
	return KERN_SUCCESS;
}
*/
import "C"

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type machMemorySource struct{}

// NewMemorySource returns the sysctl and host_statistics64 memory source.
func NewMemorySource() MemorySource {
	return machMemorySource{}
}

func (machMemorySource) PhysicalMemory() (uint64, error) {
	total, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, fmt.Errorf("sysctl hw.memsize: %w", err)
	}
	return total, nil
}

func (machMemorySource) PageStats() (PageStats, error) {
	var active, wired, compressed, pageSize C.uint64_t
	if kr := C.vm_pages(&active, &wired, &compressed, &pageSize); kr != C.KERN_SUCCESS {
		return PageStats{}, fmt.Errorf("host_statistics64: kern_return %d", int(kr))
	}
	return PageStats{
		Active:     uint64(active),
		Wired:      uint64(wired),
		Compressed: uint64(compressed),
		PageSize:   uint64(pageSize),
	}, nil
}
