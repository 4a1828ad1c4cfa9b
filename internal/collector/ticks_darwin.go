//go:build darwin && cgo

package collector

/*
#include <mach/mach.h>
#include <mach/processor_info.h>
#include <mach/mach_host.h>

static kern_return_t cpu_load_info(natural_t *count, processor_info_array_t *info, mach_msg_type_number_t *infoCount) {
	return host_processor_info(mach_host_self(), PROCESSOR_CPU_LOAD_INFO, count, info, infoCount);
}

static void cpu_load_free(processor_info_array_t info, mach_msg_type_number_t infoCount) {
	vm_deallocate(mach_task_self(), (vm_address_t)info, infoCount * sizeof(integer_t));
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type machTickSource struct{}

// NewTickSource returns the mach host_processor_info tick source.
func NewTickSource() TickSource {
	return machTickSource{}
}

func (machTickSource) ProcessorTicks() ([]TickCounters, error) {
	var (
		count     C.natural_t
		info      C.processor_info_array_t
		infoCount C.mach_msg_type_number_t
	)
	if kr := C.cpu_load_info(&count, &info, &infoCount); kr != C.KERN_SUCCESS {
		return nil, fmt.Errorf("host_processor_info: kern_return %d", int(kr))
	}
	defer C.cpu_load_free(info, infoCount)

	raw := unsafe.Slice((*C.integer_t)(unsafe.Pointer(info)), int(infoCount))
	const states = C.CPU_STATE_MAX
	ticks := make([]TickCounters, int(count))
	for i := range ticks {
		base := i * states
		// Counters are unsigned 32-bit values stored in integer_t slots.
		ticks[i] = TickCounters{
			User:   uint64(uint32(raw[base+C.CPU_STATE_USER])),
			System: uint64(uint32(raw[base+C.CPU_STATE_SYSTEM])),
			Idle:   uint64(uint32(raw[base+C.CPU_STATE_IDLE])),
			Nice:   uint64(uint32(raw[base+C.CPU_STATE_NICE])),
		}
	}
	return ticks, nil
}
