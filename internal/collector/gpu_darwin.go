//go:build darwin && cgo

package collector

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <stdlib.h>
#include <IOKit/IOKitLib.h>
#include <CoreFoundation/CoreFoundation.h>

typedef struct {
	char   key[128];
	double value;
	int    isFloat;
} perf_entry;

static kern_return_t accel_iterator(io_iterator_t *it) {
	return IOServiceGetMatchingServices(MACH_PORT_NULL, IOServiceMatching("IOAccelerator"), it);
}

// Copies numeric entries of the PerformanceStatistics dictionary into out.
// Returns the number of entries written, or -1 if the dictionary is absent.
static int accel_perf_stats(io_registry_entry_t entry, perf_entry *out, int max) {
	CFTypeRef ref = IORegistryEntryCreateCFProperty(entry, CFSTR("PerformanceStatistics"), kCFAllocatorDefault, 0);
	if (ref == NULL) {
		return -1;
	}
	if (CFGetTypeID(ref) != CFDictionaryGetTypeID()) {
		CFRelease(ref);
		return -1;
	}
	CFDictionaryRef dict = (CFDictionaryRef)ref;
	CFIndex n = CFDictionaryGetCount(dict);
	const void **keys = malloc(sizeof(void *) * n);
	const void **vals = malloc(sizeof(void *) * n);
	CFDictionaryGetKeysAndValues(dict, keys, vals);

	int w = 0;
	for (CFIndex i = 0; i < n && w < max; i++) {
		if (CFGetTypeID(keys[i]) != CFStringGetTypeID() || CFGetTypeID(vals[i]) != CFNumberGetTypeID()) {
			continue;
		}
		if (!CFStringGetCString((CFStringRef)keys[i], out[w].key, sizeof(out[w].key), kCFStringEncodingUTF8)) {
			continue;
		}
		CFNumberRef num = (CFNumberRef)vals[i];
		if (CFNumberIsFloatType(num)) {
			CFNumberGetValue(num, kCFNumberDoubleType, &out[w].value);
			out[w].isFloat = 1;
		} else {
			long long v = 0;
			CFNumberGetValue(num, kCFNumberLongLongType, &v);
			out[w].value = (double)v;
			out[w].isFloat = 0;
		}
		w++;
	}
	free(keys);
	free(vals);
	CFRelease(ref);
	return w;
}
*/
import "C"

import (
	"fmt"
)

const maxPerfEntries = 128

type iokitRegistry struct{}

// NewDeviceRegistry returns the IOKit IOAccelerator registry.
func NewDeviceRegistry() DeviceRegistry {
	return iokitRegistry{}
}

func (iokitRegistry) Accelerators() (DeviceIterator, error) {
	var it C.io_iterator_t
	if kr := C.accel_iterator(&it); kr != C.KERN_SUCCESS {
		return nil, fmt.Errorf("IOServiceGetMatchingServices IOAccelerator: kern_return 0x%x", uint32(kr))
	}
	return &iokitIterator{it: it}, nil
}

type iokitIterator struct {
	it C.io_iterator_t
}

func (i *iokitIterator) Next() (Device, bool) {
	entry := C.IOIteratorNext(i.it)
	if entry == 0 {
		return nil, false
	}
	return &iokitDevice{entry: entry}, true
}

func (i *iokitIterator) Release() {
	if i.it != 0 {
		C.IOObjectRelease(C.io_object_t(i.it))
		i.it = 0
	}
}

type iokitDevice struct {
	entry C.io_object_t
}

func (d *iokitDevice) PerformanceStatistics() (PropertyBag, bool) {
	var entries [maxPerfEntries]C.perf_entry
	n := int(C.accel_perf_stats(C.io_registry_entry_t(d.entry), &entries[0], maxPerfEntries))
	if n < 0 {
		return nil, false
	}
	bag := make(PropertyBag, n)
	for _, e := range entries[:n] {
		key := C.GoString(&e.key[0])
		if e.isFloat != 0 {
			bag[key] = float64(e.value)
		} else {
			bag[key] = int64(e.value)
		}
	}
	return bag, true
}

func (d *iokitDevice) Release() {
	if d.entry != 0 {
		C.IOObjectRelease(d.entry)
		d.entry = 0
	}
}
