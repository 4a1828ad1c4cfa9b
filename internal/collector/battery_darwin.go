//go:build darwin && cgo

package collector

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <IOKit/ps/IOPowerSources.h>
#include <IOKit/ps/IOPSKeys.h>
#include <CoreFoundation/CoreFoundation.h>

typedef struct {
	int  hasCapacity;
	int  capacity;
	int  hasCharging;
	int  charging;
	char state[64];
} ps_desc;

// Fills up to max descriptions. Returns the number of sources, or -1 on error.
static int power_sources(ps_desc *out, int max) {
	CFTypeRef info = IOPSCopyPowerSourcesInfo();
	if (info == NULL) {
		return -1;
	}
	CFArrayRef list = IOPSCopyPowerSourcesList(info);
	if (list == NULL) {
		CFRelease(info);
		return -1;
	}
	CFIndex n = CFArrayGetCount(list);
	int w = 0;
	for (CFIndex i = 0; i < n && w < max; i++) {
		CFDictionaryRef desc = IOPSGetPowerSourceDescription(info, CFArrayGetValueAtIndex(list, i));
		ps_desc *d = &out[w++];
		d->hasCapacity = 0;
		d->hasCharging = 0;
		d->state[0] = 0;
		if (desc == NULL) {
			continue;
		}
		CFTypeRef cap = CFDictionaryGetValue(desc, CFSTR(kIOPSCurrentCapacityKey));
		if (cap != NULL && CFGetTypeID(cap) == CFNumberGetTypeID()) {
			d->hasCapacity = CFNumberGetValue((CFNumberRef)cap, kCFNumberIntType, &d->capacity) ? 1 : 0;
		}
		CFTypeRef chg = CFDictionaryGetValue(desc, CFSTR(kIOPSIsChargingKey));
		if (chg != NULL && CFGetTypeID(chg) == CFBooleanGetTypeID()) {
			d->hasCharging = 1;
			d->charging = CFBooleanGetValue((CFBooleanRef)chg) ? 1 : 0;
		}
		CFTypeRef st = CFDictionaryGetValue(desc, CFSTR(kIOPSPowerSourceStateKey));
		if (st != NULL && CFGetTypeID(st) == CFStringGetTypeID()) {
			CFStringGetCString((CFStringRef)st, d->state, sizeof(d->state), kCFStringEncodingUTF8);
		}
	}
	CFRelease(list);
	CFRelease(info);
	return w;
}
*/
import "C"

import (
	"errors"
)

const maxPowerSources = 4

type iopsEnumerator struct{}

// NewPowerSourceEnumerator returns the IOKit power source enumerator.
func NewPowerSourceEnumerator() PowerSourceEnumerator {
	return iopsEnumerator{}
}

func (iopsEnumerator) PowerSources() ([]PowerSource, error) {
	var descs [maxPowerSources]C.ps_desc
	n := int(C.power_sources(&descs[0], maxPowerSources))
	if n < 0 {
		return nil, errors.New("IOPSCopyPowerSourcesInfo failed")
	}
	sources := make([]PowerSource, 0, n)
	for _, d := range descs[:n] {
		var ps PowerSource
		if d.hasCapacity != 0 {
			c := int(d.capacity)
			ps.Capacity = &c
		}
		if d.hasCharging != 0 {
			charging := d.charging != 0
			ps.IsCharging = &charging
		}
		ps.State = C.GoString(&d.state[0])
		sources = append(sources, ps)
	}
	return sources, nil
}
