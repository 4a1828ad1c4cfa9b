// Package collector reads raw host statistics (CPU ticks, GPU registry
// properties, VM page counts, power sources) and turns them into the
// values reported in a telemetry snapshot.
//
// Each reader is backed by a small source interface with a per-platform
// implementation, so the arithmetic can be tested without the hardware.
package collector

// bytesPerGB is the binary gigabyte used for memory figures.
const bytesPerGB = 1 << 30

// sliceIterator walks a fixed list of devices.
type sliceIterator struct {
	devices []Device
	next    int
}

func newSliceIterator(devices []Device) *sliceIterator {
	return &sliceIterator{devices: devices}
}

func (it *sliceIterator) Next() (Device, bool) {
	if it.next >= len(it.devices) {
		return nil, false
	}
	d := it.devices[it.next]
	it.next++
	return d, true
}

func (it *sliceIterator) Release() {
	for ; it.next < len(it.devices); it.next++ {
		it.devices[it.next].Release()
	}
}
