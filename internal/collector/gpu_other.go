//go:build (darwin && !cgo) || (!darwin && !linux && !windows)

package collector

type emptyRegistry struct{}

// NewDeviceRegistry returns a registry with no accelerators.
func NewDeviceRegistry() DeviceRegistry {
	return emptyRegistry{}
}

func (emptyRegistry) Accelerators() (DeviceIterator, error) {
	return newSliceIterator(nil), nil
}
