//go:build (darwin && !cgo) || (!darwin && !linux && !windows)

package collector

type noPowerSources struct{}

// NewPowerSourceEnumerator returns an enumerator that reports no sources.
func NewPowerSourceEnumerator() PowerSourceEnumerator {
	return noPowerSources{}
}

func (noPowerSources) PowerSources() ([]PowerSource, error) {
	return nil, nil
}
