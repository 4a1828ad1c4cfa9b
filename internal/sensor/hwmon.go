package sensor

import (
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shirou/gopsutil/v3/host"
)

// snapshotTTL bounds how long one sensor scan serves lookups. It is shorter
// than the minimum poll interval, so every poll sees a fresh scan.
const snapshotTTL = 250 * time.Millisecond

// Windows reports ACPI thermal zones by WMI instance name.
const windowsThermalZone = `acpi\thermalzone\`

// HwmonSource reads temperatures through gopsutil on hosts without an SMC.
// One scan of the host sensors serves every lookup made within snapshotTTL.
type HwmonSource struct {
	read  func() ([]host.TemperatureStat, error)
	clock clock.Clock

	mu      sync.Mutex
	temps   map[string]float64
	scanned time.Time
}

// NewHwmonSource creates a source backed by host.SensorsTemperatures.
func NewHwmonSource() *HwmonSource {
	return newHwmonSource(host.SensorsTemperatures, clock.New())
}

func newHwmonSource(read func() ([]host.TemperatureStat, error), clk clock.Clock) *HwmonSource {
	return &HwmonSource{read: read, clock: clk}
}

// Temperature returns the reading for a sensor key. Keys are matched
// without regard to case. Windows thermal zones are also reachable as
// "acpitz" (the first zone) and "acpitz_<zone>", e.g. "acpitz_cpuz" for
// ACPI\ThermalZone\CPUZ_0.
func (s *HwmonSource) Temperature(key string) (float64, bool) {
	t, ok := s.snapshot()[strings.ToLower(key)]
	return t, ok
}

// Covers reports whether the host exposes any of the given keys.
func (s *HwmonSource) Covers(keys []string) bool {
	temps := s.snapshot()
	for _, k := range keys {
		if _, ok := temps[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}

func (s *HwmonSource) snapshot() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.temps != nil && now.Sub(s.scanned) < snapshotTTL {
		return s.temps
	}

	stats, err := s.read()
	temps := make(map[string]float64, len(stats))
	if err == nil || len(stats) > 0 {
		for _, st := range stats {
			for _, k := range sensorKeys(st.SensorKey) {
				if _, dup := temps[k]; !dup {
					temps[k] = st.Temperature
				}
			}
		}
	}
	s.temps = temps
	s.scanned = now
	return temps
}

// sensorKeys returns the lookup keys for a gopsutil sensor key.
func sensorKeys(raw string) []string {
	key := strings.ToLower(raw)
	zone, ok := strings.CutPrefix(key, windowsThermalZone)
	if !ok {
		return []string{key}
	}
	if i := strings.LastIndexByte(zone, '_'); i > 0 {
		zone = zone[:i]
	}
	return []string{key, "acpitz", "acpitz_" + zone}
}
