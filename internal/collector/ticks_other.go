//go:build !darwin || !cgo

package collector

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
)

// gopsutil reports CPU time in seconds derived from USER_HZ ticks.
const ticksPerSecond = 100

type gopsutilTickSource struct {
	times func(percpu bool) ([]cpu.TimesStat, error)
}

// NewTickSource returns a tick source backed by gopsutil cpu.Times.
func NewTickSource() TickSource {
	return gopsutilTickSource{times: cpu.Times}
}

func (s gopsutilTickSource) ProcessorTicks() ([]TickCounters, error) {
	times, err := s.times(true)
	if err != nil {
		return nil, fmt.Errorf("cpu times: %w", err)
	}
	ticks := make([]TickCounters, len(times))
	for i, t := range times {
		ticks[i] = TickCounters{
			User:   toTicks(t.User),
			System: toTicks(t.System + t.Irq + t.Softirq),
			Idle:   toTicks(t.Idle + t.Iowait),
			Nice:   toTicks(t.Nice),
		}
	}
	return ticks, nil
}

func toTicks(seconds float64) uint64 {
	return uint64(seconds*ticksPerSecond + 0.5)
}
