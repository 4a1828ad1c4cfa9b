package collector

import (
	"siliconstats/internal/logger"
)

// TickCounters are cumulative scheduler ticks per CPU state since boot.
type TickCounters struct {
	User   uint64
	System uint64
	Idle   uint64
	Nice   uint64
}

// Total returns the sum of all states.
func (t TickCounters) Total() uint64 {
	return t.User + t.System + t.Idle + t.Nice
}

func (t TickCounters) add(o TickCounters) TickCounters {
	return TickCounters{
		User:   t.User + o.User,
		System: t.System + o.System,
		Idle:   t.Idle + o.Idle,
		Nice:   t.Nice + o.Nice,
	}
}

// TickSource returns per-processor tick counters.
type TickSource interface {
	ProcessorTicks() ([]TickCounters, error)
}

// CPULoadSampler computes CPU load from the change in tick counters
// between consecutive calls. It is not safe for concurrent use.
type CPULoadSampler struct {
	source TickSource
	prev   TickCounters
}

// NewCPULoadSampler creates a sampler with an all-zero baseline, so the
// first Sample reports the average load since boot.
func NewCPULoadSampler(source TickSource) *CPULoadSampler {
	return &CPULoadSampler{source: source}
}

// Sample returns the busy percentage since the previous call.
//
// It reports false when the counters cannot be read, in which case the
// baseline is kept, or when any counter went backwards, in which case the
// new counters still become the baseline.
func (s *CPULoadSampler) Sample() (float64, bool) {
	perCPU, err := s.source.ProcessorTicks()
	if err != nil {
		log := logger.WithComponent("cpu-load")
		log.Debug().Err(err).Msg("Failed to read processor ticks")
		return 0, false
	}

	var cur TickCounters
	for _, t := range perCPU {
		cur = cur.add(t)
	}
	prev := s.prev
	s.prev = cur

	if cur.User < prev.User || cur.System < prev.System ||
		cur.Idle < prev.Idle || cur.Nice < prev.Nice {
		log := logger.WithComponent("cpu-load")
		log.Warn().Msg("Processor tick counters went backwards, skipping sample")
		return 0, false
	}

	user := cur.User - prev.User
	system := cur.System - prev.System
	nice := cur.Nice - prev.Nice
	total := cur.Total() - prev.Total()
	if total == 0 {
		return 0, true
	}
	return float64(user+system+nice) / float64(total) * 100, true
}
