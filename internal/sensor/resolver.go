// Package sensor discovers which hardware key reports a component's
// temperature and reads it on every poll.
package sensor

import (
	"siliconstats/internal/logger"
)

// Plausible readings lie strictly inside this range, in degrees Celsius.
// Unpopulated keys often read 0 or a saturated value.
const (
	MinPlausible = 20.0
	MaxPlausible = 110.0
)

// Source reads a temperature by key.
type Source interface {
	Temperature(key string) (float64, bool)
}

type state int

const (
	unresolved state = iota
	resolved
	failed
)

// Resolver picks one key out of a prioritized candidate list on first use
// and keeps reading that key for the life of the process. The choice,
// including a failure to find any key, is never revisited.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	name       string
	source     Source
	candidates []string

	state state
	key   string
}

// NewResolver creates a resolver for the named metric.
func NewResolver(name string, source Source, candidates []string) *Resolver {
	return &Resolver{
		name:       name,
		source:     source,
		candidates: candidates,
	}
}

// Read returns the current temperature of the resolved key. The first call
// probes every candidate and returns the winning reading.
func (r *Resolver) Read() (float64, bool) {
	switch r.state {
	case resolved:
		return r.source.Temperature(r.key)
	case failed:
		return 0, false
	}
	return r.resolve()
}

// Key returns the resolved key, if resolution has succeeded.
func (r *Resolver) Key() (string, bool) {
	return r.key, r.state == resolved
}

func (r *Resolver) resolve() (float64, bool) {
	log := logger.WithComponent("sensor")

	var (
		bestKey  string
		bestTemp float64
		found    bool
	)
	for _, key := range r.candidates {
		t, ok := r.source.Temperature(key)
		if !ok || t <= MinPlausible || t >= MaxPlausible {
			continue
		}
		// Strictly greater, so earlier candidates win ties.
		if !found || t > bestTemp {
			bestKey, bestTemp, found = key, t, true
		}
	}

	if !found {
		r.state = failed
		log.Warn().
			Str("metric", r.name).
			Int("candidates", len(r.candidates)).
			Msg("No plausible temperature key found, metric disabled")
		return 0, false
	}

	r.state = resolved
	r.key = bestKey
	log.Info().
		Str("metric", r.name).
		Str("key", bestKey).
		Float64("celsius", bestTemp).
		Msg("Temperature key resolved")
	return bestTemp, true
}
