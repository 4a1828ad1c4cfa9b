// Package telemetry aggregates the hardware readers into one snapshot per poll.
package telemetry

import (
	"fmt"
	"strings"
)

// Metric identifies one reading a poll can produce.
type Metric uint8

const (
	CPUTemp Metric = iota
	GPUTemp
	CPULoad
	GPULoad
	Memory
	Battery

	numMetrics
)

type metricInfo struct {
	name           string
	label          string
	defaultEnabled bool
}

var metricTable = [numMetrics]metricInfo{
	CPUTemp: {"cpu_temp", "CPU Temperature", true},
	GPUTemp: {"gpu_temp", "GPU Temperature", false},
	CPULoad: {"cpu_load", "CPU Usage", true},
	GPULoad: {"gpu_load", "GPU Usage", false},
	Memory:  {"memory", "Memory Usage", false},
	Battery: {"battery", "Battery", false},
}

// AllMetrics lists every metric in display order.
func AllMetrics() []Metric {
	all := make([]Metric, numMetrics)
	for i := range all {
		all[i] = Metric(i)
	}
	return all
}

// Name is the config and wire name, e.g. "cpu_temp".
func (m Metric) Name() string {
	if m >= numMetrics {
		return fmt.Sprintf("metric(%d)", m)
	}
	return metricTable[m].name
}

// Label is the human readable name.
func (m Metric) Label() string {
	if m >= numMetrics {
		return m.Name()
	}
	return metricTable[m].label
}

// DefaultEnabled reports whether the metric is on when not configured.
func (m Metric) DefaultEnabled() bool {
	return m < numMetrics && metricTable[m].defaultEnabled
}

func (m Metric) String() string { return m.Name() }

// ParseMetric looks up a metric by name.
func ParseMetric(name string) (Metric, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, info := range metricTable {
		if info.name == name {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", name)
}

// MetricSet is a set of enabled metrics.
type MetricSet uint8

// DefaultMetrics is the set enabled on a fresh install.
func DefaultMetrics() MetricSet {
	var s MetricSet
	for _, m := range AllMetrics() {
		if m.DefaultEnabled() {
			s = s.With(m)
		}
	}
	return s
}

// AllMetricSet enables everything.
func AllMetricSet() MetricSet {
	return MetricSet(1<<numMetrics - 1)
}

// NewMetricSet builds a set from the given metrics.
func NewMetricSet(metrics ...Metric) MetricSet {
	var s MetricSet
	for _, m := range metrics {
		s = s.With(m)
	}
	return s
}

// ParseMetricSet parses a comma-separated list of metric names. "all"
// selects every metric.
func ParseMetricSet(list string) (MetricSet, error) {
	var s MetricSet
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			return AllMetricSet(), nil
		}
		m, err := ParseMetric(part)
		if err != nil {
			return 0, err
		}
		s = s.With(m)
	}
	return s, nil
}

func (s MetricSet) Has(m Metric) bool { return s&(1<<m) != 0 }

func (s MetricSet) With(m Metric) MetricSet { return s | 1<<m }

func (s MetricSet) Without(m Metric) MetricSet { return s &^ (1 << m) }

// Metrics returns the members in display order.
func (s MetricSet) Metrics() []Metric {
	var out []Metric
	for _, m := range AllMetrics() {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s MetricSet) String() string {
	names := make([]string, 0, numMetrics)
	for _, m := range s.Metrics() {
		names = append(names, m.Name())
	}
	return strings.Join(names, ",")
}
