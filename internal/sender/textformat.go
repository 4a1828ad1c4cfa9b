package sender

import (
	"fmt"
	"strconv"
	"time"
)

// Row is one metric value in the line-oriented text format.
type Row struct {
	Timestamp time.Time
	Host      string
	Category  string
	Metric    string
	Value     float64
}

const textTimeFmt = "2006-01-02 15:04:05"

// FormatTextTimestamp formats as "2006-01-02 15:04:05,000", which log
// shippers parse as TIMESTAMP_ISO8601.
func FormatTextTimestamp(t time.Time) string {
	return fmt.Sprintf("%s,%03d", t.Format(textTimeFmt), t.Nanosecond()/1e6)
}

// formatValue avoids scientific notation.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String renders "<ts> host:<h>,category:<c>,metric:<m>,value:<v>".
func (r Row) String() string {
	return fmt.Sprintf("%s host:%s,category:%s,metric:%s,value:%s",
		FormatTextTimestamp(r.Timestamp), r.Host, r.Category, r.Metric, formatValue(r.Value))
}

// ReportRows flattens a report into rows, skipping absent metrics.
// Booleans are written as 0 or 1.
func ReportRows(r *Report) []Row {
	s := r.Snapshot
	row := func(category, metric string, v float64) Row {
		return Row{Timestamp: r.Timestamp, Host: r.Hostname, Category: category, Metric: metric, Value: v}
	}

	var rows []Row
	if s.CPUTemp != nil {
		rows = append(rows, row("cpu", "temperature_c", *s.CPUTemp))
	}
	if s.CPULoad != nil {
		rows = append(rows, row("cpu", "used_pct", *s.CPULoad))
	}
	if s.GPUTemp != nil {
		rows = append(rows, row("gpu", "temperature_c", *s.GPUTemp))
	}
	if s.GPULoad != nil {
		rows = append(rows, row("gpu", "used_pct", *s.GPULoad))
	}
	if s.Memory != nil {
		rows = append(rows,
			row("memory", "used_gb", s.Memory.UsedGB),
			row("memory", "total_gb", s.Memory.TotalGB),
		)
	}
	if s.Battery != nil {
		rows = append(rows,
			row("battery", "charge_pct", float64(s.Battery.Percentage)),
			row("battery", "charging", boolValue(s.Battery.IsCharging)),
			row("battery", "plugged_in", boolValue(s.Battery.IsPluggedIn)),
		)
	}
	return rows
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
