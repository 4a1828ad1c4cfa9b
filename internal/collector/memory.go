package collector

import (
	"siliconstats/internal/logger"
)

// PageStats are virtual memory page counts.
type PageStats struct {
	Active     uint64
	Wired      uint64
	Compressed uint64
	PageSize   uint64
}

// UsedBytes is the memory held by applications, the kernel and the compressor.
func (p PageStats) UsedBytes() uint64 {
	return (p.Active + p.Wired + p.Compressed) * p.PageSize
}

// MemorySource reads physical memory size and page statistics.
type MemorySource interface {
	PhysicalMemory() (uint64, error)
	PageStats() (PageStats, error)
}

// MemoryUsage is memory in binary gigabytes.
type MemoryUsage struct {
	UsedGB  float64 `json:"used_gb"`
	TotalGB float64 `json:"total_gb"`
}

// MemoryReader reports memory usage. Physical memory size is read once.
type MemoryReader struct {
	source     MemorySource
	totalBytes uint64
}

// NewMemoryReader creates a reader and caches the physical memory size.
func NewMemoryReader(source MemorySource) *MemoryReader {
	r := &MemoryReader{source: source}
	total, err := source.PhysicalMemory()
	if err != nil {
		log := logger.WithComponent("memory")
		log.Warn().Err(err).Msg("Failed to read physical memory size, memory metric disabled")
		return r
	}
	r.totalBytes = total
	return r
}

// Read returns current usage. A page statistics failure yields zero usage
// against the cached total. Read reports false only when the physical
// memory size is unknown.
func (r *MemoryReader) Read() (MemoryUsage, bool) {
	if r.totalBytes == 0 {
		return MemoryUsage{}, false
	}
	total := float64(r.totalBytes) / bytesPerGB

	stats, err := r.source.PageStats()
	if err != nil {
		log := logger.WithComponent("memory")
		log.Debug().Err(err).Msg("Failed to read VM statistics")
		return MemoryUsage{TotalGB: total}, true
	}

	used := stats.UsedBytes()
	if used > r.totalBytes {
		used = r.totalBytes
	}
	return MemoryUsage{
		UsedGB:  float64(used) / bytesPerGB,
		TotalGB: total,
	}, true
}
