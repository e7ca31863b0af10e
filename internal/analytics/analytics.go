package analytics

import (
	"time"

	"github.com/August26/proxystatus-go/internal/model"
)

// Compute summarizes a batch of reports.
func Compute(reports []model.Report, duration time.Duration) model.BatchStats {
	stats := model.BatchStats{
		TotalProxies:          len(reports),
		TotalProcessingTimeMs: duration.Milliseconds(),
		VerdictCounts:         make(map[model.Verdict]int, len(model.Verdicts)),
	}

	seen := make(map[string]struct{})

	var usable int
	var elapsedSum int64
	var elapsedCount int64

	for _, r := range reports {
		key := string(r.Descriptor.ConnectionType()) + "|" + r.Descriptor.Address()
		seen[key] = struct{}{}

		stats.VerdictCounts[r.Status()]++

		if r.OK() {
			usable++
		}
		if r.Descriptor.Enabled() && r.Status() != model.VerdictNotChecked {
			elapsedSum += r.ElapsedMs
			elapsedCount++
		}
	}

	stats.UniqueProxies = len(seen)
	stats.UsableProxies = usable

	if elapsedCount > 0 {
		stats.AvgElapsedMs = float64(elapsedSum) / float64(elapsedCount)
	}
	if stats.TotalProxies > 0 {
		stats.SuccessRatePct = float64(usable) / float64(stats.TotalProxies) * 100.0
	}

	return stats
}
