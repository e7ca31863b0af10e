package model

import (
	"fmt"
	"strings"
	"time"
)

// ProbeResult is the outcome of a single reachability probe together with
// the timeout budget it ran under.
type ProbeResult struct {
	Reachable bool          `json:"reachable"`
	Timeout   time.Duration `json:"timeout_ns"`
	Ran       bool          `json:"ran"`
}

// Report is the result of evaluating one ProxyDescriptor.
type Report struct {
	Descriptor   ProxyDescriptor `json:"proxy"`
	Problems     ProblemSet      `json:"problems"`
	Verdict      Verdict         `json:"verdict"`
	HostProbe    ProbeResult     `json:"host_probe"`
	ContentProbe ProbeResult     `json:"content_probe"`
	ElapsedMs    int64           `json:"elapsed_ms"`
	Attempts     int             `json:"attempts"`
	Geo          GeoInfo         `json:"geo"`
	CheckedAt    time.Time       `json:"checked_at"`
}

// OK reports whether the proxy is usable.
func (r Report) OK() bool { return r.Verdict == VerdictOK }

// Status is the verdict, or VerdictNotChecked when the report was never
// produced by an evaluation.
func (r Report) Status() Verdict {
	if r.Verdict == "" {
		return VerdictNotChecked
	}
	return r.Verdict
}

// NotChecked is the report for a descriptor that was never evaluated.
func NotChecked(d ProxyDescriptor) Report {
	return Report{Descriptor: d, Verdict: VerdictNotChecked}
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Proxy: %s (%s %s)\n", r.Descriptor.ShortString(), r.Descriptor.ConnectionType(), r.Descriptor.Address())
	fmt.Fprintf(&sb, "Verdict: %s\n", r.Status())
	fmt.Fprintf(&sb, "Problems: %s\n", r.Problems)
	if r.HostProbe.Ran {
		fmt.Fprintf(&sb, "Is proxy reachable: %t\n", r.HostProbe.Reachable)
	}
	if r.ContentProbe.Ran {
		fmt.Fprintf(&sb, "Is web reachable: %t\n", r.ContentProbe.Reachable)
	}
	if ip := r.Descriptor.IPHost(); ip != "" {
		fmt.Fprintf(&sb, "Proxy IP: %s\n", ip)
	}
	if r.Geo.Country != "" {
		fmt.Fprintf(&sb, "Location: %s %s\n", r.Geo.Country, r.Geo.City)
	}
	return sb.String()
}

// BatchStats aggregates summary analytics for an entire run.
type BatchStats struct {
	TotalProxies          int             `json:"total_proxies"`
	UniqueProxies         int             `json:"unique_proxies"`
	UsableProxies         int             `json:"usable_proxies"`
	VerdictCounts         map[Verdict]int `json:"verdict_counts"`
	AvgElapsedMs          float64         `json:"avg_elapsed_ms"`
	TotalProcessingTimeMs int64           `json:"total_processing_time_ms"`
	SuccessRatePct        float64         `json:"success_rate_pct"`
}
