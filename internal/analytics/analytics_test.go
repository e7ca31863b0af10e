package analytics

import (
	"testing"
	"time"

	"github.com/August26/proxystatus-go/internal/model"
)

func TestCompute(t *testing.T) {
	p := model.ProxyDescriptor{Kind: model.KindHTTP, Host: "10.0.0.1", Port: 3128}
	reports := []model.Report{
		{Descriptor: p, Verdict: model.VerdictOK, ElapsedMs: 100},
		{Descriptor: p, Verdict: model.VerdictContentUnreachable, ElapsedMs: 300},
		{Descriptor: model.ProxyDescriptor{Kind: model.KindDirect}, Verdict: model.VerdictNotEnabled},
		{Descriptor: model.ProxyDescriptor{Kind: model.KindSOCKS, Host: "10.0.0.1", Port: 3128}, Verdict: model.VerdictOK, ElapsedMs: 200},
	}

	stats := Compute(reports, 1500*time.Millisecond)

	if stats.TotalProxies != 4 || stats.UniqueProxies != 3 {
		t.Fatalf("total=%d unique=%d", stats.TotalProxies, stats.UniqueProxies)
	}
	if stats.UsableProxies != 2 || stats.SuccessRatePct != 50 {
		t.Fatalf("usable=%d rate=%.1f", stats.UsableProxies, stats.SuccessRatePct)
	}
	if stats.AvgElapsedMs != 200 {
		t.Fatalf("avg elapsed = %.1f, want 200", stats.AvgElapsedMs)
	}
	if stats.VerdictCounts[model.VerdictOK] != 2 || stats.VerdictCounts[model.VerdictNotEnabled] != 1 {
		t.Fatalf("counts = %v", stats.VerdictCounts)
	}
	if stats.TotalProcessingTimeMs != 1500 {
		t.Fatalf("processing time = %d", stats.TotalProcessingTimeMs)
	}
}

func TestCompute_Empty(t *testing.T) {
	stats := Compute(nil, 0)
	if stats.TotalProxies != 0 || stats.SuccessRatePct != 0 || stats.AvgElapsedMs != 0 {
		t.Fatalf("unexpected stats for empty batch: %+v", stats)
	}
}

func TestCompute_NotCheckedReports(t *testing.T) {
	p := model.ProxyDescriptor{Kind: model.KindHTTP, Host: "10.0.0.1", Port: 3128}
	reports := []model.Report{
		{Descriptor: p, Verdict: model.VerdictOK, ElapsedMs: 100},
		model.NotChecked(p),
	}

	stats := Compute(reports, 0)

	if stats.VerdictCounts[model.VerdictNotChecked] != 1 {
		t.Fatalf("counts = %v", stats.VerdictCounts)
	}
	if stats.AvgElapsedMs != 100 {
		t.Fatalf("avg elapsed = %.1f, want 100", stats.AvgElapsedMs)
	}
}
