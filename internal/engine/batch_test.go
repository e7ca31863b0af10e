package engine

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/August26/proxystatus-go/internal/model"
)

type fakeGeo struct{}

func (fakeGeo) Lookup(ip string) (model.GeoInfo, error) {
	if ip == "203.0.113.7" {
		return model.GeoInfo{Country: "NL", City: "Amsterdam"}, nil
	}
	return model.GeoInfo{}, errors.New("not found")
}

type fakeResolver map[string]string

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	ip, ok := f[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return []net.IPAddr{{IP: net.ParseIP(ip)}}, nil
}

func TestRunBatch_PreservesOrderAndRetries(t *testing.T) {
	sp := &stubProber{host: true, content: false}
	e := New(sp)

	ds := []model.ProxyDescriptor{
		{Kind: model.KindHTTP, Host: "10.0.0.1", Port: 3128, Label: "first"},
		{Kind: model.KindDirect, Label: "second"},
		{Kind: model.KindSOCKS, Host: "10.0.0.3", Port: 1080, Label: "third"},
	}
	cfg := model.Config{Concurrency: 2, Retries: 3, ContentTimeoutMs: 100}

	reports := RunBatch(context.Background(), e, ds, cfg)
	if len(reports) != len(ds) {
		t.Fatalf("got %d reports, want %d", len(reports), len(ds))
	}
	for i, r := range reports {
		if r.Descriptor.Label != ds[i].Label {
			t.Fatalf("report %d is for %q, want %q", i, r.Descriptor.Label, ds[i].Label)
		}
	}

	if reports[0].Verdict != model.VerdictContentUnreachable || reports[0].Attempts != 3 {
		t.Fatalf("first: verdict=%s attempts=%d", reports[0].Verdict, reports[0].Attempts)
	}
	if reports[1].Verdict != model.VerdictNotEnabled || reports[1].Attempts != 1 {
		t.Fatalf("second: verdict=%s attempts=%d", reports[1].Verdict, reports[1].Attempts)
	}
	// 2 enabled proxies * 3 attempts * 2 probes
	if n := sp.calls(); n != 12 {
		t.Fatalf("probe calls = %d, want 12", n)
	}
}

func TestRunBatch_StopsRetryingOnSuccess(t *testing.T) {
	sp := &stubProber{host: true, content: true}
	reports := RunBatch(context.Background(), New(sp), []model.ProxyDescriptor{
		{Kind: model.KindHTTP, Host: "10.0.0.1", Port: 3128},
	}, model.Config{Retries: 5, ContentTimeoutMs: 100})

	if reports[0].Attempts != 1 || !reports[0].OK() {
		t.Fatalf("got attempts=%d verdict=%s", reports[0].Attempts, reports[0].Verdict)
	}
}

func TestRunBatch_ResolvesAndEnriches(t *testing.T) {
	sp := &stubProber{host: true, content: true}
	cfg := model.Config{Concurrency: 4, ResolveHosts: true, Resolver: fakeGeo{}, ContentTimeoutMs: 100}
	ds := []model.ProxyDescriptor{
		{Kind: model.KindHTTP, Host: "proxy.example.com", Port: 8080},
		{Kind: model.KindHTTP, Host: "missing.example.com", Port: 8080},
		{Kind: model.KindDirect, Host: "proxy.example.com"},
	}
	res := fakeResolver{"proxy.example.com": "203.0.113.7"}

	reports := runBatch(context.Background(), New(sp), ds, cfg, res)

	if ip := reports[0].Descriptor.IPHost(); ip != "203.0.113.7" {
		t.Fatalf("resolved ip = %q", ip)
	}
	if reports[0].Geo.Country != "NL" || reports[0].Geo.City != "Amsterdam" {
		t.Fatalf("geo = %+v", reports[0].Geo)
	}
	if reports[1].Descriptor.IP != "" || reports[1].Geo != (model.GeoInfo{}) {
		t.Fatalf("unresolvable host should stay bare: %+v", reports[1])
	}
	if reports[2].Descriptor.IP != "" {
		t.Fatalf("direct descriptor must not be resolved")
	}
}

func TestRunBatch_CanceledContextStartsNothing(t *testing.T) {
	sp := &stubProber{host: true, content: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := []model.ProxyDescriptor{
		{Kind: model.KindHTTP, Host: "10.0.0.1", Port: 3128},
		{Kind: model.KindSOCKS, Host: "10.0.0.2", Port: 1080},
	}
	reports := RunBatch(ctx, New(sp), ds, model.Config{Concurrency: 2, Retries: 3, ContentTimeoutMs: 100})

	if n := sp.calls(); n != 0 {
		t.Fatalf("expected no probe calls after cancellation, got %d", n)
	}
	for i, r := range reports {
		if r.Status() != model.VerdictNotChecked || r.Attempts != 0 {
			t.Fatalf("report %d: status=%s attempts=%d, want not_checked/0", i, r.Status(), r.Attempts)
		}
		if r.Descriptor != ds[i] || r.HostProbe.Ran || r.ContentProbe.Ran {
			t.Fatalf("report %d: unexpected content %+v", i, r)
		}
	}
}

// cancelingProber cancels the batch context during the first host probe
// and then fails like a real probe would on a dead context.
type cancelingProber struct {
	cancel context.CancelFunc
}

func (c cancelingProber) HostReachable(_ context.Context, _ model.ProxyDescriptor, _ time.Duration) bool {
	c.cancel()
	return false
}

func (c cancelingProber) ContentReachable(ctx context.Context, _ model.ProxyDescriptor, _ time.Duration) bool {
	return ctx.Err() == nil
}

func TestRunBatch_InterruptedEvaluationIsNotChecked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := RunBatch(ctx, New(cancelingProber{cancel: cancel}), []model.ProxyDescriptor{
		{Kind: model.KindHTTP, Host: "10.0.0.1", Port: 3128},
	}, model.Config{Concurrency: 1, Retries: 3, ContentTimeoutMs: 100})

	if got := reports[0].Status(); got != model.VerdictNotChecked {
		t.Fatalf("status = %s, want not_checked", got)
	}
}
