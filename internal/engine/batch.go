package engine

import (
	"context"
	"log/slog"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/August26/proxystatus-go/internal/model"
)

// HostResolver resolves proxy hostnames. *net.Resolver satisfies it.
type HostResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

const resolveTimeout = 2 * time.Second

// RunBatch evaluates every descriptor with at most cfg.Concurrency
// evaluations in flight. Reports are returned in input order. Once ctx is
// done no new evaluation starts; descriptors that never ran are reported
// with model.VerdictNotChecked.
func RunBatch(ctx context.Context, e *Engine, descriptors []model.ProxyDescriptor, cfg model.Config) []model.Report {
	return runBatch(ctx, e, descriptors, cfg, net.DefaultResolver)
}

func runBatch(ctx context.Context, e *Engine, descriptors []model.ProxyDescriptor, cfg model.Config, resolver HostResolver) []model.Report {
	limit := cfg.Concurrency
	if limit < 1 {
		limit = 1
	}

	reports := make([]model.Report, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, d := range descriptors {
		i, d := i, d
		g.Go(func() error {
			if gctx.Err() != nil {
				reports[i] = model.NotChecked(d)
				return nil
			}
			if cfg.ResolveHosts && resolver != nil {
				d = resolveDescriptor(gctx, d, resolver)
			}
			rep := evaluateWithRetries(gctx, e, d, cfg)
			// a failure observed after cancellation says nothing about the proxy
			if gctx.Err() != nil && retryable(rep.Verdict) {
				reports[i] = model.NotChecked(d)
				return nil
			}
			if cfg.Resolver != nil {
				rep.Geo = lookupGeo(cfg.Resolver, rep.Descriptor)
			}
			reports[i] = rep
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// evaluateWithRetries re-runs the evaluation up to cfg.Retries times while
// the verdict is a failure that could be transient. Every attempt starts
// from an empty problem set; the last report is returned. No retry starts
// after ctx is done.
func evaluateWithRetries(ctx context.Context, e *Engine, d model.ProxyDescriptor, cfg model.Config) model.Report {
	attempts := cfg.Retries
	if attempts < 1 {
		attempts = 1
	}

	var rep model.Report
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && ctx.Err() != nil {
			break
		}
		rep = e.Evaluate(ctx, d, cfg.ContentTimeout())
		rep.Attempts = attempt
		if !retryable(rep.Verdict) {
			break
		}
	}
	return rep
}

func retryable(v model.Verdict) bool {
	return v != model.VerdictOK && v != model.VerdictNotEnabled
}

// resolveDescriptor records the first resolved address of the proxy host.
// Failures leave the descriptor untouched; the probes report reachability.
func resolveDescriptor(ctx context.Context, d model.ProxyDescriptor, resolver HostResolver) model.ProxyDescriptor {
	if !d.Enabled() || d.IPHost() != "" || d.Host == "" {
		return d
	}
	rctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	addrs, err := resolver.LookupIPAddr(rctx, d.Host)
	if err != nil || len(addrs) == 0 {
		slog.Debug("resolve_failed", "host", d.Host, "err", err)
		return d
	}
	return d.WithIP(addrs[0].IP.String())
}

func lookupGeo(r model.IPResolver, d model.ProxyDescriptor) model.GeoInfo {
	ip := d.IPHost()
	if ip == "" {
		return model.GeoInfo{}
	}
	info, err := r.Lookup(ip)
	if err != nil {
		return model.GeoInfo{}
	}
	return info
}
