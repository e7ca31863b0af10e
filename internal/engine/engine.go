// Package engine turns the observations made about a proxy into a single
// diagnostic verdict.
package engine

import (
	"context"
	"time"

	"github.com/August26/proxystatus-go/internal/model"
	"github.com/August26/proxystatus-go/internal/probe"
	"github.com/August26/proxystatus-go/internal/validator"
)

// Engine evaluates proxy descriptors. It holds no per-evaluation state and
// is safe for concurrent use.
type Engine struct {
	prober      probe.Prober
	validate    func(host string) bool
	hostTimeout time.Duration
	observer    Observer
}

type Option func(*Engine)

// WithValidator replaces the address validator.
func WithValidator(v func(host string) bool) Option {
	return func(e *Engine) { e.validate = v }
}

// WithHostTimeout sets the budget of the host probe.
func WithHostTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.hostTimeout = d
		}
	}
}

// WithObserver installs a hook called on every pipeline transition.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

func New(prober probe.Prober, opts ...Option) *Engine {
	e := &Engine{
		prober:      prober,
		validate:    validator.Validate,
		hostTimeout: probe.DefaultHostTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate checks whether the proxy is enabled, validates its address,
// probes the host and then probes content through it. Only a disabled proxy
// stops the pipeline early; every other failure is recorded and evaluation
// continues. The returned report always carries a verdict.
func (e *Engine) Evaluate(ctx context.Context, d model.ProxyDescriptor, contentTimeout time.Duration) model.Report {
	start := time.Now()
	rep := model.Report{
		Descriptor: d,
		Attempts:   1,
		CheckedAt:  start,
	}
	var problems model.ProblemSet

	e.record(StepEnabled, d, d.Enabled(), model.ProblemNotEnabled, &problems, start)
	if problems.Has(model.ProblemNotEnabled) {
		return e.finish(rep, problems, start)
	}

	stepStart := time.Now()
	e.record(StepValidate, d, e.validate(d.HostName()), model.ProblemInvalidAddress, &problems, stepStart)

	stepStart = time.Now()
	hostOK := e.safeProbe(func() bool {
		return e.prober.HostReachable(ctx, d, e.hostTimeout)
	})
	rep.HostProbe = model.ProbeResult{Reachable: hostOK, Timeout: e.hostTimeout, Ran: true}
	e.record(StepProbeHost, d, hostOK, model.ProblemHostUnreachable, &problems, stepStart)

	stepStart = time.Now()
	contentOK := e.safeProbe(func() bool {
		return e.prober.ContentReachable(ctx, d, contentTimeout)
	})
	rep.ContentProbe = model.ProbeResult{Reachable: contentOK, Timeout: contentTimeout, Ran: true}
	e.record(StepProbeContent, d, contentOK, model.ProblemContentUnreachable, &problems, stepStart)

	return e.finish(rep, problems, start)
}

// record adds problem to the set when the step failed and notifies the observer.
func (e *Engine) record(step Step, d model.ProxyDescriptor, passed bool, problem model.Problem, problems *model.ProblemSet, since time.Time) {
	tr := Transition{
		Step:    step,
		Proxy:   d.ShortString(),
		Passed:  passed,
		Elapsed: time.Since(since),
	}
	if !passed {
		problems.Add(problem)
		tr.Problem = problem
	}
	e.emit(tr)
}

func (e *Engine) finish(rep model.Report, problems model.ProblemSet, start time.Time) model.Report {
	rep.Problems = problems
	rep.Verdict = Reduce(problems)
	rep.ElapsedMs = time.Since(start).Milliseconds()
	e.emit(Transition{
		Step:    StepDone,
		Proxy:   rep.Descriptor.ShortString(),
		Passed:  rep.Verdict == model.VerdictOK,
		Elapsed: time.Since(start),
		Verdict: rep.Verdict,
	})
	return rep
}

func (e *Engine) emit(tr Transition) {
	if e.observer != nil {
		e.observer(tr)
	}
}

// safeProbe runs fn and treats a panic as a failed probe.
func (e *Engine) safeProbe(fn func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return fn()
}
