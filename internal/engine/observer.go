package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/August26/proxystatus-go/internal/model"
)

// Step names a stage of the evaluation pipeline.
type Step string

const (
	StepEnabled      Step = "enabled"
	StepValidate     Step = "validate"
	StepProbeHost    Step = "probe_host"
	StepProbeContent Step = "probe_content"
	StepDone         Step = "done"
)

// Transition describes one completed pipeline step.
type Transition struct {
	Step    Step
	Proxy   string
	Passed  bool
	Problem model.Problem // zero when Passed
	Elapsed time.Duration
	Verdict model.Verdict // set on StepDone only
}

// Observer receives every transition of an evaluation. It must not block.
type Observer func(Transition)

// LogObserver emits transitions as debug records on log.
func LogObserver(log *slog.Logger) Observer {
	return func(tr Transition) {
		attrs := []slog.Attr{
			slog.String("step", string(tr.Step)),
			slog.String("proxy", tr.Proxy),
			slog.Bool("passed", tr.Passed),
			slog.Duration("elapsed", tr.Elapsed),
		}
		if tr.Problem != 0 {
			attrs = append(attrs, slog.String("problem", tr.Problem.String()))
		}
		if tr.Verdict != "" {
			attrs = append(attrs, slog.String("verdict", string(tr.Verdict)))
		}
		log.LogAttrs(context.Background(), slog.LevelDebug, "proxy_check", attrs...)
	}
}
