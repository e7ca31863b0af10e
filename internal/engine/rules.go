package engine

import "github.com/August26/proxystatus-go/internal/model"

// rule maps a required combination of problems to a verdict.
type rule struct {
	requires model.ProblemSet
	verdict  model.Verdict
}

// reductionRules is evaluated top to bottom; the first rule whose required
// problems are all present wins. When content is unreachable the most
// specific available cause is reported. When content is reachable the proxy
// is usable, whatever else was observed.
var reductionRules = []rule{
	{
		requires: model.NewProblemSet(model.ProblemNotEnabled),
		verdict:  model.VerdictNotEnabled,
	},
	{
		requires: model.NewProblemSet(model.ProblemContentUnreachable, model.ProblemHostUnreachable, model.ProblemInvalidAddress),
		verdict:  model.VerdictInvalidAddress,
	},
	{
		requires: model.NewProblemSet(model.ProblemContentUnreachable, model.ProblemHostUnreachable),
		verdict:  model.VerdictHostUnreachable,
	},
	{
		requires: model.NewProblemSet(model.ProblemContentUnreachable),
		verdict:  model.VerdictContentUnreachable,
	},
}

// Reduce derives the single verdict for a final problem set.
func Reduce(s model.ProblemSet) model.Verdict {
	for _, r := range reductionRules {
		if s.Contains(r.requires) {
			return r.verdict
		}
	}
	return model.VerdictOK
}
