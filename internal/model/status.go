package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Problem is a single failure observed while evaluating a proxy.
// Declaration order is the priority order used when reducing to a Verdict.
type Problem uint8

const (
	ProblemNotEnabled Problem = 1 << iota
	ProblemInvalidAddress
	ProblemHostUnreachable
	ProblemContentUnreachable
)

var allProblems = []Problem{
	ProblemNotEnabled,
	ProblemInvalidAddress,
	ProblemHostUnreachable,
	ProblemContentUnreachable,
}

func (p Problem) String() string {
	switch p {
	case ProblemNotEnabled:
		return "not_enabled"
	case ProblemInvalidAddress:
		return "invalid_address"
	case ProblemHostUnreachable:
		return "host_unreachable"
	case ProblemContentUnreachable:
		return "content_unreachable"
	default:
		return fmt.Sprintf("problem(%d)", uint8(p))
	}
}

// ProblemSet is the set of problems accumulated during one evaluation.
// The zero value is empty.
type ProblemSet uint8

func NewProblemSet(problems ...Problem) ProblemSet {
	var s ProblemSet
	for _, p := range problems {
		s.Add(p)
	}
	return s
}

func (s *ProblemSet) Add(p Problem) { *s |= ProblemSet(p) }

func (s *ProblemSet) Clear() { *s = 0 }

func (s ProblemSet) Has(p Problem) bool { return s&ProblemSet(p) != 0 }

// Contains reports whether every problem in other is also in s.
func (s ProblemSet) Contains(other ProblemSet) bool { return s&other == other }

func (s ProblemSet) Empty() bool { return s == 0 }

// Problems lists the members of s in priority order.
func (s ProblemSet) Problems() []Problem {
	var out []Problem
	for _, p := range allProblems {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s ProblemSet) String() string {
	ps := s.Problems()
	if len(ps) == 0 {
		return "-"
	}
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, ",")
}

func (s ProblemSet) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, p := range s.Problems() {
		names = append(names, p.String())
	}
	return json.Marshal(names)
}

// Verdict is the single diagnostic status derived from a ProblemSet.
type Verdict string

const (
	VerdictOK                 Verdict = "ok"
	VerdictNotEnabled         Verdict = "not_enabled"
	VerdictInvalidAddress     Verdict = "invalid_address"
	VerdictHostUnreachable    Verdict = "host_unreachable"
	VerdictContentUnreachable Verdict = "content_unreachable"

	// VerdictNotChecked marks a report whose evaluation never ran.
	VerdictNotChecked Verdict = "not_checked"
)

// Verdicts lists every verdict, best first.
var Verdicts = []Verdict{
	VerdictOK,
	VerdictNotEnabled,
	VerdictInvalidAddress,
	VerdictHostUnreachable,
	VerdictContentUnreachable,
	VerdictNotChecked,
}
