// Package score computes the report safety score from the reconciled
// overview and its findings.
package score

import (
	"fmt"
	"strings"

	"github.com/dnordby/reportscan/internal/points"
	"github.com/dnordby/reportscan/internal/policy"
)

// Result is the computed safety score with its explanation.
type Result struct {
	Score           int      `json:"score"`
	Explanation     string   `json:"explanation"`
	FactorsPositive string   `json:"factors_positive"`
	FactorsNegative string   `json:"factors_negative"`
	Blockers        []string `json:"blockers,omitempty"`
}

// Compute derives the safety score. The score starts at the policy base,
// deducts per finding severity, clamps to 0..100, and is capped at the
// policy blocker cap when any blocker rule triggers. The computation is
// deterministic for identical inputs.
func Compute(ov *points.Overview, findings []points.Finding, pol policy.Policy) Result {
	s := pol.BaseScore
	for _, f := range findings {
		s -= pol.Deductions[string(f.Severity)]
	}
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}

	blockers := triggeredBlockers(ov, findings, pol)
	if len(blockers) > 0 && s > pol.BlockerCap {
		s = pol.BlockerCap
	}

	return Result{
		Score:           s,
		Explanation:     fmt.Sprintf("Safety score %d/100 reflects report quality and liability exposure.", s),
		FactorsPositive: positiveFactors(ov),
		FactorsNegative: negativeFactors(findings),
		Blockers:        blockers,
	}
}

func triggeredBlockers(ov *points.Overview, findings []points.Finding, pol policy.Policy) []string {
	var out []string
	for _, b := range pol.Blockers {
		switch b.Kind {
		case "tg3_present":
			if anyGrade(ov, points.GradeTG3) {
				out = append(out, b.Message)
			}
		case "critical_present":
			if anySeverity(findings, points.SeverityCritical) {
				out = append(out, b.Message)
			}
		case "unresolved_findings":
			if len(ov.Unresolved) > 0 {
				out = append(out, b.Message)
			}
		}
	}
	return out
}

func anyGrade(ov *points.Overview, g points.Grade) bool {
	for _, e := range ov.Points {
		if e.TG == g {
			return true
		}
	}
	return false
}

func anySeverity(findings []points.Finding, s points.Severity) bool {
	for _, f := range findings {
		if f.Severity == s {
			return true
		}
	}
	return false
}

func positiveFactors(ov *points.Overview) string {
	var clean []string
	for _, e := range ov.Points {
		if e.Status == points.StatusClean && e.Title != "" {
			clean = append(clean, e.Title)
		}
		if len(clean) == 3 {
			break
		}
	}
	if len(clean) == 0 {
		return "No specific positive factors identified"
	}
	return strings.Join(clean, "; ")
}

func negativeFactors(findings []points.Finding) string {
	var worst []string
	for _, f := range findings {
		if f.Severity == points.SeverityCritical || f.Severity == points.SeverityHigh {
			worst = append(worst, f.Title)
		}
		if len(worst) == 3 {
			break
		}
	}
	if len(worst) == 0 {
		return "No specific negative factors identified"
	}
	return strings.Join(worst, "; ")
}
