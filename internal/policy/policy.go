// Package policy holds the scoring policy: severity deductions, the
// base score, and blocker rules. A policy can be loaded from a YAML
// overlay file; otherwise the compiled-in default applies.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy controls how findings translate into a safety score.
type Policy struct {
	Version string `yaml:"version"`

	// BaseScore is the starting score before deductions.
	BaseScore int `yaml:"base_score"`

	// Deductions per finding severity.
	Deductions map[string]int `yaml:"deductions"`

	// BlockerCap is the maximum score when any blocker rule triggers.
	BlockerCap int `yaml:"blocker_cap"`

	// Blockers name conditions that cap the score. Supported kinds:
	// "tg3_present", "critical_present", "unresolved_findings".
	Blockers []BlockerRule `yaml:"blockers"`
}

// BlockerRule is one score-capping condition.
type BlockerRule struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

// Default returns the compiled-in policy. The numbers mirror the
// production scoring model: 50 base, -10 per critical, -5 per high,
// -2 per medium, clamp to 0..100, cap at 95 on blockers.
func Default() Policy {
	return Policy{
		Version:   "v1",
		BaseScore: 50,
		Deductions: map[string]int{
			"critical": 10,
			"high":     5,
			"medium":   2,
			"low":      0,
		},
		BlockerCap: 95,
		Blockers: []BlockerRule{
			{Kind: "tg3_present", Message: "TG3 deviation present"},
			{Kind: "unresolved_findings", Message: "findings without a resolvable point"},
		},
	}
}

// Load reads a YAML policy overlay from path. Fields missing from the
// file keep their default values.
func Load(path string) (Policy, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read policy: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("invalid policy %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the policy for usable values.
func (p Policy) Validate() error {
	if p.BaseScore < 0 || p.BaseScore > 100 {
		return fmt.Errorf("base_score %d out of range 0..100", p.BaseScore)
	}
	if p.BlockerCap < 0 || p.BlockerCap > 100 {
		return fmt.Errorf("blocker_cap %d out of range 0..100", p.BlockerCap)
	}
	for sev, d := range p.Deductions {
		if d < 0 {
			return fmt.Errorf("deduction for %q is negative", sev)
		}
	}
	for _, b := range p.Blockers {
		switch b.Kind {
		case "tg3_present", "critical_present", "unresolved_findings":
		default:
			return fmt.Errorf("unknown blocker kind %q", b.Kind)
		}
	}
	return nil
}
