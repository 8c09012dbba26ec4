package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	overlay := []byte("version: v2\nbase_score: 60\ndeductions:\n  critical: 20\n  high: 7\n  medium: 2\n  low: 0\n")
	if err := os.WriteFile(path, overlay, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Version != "v2" || p.BaseScore != 60 {
		t.Errorf("overlay not applied: %+v", p)
	}
	if p.Deductions["critical"] != 20 {
		t.Errorf("expected critical deduction 20, got %d", p.Deductions["critical"])
	}
	// Fields absent from the overlay keep defaults.
	if p.BlockerCap != 95 {
		t.Errorf("expected default blocker_cap 95, got %d", p.BlockerCap)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/policy.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	p := Default()
	p.BaseScore = 150
	if err := p.Validate(); err == nil {
		t.Error("expected error for base_score out of range")
	}

	p = Default()
	p.Blockers = append(p.Blockers, BlockerRule{Kind: "made_up"})
	if err := p.Validate(); err == nil {
		t.Error("expected error for unknown blocker kind")
	}
}
