package analyze

import (
	"strings"
	"testing"

	"github.com/dnordby/reportscan/internal/points"
)

func TestBuildSectionPromptIncludesContext(t *testing.T) {
	pt := points.DetectedPoint{
		PointKey:    "pt-0002",
		NativeLabel: "4.2",
		Title:       "Taktekking",
		PageStart:   12,
	}
	prompt := BuildSectionPrompt("Tilstandsrapport Eksempelveien 12", pt, "Tekkingen er slitt.")

	for _, want := range []string{
		`Rapport: "Tilstandsrapport Eksempelveien 12"`,
		"Punkt: 4.2 Taktekking",
		"Side: 12",
		"Tekkingen er slitt.",
		`"severity"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildSectionPromptWithoutLabel(t *testing.T) {
	pt := points.DetectedPoint{PointKey: "pt-0005", Title: "Vedlegg"}
	prompt := BuildSectionPrompt("rapport", pt, "innhold")
	if !strings.Contains(prompt, "Punkt: Vedlegg") {
		t.Error("expected title-only point line")
	}
	if strings.Contains(prompt, "Side:") {
		t.Error("expected no page line when PageStart is 0")
	}
}

func TestTruncateSectionKeepsBothEnds(t *testing.T) {
	head := "HEAD-" + strings.Repeat("a", 500)
	tail := strings.Repeat("b", 500) + "-TAIL"
	text := head + tail

	got := TruncateSection(text, 200)
	if len(got) > 200 {
		t.Fatalf("expected truncated length <= 200, got %d", len(got))
	}
	if !strings.HasPrefix(got, "HEAD-") {
		t.Errorf("expected head preserved, got prefix %q", got[:5])
	}
	if !strings.HasSuffix(got, "-TAIL") {
		t.Errorf("expected tail preserved, got suffix %q", got[len(got)-5:])
	}
	if !strings.Contains(got, "[...utelatt...]") {
		t.Error("expected omission marker")
	}
}

func TestTruncateSectionShortTextUnchanged(t *testing.T) {
	text := "kort tekst"
	if got := TruncateSection(text, 200); got != text {
		t.Errorf("expected short text unchanged, got %q", got)
	}
}

func TestTruncateSectionHeadTailSplit(t *testing.T) {
	text := strings.Repeat("x", 1000)
	got := TruncateSection(text, 100)
	if len(got) != 100 {
		t.Errorf("expected exact budget use, got %d", len(got))
	}
}
