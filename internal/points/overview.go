package points

import "fmt"

// OverviewSource identifies the frozen detected-points snapshot as the
// origin of every overview envelope.
const OverviewSource = "detected_points_snapshot"

// BuildOverview assembles the canonical points overview from a frozen
// detected-points snapshot and the current findings. The result is
// complete (every eligible deduplicated point appears exactly once),
// deterministic, and safe to rebuild on every request.
//
// Findings whose point reference does not resolve to an overview entry
// are reported in Unresolved, never dropped. A document-order sort with
// no usable position metadata fails with ErrMissingPosition.
func BuildOverview(pts []DetectedPoint, findings []Finding) (*Overview, error) {
	if len(pts) == 0 {
		// An empty-but-valid document. Any findings against it are an
		// upstream contract violation and are surfaced as unresolved.
		ov := &Overview{
			Ordering: Ordering{
				Mode:      SortModeDocumentOrder,
				DedupeKey: DedupeKeyPointKey,
				Source:    OverviewSource,
			},
			Points: []OverviewEntry{},
		}
		for _, f := range findings {
			ov.Unresolved = append(ov.Unresolved, UnresolvedFinding{
				FindingID: f.ID,
				PointKey:  f.PointKey,
				Reason:    "empty detection set",
			})
		}
		return ov, nil
	}

	// The numeric-coverage ratio reflects the whole detected universe,
	// so the mode decision runs before any kind filtering.
	mode := DetectSortMode(pts)
	dkey := DedupeKeyForMode(mode)

	deduped, alias := Dedupe(pts, dkey)

	var warnings []string
	if mode == SortModeNumeric {
		for _, p := range deduped {
			if p.NumericID != "" && !IsNumericPointID(p.NumericID) {
				warnings = append(warnings, fmt.Sprintf(
					"point %s: malformed numeric id %q, ordered by document position", p.PointKey, p.NumericID))
			}
		}
	}

	sorted, err := SortPoints(deduped, mode)
	if err != nil {
		return nil, err
	}

	// Index findings by surviving point key, preserving discovery order.
	byPoint := make(map[string][]Finding)
	var unresolved []UnresolvedFinding
	for _, f := range findings {
		survivor, ok := alias[f.PointKey]
		if !ok {
			unresolved = append(unresolved, UnresolvedFinding{
				FindingID: f.ID,
				PointKey:  f.PointKey,
				Reason:    "no surviving point",
			})
			continue
		}
		byPoint[survivor] = append(byPoint[survivor], f)
	}

	entries := make([]OverviewEntry, 0, len(sorted))
	for _, p := range sorted {
		if !p.Kind.Eligible() {
			continue
		}
		fs := byPoint[p.PointKey]
		entries = append(entries, OverviewEntry{
			DisplayIndex: len(entries) + 1,
			PointKey:     p.PointKey,
			NumericID:    p.NumericID,
			NativeLabel:  p.NativeLabel,
			Title:        p.Title,
			TG:           p.TG,
			Status:       deriveStatus(p, fs),
			Summary:      deriveSummary(p, fs),
			FindingIDs:   mergeFindingIDs(p.FindingIDs, fs),
			Where:        Where{Page: p.PageStart, Anchor: p.AnchorText},
		})
	}

	// Findings that resolved to a surviving point of ineligible kind
	// would otherwise vanish from the overview silently.
	for _, p := range sorted {
		if p.Kind.Eligible() {
			continue
		}
		for _, f := range byPoint[p.PointKey] {
			unresolved = append(unresolved, UnresolvedFinding{
				FindingID: f.ID,
				PointKey:  f.PointKey,
				Reason:    fmt.Sprintf("point kind %q excluded from overview", p.Kind),
			})
		}
	}

	return &Overview{
		Ordering: Ordering{
			Mode:      mode,
			DedupeKey: dkey,
			Source:    OverviewSource,
		},
		Points:     entries,
		Unresolved: unresolved,
		Warnings:   warnings,
	}, nil
}

// deriveStatus weighs the attached findings and the point's own grade.
func deriveStatus(p DetectedPoint, fs []Finding) Status {
	if len(fs) == 0 && len(p.FindingIDs) == 0 {
		return StatusClean
	}
	if p.TG == GradeTG3 {
		return StatusCritical
	}
	for _, f := range fs {
		if f.Severity == SeverityCritical || f.TG == GradeTG3 {
			return StatusCritical
		}
	}
	return StatusFlagged
}

func deriveSummary(p DetectedPoint, fs []Finding) string {
	label := p.Title
	if label == "" {
		label = p.NativeLabel
	}
	if label == "" && p.NumericID != "" {
		label = "Point " + p.NumericID
	}
	if label == "" {
		label = "Point " + p.PointKey
	}

	total := len(mergeFindingIDs(p.FindingIDs, fs))
	if total == 0 {
		return label + ": no findings"
	}
	worst := Severity("")
	worstRank := -1
	for _, f := range fs {
		if r := severityRank(f.Severity); r > worstRank {
			worstRank = r
			worst = f.Severity
		}
	}
	noun := "findings"
	if total == 1 {
		noun = "finding"
	}
	if worst == "" {
		return fmt.Sprintf("%s: %d %s", label, total, noun)
	}
	return fmt.Sprintf("%s: %d %s, worst severity %s", label, total, noun, worst)
}

func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0
	}
	return -1
}

// mergeFindingIDs unions the point's merged finding references with the
// ids of findings resolved by point key, keeping discovery order and
// dropping duplicates.
func mergeFindingIDs(ids []string, fs []Finding) []string {
	out := make([]string, 0, len(ids)+len(fs))
	seen := make(map[string]bool, len(ids)+len(fs))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, f := range fs {
		if f.ID == "" || seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		out = append(out, f.ID)
	}
	return out
}
