package points

// accumulator collects merge state for one logical point. It is
// finalized into an immutable DetectedPoint; nothing outside Dedupe
// ever sees it.
type accumulator struct {
	rec        DetectedPoint
	findingIDs []string
	seenIDs    map[string]bool
}

func (a *accumulator) addFindingIDs(ids []string) {
	for _, id := range ids {
		if id == "" || a.seenIDs[id] {
			continue
		}
		a.seenIDs[id] = true
		a.findingIDs = append(a.findingIDs, id)
	}
}

// Dedupe collapses detected-point records that refer to the same
// logical point. Records are keyed by numeric_id or point_key according
// to key; a record with an empty dedupe-key value falls back to its own
// point_key, which cannot collide with anything but an identical
// point_key.
//
// On collision the finding id lists are unioned (no duplicates, first
// discovery order preserved) and the worst TG grade survives. All other
// fields come from the first-seen record.
//
// The returned alias map takes every input record's point_key to its
// surviving record's point_key, so findings attached to merged-away
// duplicates still resolve.
func Dedupe(pts []DetectedPoint, key DedupeKey) ([]DetectedPoint, map[string]string) {
	byKey := make(map[string]*accumulator, len(pts))
	order := make([]string, 0, len(pts))
	alias := make(map[string]string, len(pts))

	for _, p := range pts {
		k := dedupeKeyValue(p, key)
		acc, ok := byKey[k]
		if !ok {
			acc = &accumulator{rec: p, seenIDs: make(map[string]bool)}
			byKey[k] = acc
			order = append(order, k)
		} else {
			acc.rec.TG = acc.rec.TG.Worse(p.TG)
		}
		acc.addFindingIDs(p.FindingIDs)
		alias[p.PointKey] = acc.rec.PointKey
	}

	out := make([]DetectedPoint, 0, len(order))
	for _, k := range order {
		acc := byKey[k]
		rec := acc.rec
		rec.FindingIDs = acc.findingIDs
		out = append(out, rec)
	}
	return out, alias
}

// dedupeKeyValue returns the namespaced map key for a record. The
// prefixes keep numeric_id values from ever colliding with point_key
// values.
func dedupeKeyValue(p DetectedPoint, key DedupeKey) string {
	if key == DedupeKeyNumericID && p.NumericID != "" {
		return "id:" + p.NumericID
	}
	return "key:" + p.PointKey
}
