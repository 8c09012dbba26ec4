// Package points reconciles detected report points and evaluator findings
// into the canonical, stably-ordered points overview.
package points

// Kind classifies a detected structural unit.
type Kind string

const (
	KindPoint    Kind = "point"
	KindSubpoint Kind = "subpoint"
	KindSection  Kind = "section"
	KindOther    Kind = "other"
)

// Eligible reports whether a kind appears in the flat overview.
// Sections and other scaffolding are excluded.
func (k Kind) Eligible() bool {
	return k == KindPoint || k == KindSubpoint
}

// Grade is a TG condition grade as used in Norwegian condition reports
// (NS 3600). Empty string means no grade was assigned.
type Grade string

const (
	GradeNone Grade = ""
	GradeTG0  Grade = "TG0"
	GradeTG1  Grade = "TG1"
	GradeTGIU Grade = "TGIU" // not examined
	GradeTG2  Grade = "TG2"
	GradeTG3  Grade = "TG3"
)

// rank orders grades by severity. TGIU sits between TG1 and TG2: an
// unexamined component is worse than a confirmed-fine one but carries
// less weight than a documented deviation.
func (g Grade) rank() int {
	switch g {
	case GradeTG3:
		return 5
	case GradeTG2:
		return 4
	case GradeTGIU:
		return 3
	case GradeTG1:
		return 2
	case GradeTG0:
		return 1
	default:
		return 0
	}
}

// Worse returns the more severe of two grades.
func (g Grade) Worse(other Grade) Grade {
	if other.rank() > g.rank() {
		return other
	}
	return g
}

// Severity classifies a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Status is the derived per-point state shown in the overview.
type Status string

const (
	StatusClean    Status = "clean"
	StatusFlagged  Status = "flagged"
	StatusCritical Status = "critical"
)

// SortMode is the single global ordering strategy chosen per document.
type SortMode string

const (
	SortModeNumeric       SortMode = "NUMERIC"
	SortModeDocumentOrder SortMode = "DOCUMENT_ORDER"
)

// DedupeKey names the field used to collapse duplicate detections.
type DedupeKey string

const (
	DedupeKeyNumericID DedupeKey = "numeric_id"
	DedupeKeyPointKey  DedupeKey = "point_key"
)

// DetectedPoint is one structural point found in a report. The set of
// detected points for a document is produced once per content hash and
// frozen before any findings are generated against it.
type DetectedPoint struct {
	PointKey    string   `json:"point_key"`
	NumericID   string   `json:"numeric_id,omitempty"`
	NativeLabel string   `json:"native_label,omitempty"`
	NativePath  string   `json:"native_path,omitempty"`
	Title       string   `json:"title,omitempty"`
	Kind        Kind     `json:"kind"`
	TG          Grade    `json:"tg,omitempty"`
	OrderInDoc  int      `json:"order_in_doc,omitempty"` // 1-based reading order, 0 if N/A
	PageStart   int      `json:"page_start,omitempty"`   // 0 if N/A
	AnchorText  string   `json:"anchor_text,omitempty"`
	FindingIDs  []string `json:"finding_ids,omitempty"`
}

// Finding is an evaluator observation attached to a detected point.
type Finding struct {
	ID          string   `json:"id"`
	PointKey    string   `json:"point_key"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
	StandardRef string   `json:"standard_reference,omitempty"`
	TG          Grade    `json:"tg,omitempty"`
}

// Where locates a point in the source document.
type Where struct {
	Page   int    `json:"page,omitempty"`
	Anchor string `json:"anchor,omitempty"`
}

// OverviewEntry is one row of the points overview.
type OverviewEntry struct {
	DisplayIndex int      `json:"display_index"`
	PointKey     string   `json:"point_key"`
	NumericID    string   `json:"numeric_id,omitempty"`
	NativeLabel  string   `json:"native_label,omitempty"`
	Title        string   `json:"title,omitempty"`
	TG           Grade    `json:"tg,omitempty"`
	Status       Status   `json:"status"`
	Summary      string   `json:"summary"`
	FindingIDs   []string `json:"finding_ids"`
	Where        Where    `json:"where"`
}

// Ordering is the diagnostic metadata block on the overview envelope.
type Ordering struct {
	Mode      SortMode  `json:"mode"`
	DedupeKey DedupeKey `json:"dedupe_key"`
	Source    string    `json:"source"`
}

// UnresolvedFinding records a finding whose point reference did not
// resolve to an overview entry. These indicate an upstream contract
// violation and are surfaced rather than dropped.
type UnresolvedFinding struct {
	FindingID string `json:"finding_id"`
	PointKey  string `json:"point_key"`
	Reason    string `json:"reason"`
}

// Overview is the output envelope. It is rebuilt on every request from
// the frozen detected-points snapshot plus current findings, and is
// never persisted as a source of truth.
type Overview struct {
	Ordering   Ordering            `json:"ordering"`
	Points     []OverviewEntry     `json:"points_overview"`
	Unresolved []UnresolvedFinding `json:"unresolved,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"`
}
