package model

// Status is the terminal verdict for one audited draft
type Status string

const (
	StatusPass    Status = "PASS"    // Draft is safe to publish as-is
	StatusFixed   Status = "FIXED"   // A factual error was found and corrected
	StatusFlagged Status = "FLAGGED" // The engine could not adjudicate; needs a human
)

// Valid reports whether s is one of the closed status values
func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusFixed, StatusFlagged:
		return true
	}
	return false
}

// rank orders statuses by severity for monotonic escalation
func (s Status) rank() int {
	switch s {
	case StatusFixed:
		return 1
	case StatusFlagged:
		return 2
	default:
		return 0
	}
}

// Escalate returns the more severe of s and next. A status never moves
// back toward PASS once a failure has been recorded.
func (s Status) Escalate(next Status) Status {
	if next.rank() > s.rank() {
		return next
	}
	return s
}

// DimensionResult is the binary outcome of a single check dimension
type DimensionResult string

const (
	DimensionPass DimensionResult = "PASS"
	DimensionFail DimensionResult = "FAIL"
)

// Breakdown dimension names
const (
	DimEntity = "entity" // Unsupported institution mentions
	DimNumber = "number" // Financial quantity mismatches
	DimTime   = "time"   // Years absent from the evidence
	DimTone   = "tone"   // Advisory exaggeration assessment
)

// AuditOutcome is the immutable record produced for one draft. It is
// created exactly once per draft per run and never mutated afterwards.
type AuditOutcome struct {
	EventID         string                     `json:"event_id"`
	Status          Status                     `json:"status"`
	CorrectionNotes string                     `json:"correction_notes"`
	RevisedSummary  string                     `json:"revised_summary,omitempty"`
	Breakdown       map[string]DimensionResult `json:"breakdown"`
}
