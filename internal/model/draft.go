package model

// DraftReport is a machine-drafted research note produced by the upstream
// journalist stage. EventID may be empty or stale when upstream defaults
// leak through; the match package handles that. Read-only to the engine.
type DraftReport struct {
	EventID     string   `json:"event_id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Background  string   `json:"background,omitempty"`
	Analysis    string   `json:"analysis,omitempty"`
	Outlook     string   `json:"outlook,omitempty"`
	KeyPoints   []string `json:"key_points,omitempty"`
	SourceRefs  []string `json:"source_refs,omitempty"`
	ImpactScore int      `json:"impact_score,omitempty"`
}
