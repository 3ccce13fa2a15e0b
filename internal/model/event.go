package model

// TrustTier classifies the authority of a source outlet
type TrustTier int

const (
	TierUnknown     TrustTier = 0 // Not classified upstream
	TierOfficial    TrustTier = 1 // Ministries, central bank, regulators
	TierStateMedia  TrustTier = 2 // Official wire services and securities press
	TierMarketMedia TrustTier = 3 // Commercial financial media
)

func (t TrustTier) String() string {
	switch t {
	case TierOfficial:
		return "official"
	case TierStateMedia:
		return "state_media"
	case TierMarketMedia:
		return "market_media"
	default:
		return "unknown"
	}
}

// SourceArticle is one piece of upstream evidence attached to an event.
// Content may arrive as plain text or as raw markup; the verify package
// reduces it to visible text before any check runs.
type SourceArticle struct {
	Outlet string    `json:"outlet"`
	Tier   TrustTier `json:"tier"`
	Text   string    `json:"text"`
}

// Event is a clustered news event produced by the upstream analyst stage.
// It is read-only to the audit engine.
type Event struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Score    float64         `json:"score"`
	Category string          `json:"category"`
	Articles []SourceArticle `json:"articles"`
}
