package verify

import "strings"

// DefaultCriticalEntities is the built-in registry of sensitive
// institutional names. Confusing any of these in a published note is a
// hard compliance error (writing 央行 when the source said 财政部).
var DefaultCriticalEntities = []string{
	"中国人民银行",
	"财政部",
	"证监会",
	"国务院",
	"美联储",
}

// EntityGuard detects mentions of sensitive institutions in a draft that
// the evidence never supports. The registry is fixed at construction and
// never mutated, so a single guard is safe to share across concurrent
// audits.
type EntityGuard struct {
	registry []string
}

// NewEntityGuard creates a guard over the given registry. An empty
// registry falls back to the built-in list.
func NewEntityGuard(entities []string) *EntityGuard {
	if len(entities) == 0 {
		entities = DefaultCriticalEntities
	}
	registry := make([]string, len(entities))
	copy(registry, entities)
	return &EntityGuard{registry: registry}
}

// Unsupported returns the registry entities that appear in the draft text
// but nowhere in the evidence text. Matching is plain case-sensitive
// substring containment; short names can match inside unrelated longer
// names, which is a known false-positive source.
func (g *EntityGuard) Unsupported(draftText, evidenceText string) []string {
	var unsupported []string
	for _, entity := range g.registry {
		if entity == "" {
			continue
		}
		if strings.Contains(draftText, entity) && !strings.Contains(evidenceText, entity) {
			unsupported = append(unsupported, entity)
		}
	}
	return unsupported
}
