package domain

import "sort"

// EntityKind names the kind of entity a search hit points at.
type EntityKind string

const (
	KindTemplate EntityKind = "template"
	KindQuestion EntityKind = "question"
	KindComment  EntityKind = "comment"
)

// Per-kind pool caps bound fan-out before the global merge; GlobalResultLimit
// caps the merged list handed back to the client.
const (
	TemplatePoolLimit = 10
	QuestionPoolLimit = 8
	CommentPoolLimit  = 5
	GlobalResultLimit = 20
)

// Hit is one ephemeral search result; produced and discarded within a single
// search call.
type Hit struct {
	ID        string     `json:"id"`
	Kind      EntityKind `json:"type"`
	Title     string     `json:"title"`
	Snippet   string     `json:"snippet,omitempty"`
	Author    string     `json:"author,omitempty"`
	Relevance float64    `json:"relevance"`
}

// RankPool orders one entity-kind pool by descending relevance and truncates
// it to limit. Sorting is stable so ties keep discovery order.
func RankPool(hits []Hit, limit int) []Hit {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Relevance > hits[j].Relevance
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// MergeHits pools already-capped per-kind hit lists, sorts them globally by
// descending relevance (stable on ties) and truncates to GlobalResultLimit.
func MergeHits(pools ...[]Hit) []Hit {
	merged := make([]Hit, 0)
	for _, pool := range pools {
		merged = append(merged, pool...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})
	if len(merged) > GlobalResultLimit {
		merged = merged[:GlobalResultLimit]
	}
	return merged
}
