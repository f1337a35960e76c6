package domain

import (
	"fmt"
	"testing"
)

func TestRankPool(t *testing.T) {
	hits := []Hit{
		{ID: "a", Relevance: 10},
		{ID: "b", Relevance: 30},
		{ID: "c", Relevance: 30},
		{ID: "d", Relevance: 20},
	}

	ranked := RankPool(hits, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected pool capped at 3, got %d", len(ranked))
	}
	// 同点はもとの発見順を保つ
	if ranked[0].ID != "b" || ranked[1].ID != "c" || ranked[2].ID != "d" {
		t.Fatalf("unexpected order: %+v", ranked)
	}
}

func TestRankPoolZeroLimitKeepsAll(t *testing.T) {
	hits := []Hit{{ID: "a", Relevance: 1}, {ID: "b", Relevance: 2}}
	if got := RankPool(hits, 0); len(got) != 2 {
		t.Fatalf("zero limit must not truncate, got %d", len(got))
	}
}

func TestMergeHits(t *testing.T) {
	templates := []Hit{
		{ID: "t1", Kind: KindTemplate, Relevance: 50},
		{ID: "t2", Kind: KindTemplate, Relevance: 15},
	}
	questions := []Hit{
		{ID: "q1", Kind: KindQuestion, Relevance: 50},
		{ID: "q2", Kind: KindQuestion, Relevance: 40},
	}
	comments := []Hit{{ID: "c1", Kind: KindComment, Relevance: 45}}

	merged := MergeHits(templates, questions, comments)
	if len(merged) != 5 {
		t.Fatalf("expected 5 hits, got %d", len(merged))
	}
	wantOrder := []string{"t1", "q1", "c1", "q2", "t2"}
	for i, id := range wantOrder {
		if merged[i].ID != id {
			t.Fatalf("position %d: got %s, want %s (%+v)", i, merged[i].ID, id, merged)
		}
	}
}

func TestMergeHitsGlobalCap(t *testing.T) {
	pool := make([]Hit, 0, 30)
	for i := 0; i < 30; i++ {
		pool = append(pool, Hit{ID: fmt.Sprintf("h%d", i), Relevance: float64(30 - i)})
	}

	merged := MergeHits(pool)
	if len(merged) != GlobalResultLimit {
		t.Fatalf("expected merged list capped at %d, got %d", GlobalResultLimit, len(merged))
	}
	if merged[0].ID != "h0" {
		t.Fatalf("highest relevance must come first, got %+v", merged[0])
	}
}

func TestMergeHitsEmpty(t *testing.T) {
	merged := MergeHits(nil, []Hit{})
	if merged == nil || len(merged) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", merged)
	}
}
