package domain

import "testing"

func TestResolveSchema(t *testing.T) {
	raw := []any{
		map[string]any{"type": "rating", "title": "Overall satisfaction", "required": true},
		map[string]any{"type": "checkbox", "description": "Platforms you use"},
		map[string]any{"type": "mystery", "text": "Free form"},
	}

	questions := ResolveSchema(raw)
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	if questions[0].Type != QuestionRating || questions[0].Label != "Overall satisfaction" || !questions[0].Required {
		t.Fatalf("unexpected first question: %+v", questions[0])
	}
	if questions[1].Label != "Platforms you use" {
		t.Fatalf("description fallback not used: %+v", questions[1])
	}
	if questions[2].Type != QuestionText || questions[2].Label != "Free form" {
		t.Fatalf("unknown type should fall back to text: %+v", questions[2])
	}
	for i, q := range questions {
		if q.Index != i {
			t.Fatalf("question %d carries index %d", i, q.Index)
		}
	}
}

func TestResolveSchemaNotAList(t *testing.T) {
	for _, raw := range []any{nil, "broken", 42, map[string]any{"type": "text"}} {
		questions := ResolveSchema(raw)
		if questions == nil || len(questions) != 0 {
			t.Fatalf("expected empty schema for %v, got %+v", raw, questions)
		}
	}
}

func TestResolveSchemaKeepsPositionsForBadEntries(t *testing.T) {
	raw := []any{
		"not a map",
		map[string]any{"type": "integer", "title": "Visits per week"},
	}

	questions := ResolveSchema(raw)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Index != 0 || questions[0].Type != QuestionText {
		t.Fatalf("bad entry should become a positional text question: %+v", questions[0])
	}
	if questions[1].Index != 1 || questions[1].Type != QuestionInteger {
		t.Fatalf("entry after a bad one lost its position: %+v", questions[1])
	}
}
