package domain

import (
	"reflect"
	"testing"
)

func TestExtractAnswers(t *testing.T) {
	questions := []Question{
		{Index: 0, Type: QuestionText},
		{Index: 1, Type: QuestionRating},
		{Index: 2, Type: QuestionCheckbox},
		{Index: 3, Type: QuestionText},
	}
	payload := map[string]any{
		"0":         "great product",
		"question1": 4,
		"2":         []any{"Web", nil, "iOS", []any{"nested"}},
	}

	answers := ExtractAnswers(questions, payload)
	if len(answers) != 4 {
		t.Fatalf("expected 4 answers, got %d", len(answers))
	}
	if answers[0].Missing || answers[0].Value != "great product" {
		t.Fatalf("unexpected answer 0: %+v", answers[0])
	}
	if answers[1].Missing || answers[1].Value != 4 {
		t.Fatalf("legacy question-prefixed key not resolved: %+v", answers[1])
	}
	if !reflect.DeepEqual(answers[2].Value, []any{"Web", "iOS"}) {
		t.Fatalf("array answer not flattened: %+v", answers[2].Value)
	}
	if !answers[3].Missing {
		t.Fatalf("unanswered question should be missing: %+v", answers[3])
	}
}

func TestExtractAnswersCorruptPayload(t *testing.T) {
	questions := []Question{{Index: 0}, {Index: 1}}
	for _, payload := range []any{nil, "corrupt", []any{"a", "b"}, 12} {
		answers := ExtractAnswers(questions, payload)
		if len(answers) != 2 {
			t.Fatalf("expected one entry per question, got %d", len(answers))
		}
		for i, answer := range answers {
			if !answer.Missing {
				t.Fatalf("answer %d should be missing for payload %v", i, payload)
			}
			if answer.QuestionIndex != i {
				t.Fatalf("answer %d carries index %d", i, answer.QuestionIndex)
			}
		}
	}
}

func TestExtractAnswersNilValueIsMissing(t *testing.T) {
	answers := ExtractAnswers([]Question{{Index: 0}}, map[string]any{"0": nil})
	if !answers[0].Missing {
		t.Fatalf("explicit null should count as missing: %+v", answers[0])
	}
}
