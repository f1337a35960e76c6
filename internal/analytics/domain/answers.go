package domain

import "strconv"

// NormalizedAnswer is the typed view of one question's answer within a single
// submission. Value is a scalar or a []any of scalars; it is nil when Missing.
type NormalizedAnswer struct {
	QuestionIndex int
	Value         any
	Missing       bool
}

// ExtractAnswers resolves one submission's raw answer payload against the
// schema. Answers are looked up by positional question index. A payload that
// is not a keyed structure yields Missing for every question: one corrupt
// submission must not fail the report for the whole template.
func ExtractAnswers(questions []Question, payload any) []NormalizedAnswer {
	fields, indexable := payload.(map[string]any)

	answers := make([]NormalizedAnswer, len(questions))
	for i, q := range questions {
		answers[i] = NormalizedAnswer{QuestionIndex: q.Index, Missing: true}
		if !indexable {
			continue
		}
		raw, found := lookupAnswer(fields, q.Index)
		if !found || raw == nil {
			continue
		}
		answers[i] = NormalizedAnswer{QuestionIndex: q.Index, Value: normalizeAnswerValue(raw)}
	}
	return answers
}

// lookupAnswer tries the bare index key first, then the "question<N>" form
// older clients submitted.
func lookupAnswer(fields map[string]any, index int) (any, bool) {
	key := strconv.Itoa(index)
	if value, ok := fields[key]; ok {
		return value, true
	}
	if value, ok := fields["question"+key]; ok {
		return value, true
	}
	return nil, false
}

// normalizeAnswerValue keeps scalars as-is and reduces arrays to a flat list
// of non-nil scalars (multi-select answers).
func normalizeAnswerValue(raw any) any {
	list, ok := raw.([]any)
	if !ok {
		return raw
	}
	values := make([]any, 0, len(list))
	for _, item := range list {
		if item == nil {
			continue
		}
		if _, nested := item.([]any); nested {
			continue
		}
		values = append(values, item)
	}
	return values
}
