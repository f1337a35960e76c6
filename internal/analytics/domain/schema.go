package domain

// ResolveSchema turns a template's raw question payload into the ordered
// Question list. Question schemas are user-defined and may be arbitrarily
// malformed: anything that is not a list resolves to an empty schema, and a
// list entry that is not a keyed structure resolves to a default free-text
// question so positional answer lookup stays aligned.
func ResolveSchema(raw any) []Question {
	list, ok := raw.([]any)
	if !ok {
		return []Question{}
	}

	questions := make([]Question, 0, len(list))
	for i, entry := range list {
		fields, ok := entry.(map[string]any)
		if !ok {
			questions = append(questions, Question{Index: i, Type: QuestionText})
			continue
		}
		questions = append(questions, Question{
			Index:    i,
			Type:     ParseQuestionType(stringField(fields, "type")),
			Label:    questionLabel(fields),
			Required: boolField(fields, "required"),
		})
	}
	return questions
}

// questionLabel prefers an explicit title, then descriptive text fields.
func questionLabel(fields map[string]any) string {
	for _, key := range []string{"title", "description", "text"} {
		if label := stringField(fields, key); label != "" {
			return label
		}
	}
	return ""
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

func boolField(fields map[string]any, key string) bool {
	value, _ := fields[key].(bool)
	return value
}
