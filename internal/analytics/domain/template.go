package domain

import "time"

// QuestionType tags how a question's answers are aggregated.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionTextarea       QuestionType = "textarea"
	QuestionInteger        QuestionType = "integer"
	QuestionNumber         QuestionType = "number"
	QuestionRating         QuestionType = "rating"
	QuestionLinear         QuestionType = "linear"
	QuestionCheckbox       QuestionType = "checkbox"
	QuestionRadio          QuestionType = "radio"
	QuestionSelect         QuestionType = "select"
	QuestionMultipleChoice QuestionType = "multipleChoice"
)

// ParseQuestionType maps a raw type tag onto the closed QuestionType set.
// Unknown or empty tags fall back to free text.
func ParseQuestionType(raw string) QuestionType {
	switch QuestionType(raw) {
	case QuestionText, QuestionTextarea, QuestionInteger, QuestionNumber,
		QuestionRating, QuestionLinear, QuestionCheckbox, QuestionRadio,
		QuestionSelect, QuestionMultipleChoice:
		return QuestionType(raw)
	default:
		return QuestionText
	}
}

// Numeric reports whether the type's answers aggregate as numbers.
func (t QuestionType) Numeric() bool {
	switch t {
	case QuestionInteger, QuestionNumber, QuestionRating, QuestionLinear:
		return true
	default:
		return false
	}
}

// Choice reports whether the type's answers aggregate as a frequency table
// of selected options.
func (t QuestionType) Choice() bool {
	switch t {
	case QuestionCheckbox, QuestionRadio, QuestionSelect, QuestionMultipleChoice:
		return true
	default:
		return false
	}
}

// Question is one resolved entry of a template's question schema.
// Index is positional within the template's question list; answers reference
// questions by this position.
type Question struct {
	Index    int
	Type     QuestionType
	Label    string
	Required bool
}

// Template is a reusable form definition together with its resolved schema.
type Template struct {
	ID             string
	OwnerID        string
	OwnerName      string
	Title          string
	Description    string
	Topic          string
	Public         bool
	AllowedUserIDs []string
	Tags           []string
	Questions      []Question
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Submission is one respondent's raw answers to a template. Answers stays
// loosely typed on purpose; ExtractAnswers is the only reader.
type Submission struct {
	ID          string
	TemplateID  string
	SubmitterID string
	Answers     any
	CreatedAt   time.Time
}
