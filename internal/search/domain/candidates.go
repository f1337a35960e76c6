package domain

// Candidate types carry only the text fields search scores against.
// Visibility filtering happens when pools are loaded: only public templates
// and their questions/comments ever become candidates.

// TemplateCandidate is a public template eligible for search.
type TemplateCandidate struct {
	ID          string
	Title       string
	Description string
	AuthorName  string
}

// QuestionCandidate is one question of a public template.
type QuestionCandidate struct {
	TemplateID    string
	Index         int
	Label         string
	TemplateTitle string
	AuthorName    string
}

// CommentCandidate is a free-text comment left on a public template.
type CommentCandidate struct {
	ID            string
	TemplateID    string
	Text          string
	TemplateTitle string
	AuthorName    string
}

// TagCount is one entry of the public tag cloud.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
