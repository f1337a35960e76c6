package application

import (
	"context"
	"fmt"

	"github.com/formbase/formbase-services/api/internal/search/domain"
)

// snippetRuneLimit bounds comment/description snippets in search results.
const snippetRuneLimit = 120

// searchService implements SearchService.
type searchService struct {
	repo CandidateRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(repo CandidateRepository) SearchService {
	return &searchService{repo: repo}
}

// Search loads one candidate pool per entity kind, scores each pool against
// the query, caps it, and merges everything into the single ranked list.
// Query length validation is the caller's concern.
func (s *searchService) Search(ctx context.Context, query string) ([]domain.Hit, error) {
	templates, err := s.repo.PublicTemplates(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.repo.PublicQuestions(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.PublicComments(ctx)
	if err != nil {
		return nil, err
	}

	templatePool := scoreTemplates(query, templates)
	questionPool := scoreQuestions(query, questions)
	commentPool := scoreComments(query, comments)

	return domain.MergeHits(
		domain.RankPool(templatePool, domain.TemplatePoolLimit),
		domain.RankPool(questionPool, domain.QuestionPoolLimit),
		domain.RankPool(commentPool, domain.CommentPoolLimit),
	), nil
}

// scoreTemplates scores title and description independently and sums them.
func scoreTemplates(query string, candidates []domain.TemplateCandidate) []domain.Hit {
	hits := make([]domain.Hit, 0, len(candidates))
	for _, candidate := range candidates {
		relevance := domain.ScoreFields(query, candidate.Title, candidate.Description)
		if relevance <= 0 {
			continue
		}
		hits = append(hits, domain.Hit{
			ID:        candidate.ID,
			Kind:      domain.KindTemplate,
			Title:     candidate.Title,
			Snippet:   truncateSnippet(candidate.Description),
			Author:    candidate.AuthorName,
			Relevance: relevance,
		})
	}
	return hits
}

func scoreQuestions(query string, candidates []domain.QuestionCandidate) []domain.Hit {
	hits := make([]domain.Hit, 0, len(candidates))
	for _, candidate := range candidates {
		relevance := domain.Score(query, candidate.Label)
		if relevance <= 0 {
			continue
		}
		hits = append(hits, domain.Hit{
			ID:        fmt.Sprintf("%s:%d", candidate.TemplateID, candidate.Index),
			Kind:      domain.KindQuestion,
			Title:     candidate.Label,
			Snippet:   candidate.TemplateTitle,
			Author:    candidate.AuthorName,
			Relevance: relevance,
		})
	}
	return hits
}

func scoreComments(query string, candidates []domain.CommentCandidate) []domain.Hit {
	hits := make([]domain.Hit, 0, len(candidates))
	for _, candidate := range candidates {
		relevance := domain.Score(query, candidate.Text)
		if relevance <= 0 {
			continue
		}
		hits = append(hits, domain.Hit{
			ID:        candidate.ID,
			Kind:      domain.KindComment,
			Title:     candidate.TemplateTitle,
			Snippet:   truncateSnippet(candidate.Text),
			Author:    candidate.AuthorName,
			Relevance: relevance,
		})
	}
	return hits
}

func truncateSnippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetRuneLimit {
		return text
	}
	return string(runes[:snippetRuneLimit]) + "..."
}
