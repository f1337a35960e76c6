package application

import (
	"context"

	"github.com/formbase/formbase-services/api/internal/search/domain"
)

// CandidateRepository loads the per-kind candidate pools search ranks.
// CandidateRepository は横断検索の候補プールを読み取るためのポート。
type CandidateRepository interface {
	PublicTemplates(ctx context.Context) ([]domain.TemplateCandidate, error)
	PublicQuestions(ctx context.Context) ([]domain.QuestionCandidate, error)
	PublicComments(ctx context.Context) ([]domain.CommentCandidate, error)
}

// TagRepository exposes tag frequencies over public templates.
type TagRepository interface {
	PublicTagCounts(ctx context.Context) ([]domain.TagCount, error)
}

// SearchService describes the cross-entity search use-case.
// SearchService はテンプレート・設問・コメントを横断するリーダーモデル。
type SearchService interface {
	Search(ctx context.Context, query string) ([]domain.Hit, error)
}

// TagCloudService describes the public tag cloud use-case.
type TagCloudService interface {
	Cloud(ctx context.Context) ([]domain.TagCount, error)
}
