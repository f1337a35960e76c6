package application

import (
	"context"

	"github.com/formbase/formbase-services/api/internal/search/domain"
)

// tagCloudService implements TagCloudService.
type tagCloudService struct {
	repo TagRepository
}

// NewTagCloudService creates a new TagCloudService.
func NewTagCloudService(repo TagRepository) TagCloudService {
	return &tagCloudService{repo: repo}
}

func (s *tagCloudService) Cloud(ctx context.Context) ([]domain.TagCount, error) {
	counts, err := s.repo.PublicTagCounts(ctx)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.TagCount{}
	}
	return counts, nil
}
