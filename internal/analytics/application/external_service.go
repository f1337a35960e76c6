package application

import (
	"context"
	"fmt"

	"github.com/formbase/formbase-services/api/internal/analytics/domain"
)

// externalService implements ExternalService.
type externalService struct {
	templates   TemplateRepository
	submissions SubmissionRepository
}

// NewExternalService creates a new ExternalService.
func NewExternalService(templates TemplateRepository, submissions SubmissionRepository) ExternalService {
	return &externalService{templates: templates, submissions: submissions}
}

// ListTemplates aggregates every public template of the token owner. A
// template with zero responses still lists one question entry per schema
// question, with empty aggregates.
func (s *externalService) ListTemplates(ctx context.Context, user ExternalUser) (*ExternalTemplateList, error) {
	templates, err := s.templates.ListPublicByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]ExternalTemplate, 0, len(templates))
	for _, template := range templates {
		submissions, err := s.submissions.ListByTemplate(ctx, template.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, buildExternalTemplate(&template, submissions))
	}

	return &ExternalTemplateList{
		User:           user,
		Templates:      entries,
		TotalTemplates: len(entries),
	}, nil
}

// TemplateDetail echoes every individual answer of one template alongside
// its submitter. Templates that are absent, not owned by the token user, or
// not public all surface as not found.
func (s *externalService) TemplateDetail(ctx context.Context, userID, templateID string) (*ExternalTemplateDetail, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.OwnerID != userID || !template.Public {
		return nil, ErrTemplateNotFound
	}

	submissions, err := s.submissions.ListByTemplate(ctx, template.ID)
	if err != nil {
		return nil, err
	}

	detailed := make([]ExternalDetailedQuestion, 0, len(template.Questions))
	for _, question := range template.Questions {
		detailed = append(detailed, buildDetailedQuestion(template.ID, question, submissions))
	}

	return &ExternalTemplateDetail{
		Template:          buildExternalTemplate(template, submissions),
		DetailedQuestions: detailed,
	}, nil
}

func buildExternalTemplate(template *domain.Template, submissions []domain.Submission) ExternalTemplate {
	columns, _, _ := collectAnswers(template.Questions, submissions)

	questions := make([]ExternalQuestion, 0, len(template.Questions))
	for i, question := range template.Questions {
		aggregate := domain.AggregateQuestion(question, columns[i])
		questions = append(questions, ExternalQuestion{
			QuestionText: question.Label,
			QuestionType: question.Type,
			TotalAnswers: aggregate.TotalAnswers,
			Aggregation:  aggregate,
		})
	}

	return ExternalTemplate{
		ID:             template.ID,
		Title:          template.Title,
		Description:    template.Description,
		Topic:          template.Topic,
		Tags:           template.Tags,
		CreatedAt:      template.CreatedAt,
		TotalResponses: len(submissions),
		Questions:      questions,
	}
}

func buildDetailedQuestion(templateID string, question domain.Question, submissions []domain.Submission) ExternalDetailedQuestion {
	answers := make([]ExternalAnswer, 0, len(submissions))
	for _, submission := range submissions {
		normalized := domain.ExtractAnswers([]domain.Question{question}, submission.Answers)
		if len(normalized) == 0 || normalized[0].Missing {
			continue
		}
		answers = append(answers, ExternalAnswer{
			Answer:      normalized[0].Value,
			UserID:      submission.SubmitterID,
			SubmittedAt: submission.CreatedAt,
		})
	}

	return ExternalDetailedQuestion{
		QuestionID:   fmt.Sprintf("%s:%d", templateID, question.Index),
		QuestionText: question.Label,
		QuestionType: question.Type,
		Required:     question.Required,
		Answers:      answers,
		TotalAnswers: len(answers),
	}
}
