package application

import (
	"context"
	"time"

	"github.com/formbase/formbase-services/api/internal/analytics/domain"
)

// analyticsService implements AnalyticsService.
type analyticsService struct {
	templates   TemplateRepository
	submissions SubmissionRepository
	location    *time.Location
}

// NewAnalyticsService creates a new AnalyticsService. The location anchors
// timeline day-bucketing.
func NewAnalyticsService(templates TemplateRepository, submissions SubmissionRepository, location *time.Location) AnalyticsService {
	return &analyticsService{templates: templates, submissions: submissions, location: location}
}

// TemplateReport assembles the full analytics report for one template:
// schema resolution happens once, every submission is normalized against it,
// and each question gets its type-specific aggregate. The template must
// exist; an absent template is a not-found condition, never an empty report.
func (s *analyticsService) TemplateReport(ctx context.Context, templateID string) (*TemplateReport, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByTemplate(ctx, template.ID)
	if err != nil {
		return nil, err
	}

	columns, timestamps, uniqueUsers := collectAnswers(template.Questions, submissions)

	aggregates := make([]domain.QuestionAggregate, 0, len(template.Questions))
	for i, question := range template.Questions {
		aggregates = append(aggregates, domain.AggregateQuestion(question, columns[i]))
	}

	return &TemplateReport{
		TemplateID:        template.ID,
		Title:             template.Title,
		TotalResponses:    len(submissions),
		UniqueUsers:       uniqueUsers,
		QuestionAnalytics: aggregates,
		Timeline:          domain.BuildTimeline(timeNow(), s.location, timestamps),
	}, nil
}

// collectAnswers normalizes every submission against the schema and groups
// the non-missing values per question, alongside submission timestamps and
// the distinct submitter count.
func collectAnswers(questions []domain.Question, submissions []domain.Submission) ([][]any, []time.Time, int) {
	columns := make([][]any, len(questions))
	timestamps := make([]time.Time, 0, len(submissions))
	submitters := make(map[string]struct{}, len(submissions))

	for _, submission := range submissions {
		answers := domain.ExtractAnswers(questions, submission.Answers)
		for i, answer := range answers {
			if answer.Missing {
				continue
			}
			columns[i] = append(columns[i], answer.Value)
		}
		timestamps = append(timestamps, submission.CreatedAt)
		submitters[submission.SubmitterID] = struct{}{}
	}
	return columns, timestamps, len(submitters)
}
