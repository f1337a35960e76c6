package application

import (
	"context"
	"errors"
	"time"

	"github.com/formbase/formbase-services/api/internal/analytics/domain"
)

// ErrTemplateNotFound signals that a template is absent, or hidden from the
// requesting consumer. Handlers translate it to a 404.
var ErrTemplateNotFound = errors.New("template not found")

// timeNow is swapped out by tests that pin the timeline anchor.
var timeNow = time.Now

// TemplateRepository is the analytics-context port onto the template records.
// TemplateRepository は分析コンテキストでテンプレートを読み取るためのポート。
type TemplateRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Template, error)
	ListPublicByOwner(ctx context.Context, ownerID string) ([]domain.Template, error)
}

// SubmissionRepository reads raw form responses.
// SubmissionRepository は回答レコードを読み取るためのポート。
type SubmissionRepository interface {
	ListByTemplate(ctx context.Context, templateID string) ([]domain.Submission, error)
}

// TemplateReport is the owner-facing analytics view of one template.
type TemplateReport struct {
	TemplateID        string                     `json:"templateId"`
	Title             string                     `json:"title"`
	TotalResponses    int                        `json:"totalResponses"`
	UniqueUsers       int                        `json:"uniqueUsers"`
	QuestionAnalytics []domain.QuestionAggregate `json:"questionAnalytics"`
	Timeline          []domain.TimelinePoint     `json:"timeline"`
}

// AnalyticsService describes the owner analytics use-case.
// AnalyticsService はテンプレート所有者向けの集計ユースケースを提供するリーダーモデル。
type AnalyticsService interface {
	TemplateReport(ctx context.Context, templateID string) (*TemplateReport, error)
}

// ExternalUser identifies the API-token owner echoed by the external API.
type ExternalUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExternalQuestion is the per-question summary of the external listing view.
type ExternalQuestion struct {
	QuestionText string                   `json:"questionText"`
	QuestionType domain.QuestionType      `json:"questionType"`
	TotalAnswers int                      `json:"totalAnswers"`
	Aggregation  domain.QuestionAggregate `json:"aggregation"`
}

// ExternalTemplate is one template entry of the external listing view.
type ExternalTemplate struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Topic          string             `json:"topic,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	TotalResponses int                `json:"totalResponses"`
	Questions      []ExternalQuestion `json:"questions"`
}

// ExternalTemplateList is the bulk listing shape for token consumers.
type ExternalTemplateList struct {
	User           ExternalUser       `json:"user"`
	Templates      []ExternalTemplate `json:"templates"`
	TotalTemplates int                `json:"totalTemplates"`
}

// ExternalAnswer echoes one raw answer with its submitter identity.
type ExternalAnswer struct {
	Answer      any       `json:"answer"`
	UserID      string    `json:"userId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ExternalDetailedQuestion lists every individual answer of one question
// without aggregation collapsing.
type ExternalDetailedQuestion struct {
	QuestionID   string              `json:"questionId"`
	QuestionText string              `json:"questionText"`
	QuestionType domain.QuestionType `json:"questionType"`
	Required     bool                `json:"required"`
	Answers      []ExternalAnswer    `json:"answers"`
	TotalAnswers int                 `json:"totalAnswers"`
}

// ExternalTemplateDetail is the single-template detailed view.
type ExternalTemplateDetail struct {
	Template          ExternalTemplate           `json:"template"`
	DetailedQuestions []ExternalDetailedQuestion `json:"detailedQuestions"`
}

// ExternalService describes the bulk/API-token read use-cases.
// ExternalService は API トークン利用者向けの一括参照ユースケース。
type ExternalService interface {
	ListTemplates(ctx context.Context, user ExternalUser) (*ExternalTemplateList, error)
	TemplateDetail(ctx context.Context, userID, templateID string) (*ExternalTemplateDetail, error)
}
