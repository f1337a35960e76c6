package insights

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	analyticsapp "github.com/formbase/formbase-services/api/internal/analytics/application"
	"github.com/formbase/formbase-services/api/internal/analytics/domain"
	"github.com/formbase/formbase-services/api/internal/interfaces/http/common"
)

const templateHexID = "65a1b2c3d4e5f6a7b8c9d0e1"

type stubTemplates struct {
	template *domain.Template
	err      error
}

func (s *stubTemplates) FindByID(context.Context, string) (*domain.Template, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.template, nil
}

func (s *stubTemplates) ListPublicByOwner(context.Context, string) ([]domain.Template, error) {
	return nil, nil
}

type stubAnalytics struct {
	report *analyticsapp.TemplateReport
	err    error
}

func (s *stubAnalytics) TemplateReport(context.Context, string) (*analyticsapp.TemplateReport, error) {
	return s.report, s.err
}

// asUser は認証ミドルウェア相当: プリンシパルをコンテキストへ入れる。
func asUser(user *common.AuthenticatedUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(common.ContextWithUser(r.Context(), *user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(templates *stubTemplates, analytics *stubAnalytics, user *common.AuthenticatedUser) chi.Router {
	handler := NewHandler(Config{
		Logger:    log.New(io.Discard, "", 0),
		Templates: templates,
		Analytics: analytics,
	})
	r := chi.NewRouter()
	handler.Register(r, asUser(user))
	return r
}

func requestAnalytics(router chi.Router, id string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/"+id+"/analytics", nil))
	return rec
}

func TestTemplateAnalyticsHandler(t *testing.T) {
	templates := &stubTemplates{template: &domain.Template{ID: templateHexID, OwnerID: "U1", Title: "Feedback"}}
	analytics := &stubAnalytics{report: &analyticsapp.TemplateReport{
		TemplateID:     templateHexID,
		Title:          "Feedback",
		TotalResponses: 5,
		UniqueUsers:    3,
	}}
	router := newTestRouter(templates, analytics, &common.AuthenticatedUser{ID: "U1"})

	rec := requestAnalytics(router, templateHexID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report analyticsapp.TemplateReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if report.TotalResponses != 5 || report.UniqueUsers != 3 {
		t.Fatalf("unexpected report body: %+v", report)
	}
}

func TestTemplateAnalyticsHandlerAuthz(t *testing.T) {
	templates := &stubTemplates{template: &domain.Template{ID: templateHexID, OwnerID: "U1"}}
	analytics := &stubAnalytics{report: &analyticsapp.TemplateReport{TemplateID: templateHexID}}

	tests := []struct {
		name string
		user *common.AuthenticatedUser
		want int
	}{
		{"owner", &common.AuthenticatedUser{ID: "U1"}, http.StatusOK},
		{"admin", &common.AuthenticatedUser{ID: "U9", Role: "admin"}, http.StatusOK},
		{"stranger", &common.AuthenticatedUser{ID: "U2"}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(templates, analytics, tt.user)
			if rec := requestAnalytics(router, templateHexID); rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTemplateAnalyticsHandlerBadID(t *testing.T) {
	router := newTestRouter(&stubTemplates{}, &stubAnalytics{}, &common.AuthenticatedUser{ID: "U1"})
	if rec := requestAnalytics(router, "not-an-object-id"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTemplateAnalyticsHandlerNotFound(t *testing.T) {
	templates := &stubTemplates{err: mongo.ErrNoDocuments}
	router := newTestRouter(templates, &stubAnalytics{}, &common.AuthenticatedUser{ID: "U1"})
	if rec := requestAnalytics(router, templateHexID); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
