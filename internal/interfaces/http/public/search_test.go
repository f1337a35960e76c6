package public

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	searchdomain "github.com/formbase/formbase-services/api/internal/search/domain"
)

type stubSearchService struct {
	hits []searchdomain.Hit
	err  error

	lastQuery string
}

func (s *stubSearchService) Search(_ context.Context, query string) ([]searchdomain.Hit, error) {
	s.lastQuery = query
	return s.hits, s.err
}

type stubTagService struct {
	counts []searchdomain.TagCount
	err    error
}

func (s *stubTagService) Cloud(context.Context) ([]searchdomain.TagCount, error) {
	return s.counts, s.err
}

func newTestRouter(search *stubSearchService, tags *stubTagService) chi.Router {
	handler := NewHandler(Config{
		Logger: log.New(io.Discard, "", 0),
		Search: search,
		Tags:   tags,
	})
	r := chi.NewRouter()
	handler.Register(r)
	return r
}

func TestSearchHandler(t *testing.T) {
	search := &stubSearchService{hits: []searchdomain.Hit{
		{ID: "T1", Kind: searchdomain.KindTemplate, Title: "Feedback", Relevance: 110},
	}}
	router := newTestRouter(search, &stubTagService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=%20feedback%20", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if search.lastQuery != "feedback" {
		t.Fatalf("query not trimmed before search: %q", search.lastQuery)
	}

	var hits []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &hits); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(hits) != 1 || hits[0]["type"] != "template" || hits[0]["id"] != "T1" {
		t.Fatalf("unexpected response body: %+v", hits)
	}
}

func TestSearchHandlerShortQuery(t *testing.T) {
	router := newTestRouter(&stubSearchService{}, &stubTagService{})

	for _, target := range []string{"/search", "/search?q=a", "/search?q=%20%20a%20"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestSearchHandlerNoMatches(t *testing.T) {
	router := newTestRouter(&stubSearchService{hits: nil}, &stubTagService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=nothing", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestTagCloudHandler(t *testing.T) {
	tags := &stubTagService{counts: []searchdomain.TagCount{{Tag: "feedback", Count: 7}}}
	router := newTestRouter(&stubSearchService{}, tags)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tags", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var counts []searchdomain.TagCount
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(counts) != 1 || counts[0].Tag != "feedback" || counts[0].Count != 7 {
		t.Fatalf("unexpected tag cloud: %+v", counts)
	}
}
