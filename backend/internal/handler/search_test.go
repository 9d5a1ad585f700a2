package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

func TestSearchHandler(t *testing.T) {
	h := newTestHandler()

	t.Run("query params reach the service", func(t *testing.T) {
		h.search = &MockSearchService{
			MockSearch: func(ctx context.Context, subject *domain.Subject, query domain.SearchQuery) (*domain.SearchResult, error) {
				assert.Equal(t, domain.SearchQuery{Term: "go lang", Scope: domain.ScopeTitle, Board: "general", Page: 1}, query)
				return &domain.SearchResult{Query: query.Term, Scope: query.Scope, Posts: []domain.Post{}}, nil
			},
		}
		rr := httptest.NewRecorder()
		h.Search(rr, httptest.NewRequest(http.MethodGet, "/v1/search?q=go+lang&scope=title&board=general&page=1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"query":"go lang"`)
	})

	t.Run("bad scope", func(t *testing.T) {
		h.search = &MockSearchService{
			MockSearch: func(ctx context.Context, subject *domain.Subject, query domain.SearchQuery) (*domain.SearchResult, error) {
				return nil, errors.NewValidation("scope", "must be one of title, content, all")
			},
		}
		rr := httptest.NewRecorder()
		h.Search(rr, httptest.NewRequest(http.MethodGet, "/v1/search?q=x&scope=body", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
