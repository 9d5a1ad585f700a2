package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicom-dev/aicom/shared/api"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

func commentRouter(h *Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(asSubject(testMember))
	router.Get("/v1/posts/{post}/comments", h.GetComments)
	router.Post("/v1/posts/{post}/comments", h.CreateComment)
	router.Put("/v1/comments/{comment}", h.UpdateComment)
	router.Delete("/v1/comments/{comment}", h.DeleteComment)
	router.Post("/v1/comments/{comment}/edit", h.UpdateComment)
	return router
}

func TestGetCommentsHandler(t *testing.T) {
	h := newTestHandler()
	router := commentRouter(h)
	top := domain.CommentNode{Comment: domain.Comment{Id: uuid.New(), Content: "top"}, Replies: []domain.CommentNode{}}
	h.comment = &MockCommentService{
		MockList: func(ctx context.Context, subject *domain.Subject, postId domain.PostId) ([]domain.CommentNode, error) {
			return []domain.CommentNode{top}, nil
		},
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/posts/"+uuid.NewString()+"/comments", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp api.CommentTreeResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "top", resp.Comments[0].Content)
}

func TestCreateCommentHandler(t *testing.T) {
	h := newTestHandler()
	router := commentRouter(h)
	postId := uuid.New()
	parent := uuid.New()

	t.Run("reply via json", func(t *testing.T) {
		h.comment = &MockCommentService{
			MockCreate: func(ctx context.Context, subject *domain.Subject, got domain.PostId, content domain.CommentText, p *domain.CommentId) (*domain.Comment, error) {
				assert.Equal(t, postId, got)
				require.NotNil(t, p)
				assert.Equal(t, parent, *p)
				return &domain.Comment{Post: got, Parent: p, Content: content}, nil
			},
		}
		body := `{"content": "agreed", "parent_id": "` + parent.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/"+postId.String()+"/comments", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("form with bad parent id", func(t *testing.T) {
		form := url.Values{"content": {"x"}, "parent_id": {"nope"}}
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/"+postId.String()+"/comments", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "parent_id")
	})

	t.Run("form redirects to the post", func(t *testing.T) {
		h.comment = &MockCommentService{}
		form := url.Values{"content": {"first"}}
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/"+postId.String()+"/comments", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/v1/posts/"+postId.String(), rr.Header().Get("Location"))
	})

	t.Run("nested reply rejected", func(t *testing.T) {
		h.comment = &MockCommentService{
			MockCreate: func(ctx context.Context, subject *domain.Subject, got domain.PostId, content domain.CommentText, p *domain.CommentId) (*domain.Comment, error) {
				return nil, errors.NewValidation("parent_id", "replies cannot be nested")
			},
		}
		body := `{"content": "deep", "parent_id": "` + parent.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/"+postId.String()+"/comments", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("content too long", func(t *testing.T) {
		body := `{"content": "` + strings.Repeat("a", 10001) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/posts/"+postId.String()+"/comments", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateDeleteCommentHandler(t *testing.T) {
	h := newTestHandler()
	router := commentRouter(h)
	id := uuid.New()
	postId := uuid.New()
	h.comment = &MockCommentService{
		MockUpdate: func(ctx context.Context, subject *domain.Subject, got domain.CommentId, content domain.CommentText) (*domain.Comment, error) {
			return &domain.Comment{Id: got, Post: postId, Content: content}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/v1/comments/"+id.String(), strings.NewReader(`{"content": "fixed"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	form := url.Values{"content": {"fixed"}}
	req = httptest.NewRequest(http.MethodPost, "/v1/comments/"+id.String()+"/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/v1/posts/"+postId.String(), rr.Header().Get("Location"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/v1/comments/bad-id", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/v1/comments/"+id.String(), nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
