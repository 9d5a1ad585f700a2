package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicom-dev/aicom/backend/internal/handler"
	"github.com/aicom-dev/aicom/backend/internal/service"
	"github.com/aicom-dev/aicom/backend/internal/service/utils"
	"github.com/aicom-dev/aicom/backend/internal/setup"
	"github.com/aicom-dev/aicom/backend/internal/storage/memstore"
	"github.com/aicom-dev/aicom/shared/api"
	"github.com/aicom-dev/aicom/shared/config"
	"github.com/aicom-dev/aicom/shared/csrf"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/identity"
	mw "github.com/aicom-dev/aicom/shared/middleware"
)

const testSessionKey = "router-test-key"

type fakePinger struct{ err error }

func (f *fakePinger) Ping(ctx context.Context) error { return f.err }

type testServer struct {
	t       *testing.T
	handler http.Handler
	issuer  *identity.Issuer
}

// session is what a browser holds after signing in.
type session struct {
	cookies   []*http.Cookie
	csrfToken string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Public: config.Public{
			RequestTimeout: time.Second,
			MaxPostBytes:   config.DefaultMaxPostBytes,
			CSRF:           config.CSRF{ExemptPaths: config.DefaultCSRFExemptPaths},
		},
		Private: config.Private{SessionKey: testSessionKey},
	}
	store := memstore.New()
	sanitizer := utils.NewSanitizer()
	resolver := identity.New(cfg.SessionKey(), nil)
	services := handler.Services{
		Auth:     service.NewAuth(store, resolver),
		Board:    service.NewBoard(store, sanitizer),
		Post:     service.NewPost(store, sanitizer, cfg.Public.MaxPostBytes),
		Comment:  service.NewComment(store, sanitizer),
		Bookmark: service.NewBookmark(store),
		Search:   service.NewSearch(store),
	}
	csrfGuard := mw.NewCSRF(cfg.Public.CSRF.ExemptPaths, false)
	deps := &setup.Dependencies{
		Config:         cfg,
		Handler:        handler.New(services, &fakePinger{}, csrfGuard, cfg),
		AuthMiddleware: mw.NewAuth(resolver, false),
		CSRF:           csrfGuard,
	}
	return &testServer{t: t, handler: New(deps), issuer: identity.NewIssuer(testSessionKey, time.Hour)}
}

func (s *testServer) do(req *http.Request, sess *session) *httptest.ResponseRecorder {
	if sess != nil {
		for _, c := range sess.cookies {
			req.AddCookie(c)
		}
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) login(name string, admin bool) *session {
	s.t.Helper()
	token, err := s.issuer.NewToken(domain.User{Id: uuid.New(), Email: name + "@example.com", DisplayName: name, Admin: admin})
	require.NoError(s.t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"token": "`+token+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := s.do(req, nil)
	require.Equal(s.t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.SessionResponse
	require.NoError(s.t, json.NewDecoder(rr.Body).Decode(&resp))
	cookies := rr.Result().Cookies()
	require.Len(s.t, cookies, 2)
	return &session{cookies: cookies, csrfToken: resp.CSRFToken}
}

func jsonRequest(method, path, body string, sess *session) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sess != nil {
		req.Header.Set(csrf.HeaderName, sess.csrfToken)
	}
	return req
}

func (s *testServer) boardCount() int {
	s.t.Helper()
	rr := s.do(httptest.NewRequest(http.MethodGet, "/v1/boards", nil), nil)
	require.Equal(s.t, http.StatusOK, rr.Code)
	var resp api.BoardListResponse
	require.NoError(s.t, json.NewDecoder(rr.Body).Decode(&resp))
	return len(resp.Boards)
}

func TestStateChangeNeedsCSRFToken(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", true)
	body := `{"name": "General", "slug": "general"}`

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/boards", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := s.do(req, admin)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, 0, s.boardCount())
	})

	t.Run("wrong token", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/v1/boards", body, admin)
		req.Header.Set(csrf.HeaderName, "forged")
		rr := s.do(req, admin)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, 0, s.boardCount())
	})

	t.Run("header token", func(t *testing.T) {
		rr := s.do(jsonRequest(http.MethodPost, "/v1/boards", body, admin), admin)

		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.Equal(t, 1, s.boardCount())
	})
}

func TestFormPostFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", true)
	member := s.login("member", false)
	rr := s.do(jsonRequest(http.MethodPost, "/v1/boards", `{"name": "General", "slug": "general"}`, admin), admin)
	require.Equal(t, http.StatusCreated, rr.Code)

	form := url.Values{"title": {"Hello"}, "content": {"<p>hi</p><script>x</script>"}, "csrf_token": {member.csrfToken}}
	req := httptest.NewRequest(http.MethodPost, "/v1/boards/general/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = s.do(req, member)

	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	location := rr.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/v1/posts/"))

	rr = s.do(httptest.NewRequest(http.MethodGet, location, nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var view domain.PostView
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.Contains(t, view.Content, "<p>hi</p>")
	assert.NotContains(t, view.Content, "script")
	assert.EqualValues(t, 1, view.ViewCount)
	assert.Equal(t, "member", view.Author.DisplayName)
}

func TestRouteGuards(t *testing.T) {
	s := newTestServer(t)
	member := s.login("member", false)

	t.Run("guest bookmarks", func(t *testing.T) {
		rr := s.do(httptest.NewRequest(http.MethodGet, "/v1/me/bookmarks", nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("member bookmarks", func(t *testing.T) {
		rr := s.do(httptest.NewRequest(http.MethodGet, "/v1/me/bookmarks", nil), member)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("admin listing", func(t *testing.T) {
		rr := s.do(httptest.NewRequest(http.MethodGet, "/v1/admin/boards", nil), member)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("stale session cookie is dropped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/boards", nil)
		req.AddCookie(&http.Cookie{Name: mw.AccessTokenCookie, Value: "garbage"})
		rr := s.do(req, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		var cleared bool
		for _, c := range rr.Result().Cookies() {
			if c.Name == mw.AccessTokenCookie && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared)
	})
}

func TestProbesAndHeaders(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, mw.APIContentSecurityPolicy, rr.Header().Get("Content-Security-Policy"))

	rr = s.do(httptest.NewRequest(http.MethodGet, "/ready", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
