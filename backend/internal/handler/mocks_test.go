package handler

import (
	"context"
	"net/http"

	"github.com/aicom-dev/aicom/shared/config"
	"github.com/aicom-dev/aicom/shared/domain"
	mw "github.com/aicom-dev/aicom/shared/middleware"
)

type MockBoardService struct {
	MockList    func(ctx context.Context, subject *domain.Subject) ([]domain.Board, error)
	MockListAll func(ctx context.Context, subject *domain.Subject) ([]domain.Board, error)
	MockGet     func(ctx context.Context, subject *domain.Subject, idOrSlug string) (*domain.Board, error)
	MockPosts   func(ctx context.Context, subject *domain.Subject, idOrSlug string, page int) (*domain.PostPage, error)
	MockCreate  func(ctx context.Context, subject *domain.Subject, data domain.BoardCreationData) (*domain.Board, error)
	MockUpdate  func(ctx context.Context, subject *domain.Subject, idOrSlug string, data domain.BoardUpdateData) (*domain.Board, error)
	MockDelete  func(ctx context.Context, subject *domain.Subject, idOrSlug string) error
}

func (m *MockBoardService) List(ctx context.Context, subject *domain.Subject) ([]domain.Board, error) {
	if m.MockList != nil {
		return m.MockList(ctx, subject)
	}
	return []domain.Board{}, nil
}

func (m *MockBoardService) ListAll(ctx context.Context, subject *domain.Subject) ([]domain.Board, error) {
	if m.MockListAll != nil {
		return m.MockListAll(ctx, subject)
	}
	return []domain.Board{}, nil
}

func (m *MockBoardService) Get(ctx context.Context, subject *domain.Subject, idOrSlug string) (*domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, subject, idOrSlug)
	}
	return &domain.Board{Slug: idOrSlug}, nil
}

func (m *MockBoardService) Posts(ctx context.Context, subject *domain.Subject, idOrSlug string, page int) (*domain.PostPage, error) {
	if m.MockPosts != nil {
		return m.MockPosts(ctx, subject, idOrSlug, page)
	}
	return &domain.PostPage{Posts: []domain.Post{}}, nil
}

func (m *MockBoardService) Create(ctx context.Context, subject *domain.Subject, data domain.BoardCreationData) (*domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, subject, data)
	}
	return &domain.Board{Name: data.Name, Slug: data.Slug}, nil
}

func (m *MockBoardService) Update(ctx context.Context, subject *domain.Subject, idOrSlug string, data domain.BoardUpdateData) (*domain.Board, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, subject, idOrSlug, data)
	}
	return &domain.Board{Slug: idOrSlug}, nil
}

func (m *MockBoardService) Delete(ctx context.Context, subject *domain.Subject, idOrSlug string) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, subject, idOrSlug)
	}
	return nil
}

type MockPostService struct {
	MockGet       func(ctx context.Context, subject *domain.Subject, id domain.PostId) (*domain.PostView, error)
	MockCreate    func(ctx context.Context, subject *domain.Subject, board string, title domain.PostTitle, content domain.PostContent) (*domain.Post, error)
	MockUpdate    func(ctx context.Context, subject *domain.Subject, id domain.PostId, data domain.PostUpdateData) (*domain.Post, error)
	MockDelete    func(ctx context.Context, subject *domain.Subject, id domain.PostId) error
	MockSetPinned func(ctx context.Context, subject *domain.Subject, id domain.PostId, pinned bool) (*domain.Post, error)
}

func (m *MockPostService) Get(ctx context.Context, subject *domain.Subject, id domain.PostId) (*domain.PostView, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, subject, id)
	}
	return &domain.PostView{Post: domain.Post{Id: id}}, nil
}

func (m *MockPostService) Create(ctx context.Context, subject *domain.Subject, board string, title domain.PostTitle, content domain.PostContent) (*domain.Post, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, subject, board, title, content)
	}
	return &domain.Post{Title: title, Content: content}, nil
}

func (m *MockPostService) Update(ctx context.Context, subject *domain.Subject, id domain.PostId, data domain.PostUpdateData) (*domain.Post, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, subject, id, data)
	}
	return &domain.Post{Id: id}, nil
}

func (m *MockPostService) Delete(ctx context.Context, subject *domain.Subject, id domain.PostId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, subject, id)
	}
	return nil
}

func (m *MockPostService) SetPinned(ctx context.Context, subject *domain.Subject, id domain.PostId, pinned bool) (*domain.Post, error) {
	if m.MockSetPinned != nil {
		return m.MockSetPinned(ctx, subject, id, pinned)
	}
	return &domain.Post{Id: id, IsPinned: pinned}, nil
}

type MockCommentService struct {
	MockList   func(ctx context.Context, subject *domain.Subject, postId domain.PostId) ([]domain.CommentNode, error)
	MockCreate func(ctx context.Context, subject *domain.Subject, postId domain.PostId, content domain.CommentText, parent *domain.CommentId) (*domain.Comment, error)
	MockUpdate func(ctx context.Context, subject *domain.Subject, id domain.CommentId, content domain.CommentText) (*domain.Comment, error)
	MockDelete func(ctx context.Context, subject *domain.Subject, id domain.CommentId) error
}

func (m *MockCommentService) List(ctx context.Context, subject *domain.Subject, postId domain.PostId) ([]domain.CommentNode, error) {
	if m.MockList != nil {
		return m.MockList(ctx, subject, postId)
	}
	return []domain.CommentNode{}, nil
}

func (m *MockCommentService) Create(ctx context.Context, subject *domain.Subject, postId domain.PostId, content domain.CommentText, parent *domain.CommentId) (*domain.Comment, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, subject, postId, content, parent)
	}
	return &domain.Comment{Post: postId, Content: content, Parent: parent}, nil
}

func (m *MockCommentService) Update(ctx context.Context, subject *domain.Subject, id domain.CommentId, content domain.CommentText) (*domain.Comment, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, subject, id, content)
	}
	return &domain.Comment{Id: id, Content: content}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, subject *domain.Subject, id domain.CommentId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, subject, id)
	}
	return nil
}

type MockBookmarkService struct {
	MockAdd    func(ctx context.Context, subject *domain.Subject, postId domain.PostId) (*domain.Bookmark, error)
	MockRemove func(ctx context.Context, subject *domain.Subject, postId domain.PostId) error
	MockList   func(ctx context.Context, subject *domain.Subject, page int) (*domain.BookmarkPage, error)
}

func (m *MockBookmarkService) Add(ctx context.Context, subject *domain.Subject, postId domain.PostId) (*domain.Bookmark, error) {
	if m.MockAdd != nil {
		return m.MockAdd(ctx, subject, postId)
	}
	return &domain.Bookmark{Post: postId}, nil
}

func (m *MockBookmarkService) Remove(ctx context.Context, subject *domain.Subject, postId domain.PostId) error {
	if m.MockRemove != nil {
		return m.MockRemove(ctx, subject, postId)
	}
	return nil
}

func (m *MockBookmarkService) List(ctx context.Context, subject *domain.Subject, page int) (*domain.BookmarkPage, error) {
	if m.MockList != nil {
		return m.MockList(ctx, subject, page)
	}
	return &domain.BookmarkPage{Bookmarks: []domain.BookmarkedPost{}}, nil
}

type MockSearchService struct {
	MockSearch func(ctx context.Context, subject *domain.Subject, query domain.SearchQuery) (*domain.SearchResult, error)
}

func (m *MockSearchService) Search(ctx context.Context, subject *domain.Subject, query domain.SearchQuery) (*domain.SearchResult, error) {
	if m.MockSearch != nil {
		return m.MockSearch(ctx, subject, query)
	}
	return &domain.SearchResult{Posts: []domain.Post{}}, nil
}

type MockAuthService struct {
	MockSignup func(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error)
	MockLogin  func(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error)
	MockLogout func(ctx context.Context, token domain.SessionToken, subject *domain.Subject) error
}

func (m *MockAuthService) Signup(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error) {
	return m.MockSignup(ctx, token)
}

func (m *MockAuthService) Login(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error) {
	return m.MockLogin(ctx, token)
}

func (m *MockAuthService) Logout(ctx context.Context, token domain.SessionToken, subject *domain.Subject) error {
	if m.MockLogout != nil {
		return m.MockLogout(ctx, token, subject)
	}
	return nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func newTestHandler() *Handler {
	return &Handler{
		auth:     &MockAuthService{},
		board:    &MockBoardService{},
		post:     &MockPostService{},
		comment:  &MockCommentService{},
		bookmark: &MockBookmarkService{},
		search:   &MockSearchService{},
		health:   &MockHealthChecker{},
		csrf:     mw.NewCSRF(nil, false),
		cfg:      &config.Config{},
	}
}

// asSubject runs next with subject in the request context, as OptionalAuth would.
func asSubject(subject *domain.Subject) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if subject != nil {
				r = r.WithContext(mw.WithSubject(r.Context(), subject))
			}
			next.ServeHTTP(w, r)
		})
	}
}
