package handler

import (
	"context"

	"github.com/aicom-dev/aicom/backend/internal/service"
	"github.com/aicom-dev/aicom/shared/config"
	mw "github.com/aicom-dev/aicom/shared/middleware"
)

// HealthChecker reports whether the storage backend answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Auth     service.AuthService
	Board    service.BoardService
	Post     service.PostService
	Comment  service.CommentService
	Bookmark service.BookmarkService
	Search   service.SearchService
}

type Handler struct {
	auth     service.AuthService
	board    service.BoardService
	post     service.PostService
	comment  service.CommentService
	bookmark service.BookmarkService
	search   service.SearchService
	health   HealthChecker
	csrf     *mw.CSRF
	cfg      *config.Config
}

func New(services Services, health HealthChecker, csrf *mw.CSRF, cfg *config.Config) *Handler {
	return &Handler{
		auth:     services.Auth,
		board:    services.Board,
		post:     services.Post,
		comment:  services.Comment,
		bookmark: services.Bookmark,
		search:   services.Search,
		health:   health,
		csrf:     csrf,
		cfg:      cfg,
	}
}
