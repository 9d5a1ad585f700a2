package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aicom-dev/aicom/backend/internal/setup"
	mw "github.com/aicom-dev/aicom/shared/middleware"
	"github.com/aicom-dev/aicom/shared/middleware/metrics"
)

// bodyLimitFactor leaves room for form encoding and the JSON envelope around
// a post of max_post_bytes.
const bodyLimitFactor = 4

// New creates the chi router with all routes. Authorization is decided by the
// services; the router only resolves who is asking.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config.Public
	h := deps.Handler
	authMw := deps.AuthMiddleware

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(cfg.SecureCookies, mw.APIContentSecurityPolicy))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequestSize(int64(bodyLimitFactor * cfg.MaxPostBytes)))
		r.Use(authMw.OptionalAuth())
		r.Use(deps.CSRF.Protect)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.Post("/refresh", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/csrf", h.CSRFToken)
			r.Get("/me", h.Me)
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", h.GetBoards)
			r.Post("/", h.CreateBoard)
			r.Get("/{board}", h.GetBoard)
			r.Put("/{board}", h.UpdateBoard)
			r.Delete("/{board}", h.DeleteBoard)
			r.Post("/{board}/delete", h.DeleteBoard)
			r.Get("/{board}/posts", h.GetBoardPosts)
			r.Post("/{board}/posts", h.CreatePost)
		})

		r.Route("/posts/{post}", func(r chi.Router) {
			r.Get("/", h.GetPost)
			r.Put("/", h.UpdatePost)
			r.Delete("/", h.DeletePost)
			r.Post("/edit", h.UpdatePost)
			r.Post("/delete", h.DeletePost)
			r.Post("/pin", h.PinPost)
			r.Delete("/pin", h.UnpinPost)
			r.Get("/comments", h.GetComments)
			r.Post("/comments", h.CreateComment)
			r.Post("/bookmark", h.AddBookmark)
			r.Delete("/bookmark", h.RemoveBookmark)
		})

		r.Route("/comments/{comment}", func(r chi.Router) {
			r.Put("/", h.UpdateComment)
			r.Delete("/", h.DeleteComment)
			r.Post("/edit", h.UpdateComment)
			r.Post("/delete", h.DeleteComment)
		})

		r.Get("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Get("/me/bookmarks", h.GetBookmarks)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.AdminOnly())
			r.Get("/admin/boards", h.GetAllBoards)
		})
	})

	return r
}
