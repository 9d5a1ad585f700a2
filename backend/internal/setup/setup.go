package setup

import (
	"io"

	"github.com/aicom-dev/aicom/backend/internal/handler"
	"github.com/aicom-dev/aicom/backend/internal/service"
	"github.com/aicom-dev/aicom/backend/internal/service/utils"
	"github.com/aicom-dev/aicom/backend/internal/storage/pg"
	"github.com/aicom-dev/aicom/shared/config"
	"github.com/aicom-dev/aicom/shared/identity"
	"github.com/aicom-dev/aicom/shared/logger"
	mw "github.com/aicom-dev/aicom/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	CSRF           *mw.CSRF
	closers        []io.Closer
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{Config: cfg, Storage: storage}

	var revocations identity.Revocations
	if cfg.Private.RedisURL != "" {
		redisRevocations, err := identity.NewRedisRevocations(cfg.Private.RedisURL)
		if err != nil {
			storage.Cleanup()
			return nil, err
		}
		revocations = redisRevocations
		deps.closers = append(deps.closers, redisRevocations)
	} else {
		logger.Log.Warn("redis_url not set, logout will not revoke session tokens", "component", "setup")
	}
	resolver := identity.New(cfg.SessionKey(), revocations)

	sanitizer := utils.NewSanitizer()
	services := handler.Services{
		Auth:     service.NewAuth(storage, resolver),
		Board:    service.NewBoard(storage, sanitizer),
		Post:     service.NewPost(storage, sanitizer, cfg.Public.MaxPostBytes),
		Comment:  service.NewComment(storage, sanitizer),
		Bookmark: service.NewBookmark(storage),
		Search:   service.NewSearch(storage),
	}

	deps.CSRF = mw.NewCSRF(cfg.Public.CSRF.ExemptPaths, cfg.Public.SecureCookies)
	deps.AuthMiddleware = mw.NewAuth(resolver, cfg.Public.SecureCookies)
	deps.Handler = handler.New(services, storage, deps.CSRF, cfg)
	return deps, nil
}

// Close releases the storage pool and the revocation client.
func (d *Dependencies) Close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			logger.Log.Error("failed to close dependency", "component", "setup", "error", err)
		}
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("failed to close storage", "component", "setup", "error", err)
	}
}
