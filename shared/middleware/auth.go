package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aicom-dev/aicom/shared/domain"
	internal_errors "github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/identity"
	"github.com/aicom-dev/aicom/shared/utils"
)

// AccessTokenCookie holds the session token for browser clients.
const AccessTokenCookie = "access_token"

// Key to store the subject in the request context
type key int

const SubjectKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	resolver      identity.SessionResolver
	secureCookies bool
}

func NewAuth(resolver identity.SessionResolver, secureCookies bool) *Auth {
	return &Auth{
		resolver:      resolver,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that requires a signed-in subject
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires an admin subject
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth resolves the subject when a valid session is presented and
// otherwise serves the request as a guest. Only an unavailable identity
// backend fails the request.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := a.resolve(r)
			if err != nil {
				if internal_errors.Is[*internal_errors.DependencyError](err) {
					utils.WriteErrorAndStatusCode(w, err)
					return
				}
				if _, cookieErr := r.Cookie(AccessTokenCookie); cookieErr == nil && errors.Is(err, identity.ErrInvalidSession) {
					// stale cookie: drop it so the browser stops sending it
					ClearSessionCookie(w, a.secureCookies)
				}
			}
			if subject != nil {
				r = r.WithContext(WithSubject(r.Context(), subject))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := GetSubjectFromContext(r)
			if subject == nil {
				var err error
				subject, err = a.resolve(r)
				switch {
				case err == nil:
				case errors.Is(err, errNoToken):
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
					return
				case errors.Is(err, identity.ErrInvalidSession):
					http.Error(w, "Invalid token", http.StatusUnauthorized)
					return
				default:
					utils.WriteErrorAndStatusCode(w, err)
					return
				}
				r = r.WithContext(WithSubject(r.Context(), subject))
			}

			if adminOnly && !subject.Admin {
				utils.WriteErrorAndStatusCode(w, internal_errors.NewForbidden())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var errNoToken = errors.New("no token")

func (a *Auth) resolve(r *http.Request) (*domain.Subject, error) {
	token := SessionToken(r)
	if token == "" {
		return nil, errNoToken
	}
	return a.resolver.ResolveSession(r.Context(), token)
}

// SessionToken returns the raw session token of the request: the cookie for
// browser clients, else the Authorization bearer token.
func SessionToken(r *http.Request) domain.SessionToken {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return token
	}
	return ""
}

func SetSessionCookie(w http.ResponseWriter, token domain.SessionToken, subject *domain.Subject, secure bool) {
	cookie := &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if subject != nil && !subject.ExpiresAt.IsZero() {
		cookie.Expires = subject.ExpiresAt
	}
	http.SetCookie(w, cookie)
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func WithSubject(ctx context.Context, subject *domain.Subject) context.Context {
	return context.WithValue(ctx, SubjectKey, subject)
}

// GetSubjectFromContext returns the request subject, nil for guests.
func GetSubjectFromContext(r *http.Request) *domain.Subject {
	subject, ok := r.Context().Value(SubjectKey).(*domain.Subject)
	if !ok {
		return nil
	}
	return subject
}
