package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aicom-dev/aicom/shared/csrf"
	internal_errors "github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/logger"
	"github.com/aicom-dev/aicom/shared/utils"
)

const csrfCookieMaxAge = 24 * time.Hour

var csrfRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "csrf_rejections_total",
		Help: "State-changing requests rejected by the CSRF guard",
	},
	[]string{"reason"},
)

// CSRF is the double-submit guard mounted once in front of every handler.
type CSRF struct {
	exemptPaths   []string
	secureCookies bool
}

func NewCSRF(exemptPaths []string, secureCookies bool) *CSRF {
	return &CSRF{exemptPaths: exemptPaths, secureCookies: secureCookies}
}

// Protect rejects POST, PUT, PATCH and DELETE requests whose submitted token
// does not match the csrf_token cookie. The token comes from the X-CSRF-Token
// header or, for form posts, the csrf_token field.
func (c *CSRF) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !stateChanging(r.Method) || slices.Contains(c.exemptPaths, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(csrf.CookieName)
		if err != nil || cookie.Value == "" {
			c.reject(w, r, "missing_cookie")
			return
		}

		supplied := r.Header.Get(csrf.HeaderName)
		if supplied == "" && utils.IsFormRequest(r) {
			if err := utils.ParseForm(r); err != nil {
				logger.Log.Warn("failed to parse form", "component", "csrf", "error", err)
				c.reject(w, r, "bad_form")
				return
			}
			supplied = r.PostFormValue(csrf.FormField)
		}
		if supplied == "" {
			c.reject(w, r, "missing_token")
			return
		}

		if !csrf.ValidateToken(cookie.Value, supplied) {
			c.reject(w, r, "mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (c *CSRF) reject(w http.ResponseWriter, r *http.Request, reason string) {
	csrfRejections.WithLabelValues(reason).Inc()
	logger.Log.Warn("CSRF token validation failed", "component", "csrf", "path", r.URL.Path, "reason", reason)
	utils.WriteErrorAndStatusCode(w, &internal_errors.CsrfError{Reason: reason})
}

// IssueToken sets a fresh csrf_token cookie and returns the token so it can
// also be handed to the client in the response body.
func (c *CSRF) IssueToken(w http.ResponseWriter) (string, error) {
	token, err := csrf.GenerateToken()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     csrf.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(csrfCookieMaxAge.Seconds()),
	})
	return token, nil
}

func (c *CSRF) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrf.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func stateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
