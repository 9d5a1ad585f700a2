package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

const TokenLength = 32 // bytes

const (
	CookieName = "csrf_token"
	HeaderName = "X-CSRF-Token"
	FormField  = "csrf_token"
)

// GenerateToken creates a cryptographically secure random token
func GenerateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// ValidateToken compares the cookie token with the token supplied in the
// request header or form field.
func ValidateToken(cookieToken, suppliedToken string) bool {
	if cookieToken == "" || suppliedToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(suppliedToken)) == 1
}
