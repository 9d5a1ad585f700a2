// Package identity resolves session tokens minted by the external identity
// provider into request subjects.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/domain"
	internal_errors "github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/logger"
)

// ErrInvalidSession covers bad signatures, expired tokens, malformed claims
// and revoked sessions.
var ErrInvalidSession = errors.New("invalid session")

// Claims is what the identity provider puts in a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// Revocations is the store consulted for logged out sessions.
type Revocations interface {
	Revoke(ctx context.Context, tokenHash string, until time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

type SessionResolver interface {
	ResolveSession(ctx context.Context, token domain.SessionToken) (*domain.Subject, error)
	RevokeSession(ctx context.Context, token domain.SessionToken, subject *domain.Subject) error
}

type Resolver struct {
	secretKey   []byte
	revocations Revocations
}

// New builds a resolver. revocations may be nil, then logout only clears cookies.
func New(secretKey string, revocations Revocations) *Resolver {
	return &Resolver{secretKey: []byte(secretKey), revocations: revocations}
}

func (r *Resolver) ResolveSession(ctx context.Context, token domain.SessionToken) (*domain.Subject, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		logger.Log.Debug("session token rejected", "component", "identity", "error", err)
		return nil, ErrInvalidSession
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidSession
	}

	if r.revocations != nil {
		revoked, err := r.revocations.IsRevoked(ctx, HashToken(token))
		if err != nil {
			return nil, internal_errors.NewDependency("check session revocation", err)
		}
		if revoked {
			return nil, ErrInvalidSession
		}
	}

	return &domain.Subject{
		UserId:      userId,
		DisplayName: claims.Name,
		Email:       claims.Email,
		Admin:       claims.Admin,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// RevokeSession blacklists the token until it would have expired anyway.
func (r *Resolver) RevokeSession(ctx context.Context, token domain.SessionToken, subject *domain.Subject) error {
	if r.revocations == nil || token == "" || subject == nil {
		return nil
	}
	if err := r.revocations.Revoke(ctx, HashToken(token), subject.ExpiresAt); err != nil {
		return internal_errors.NewDependency("revoke session", err)
	}
	return nil
}

// HashToken keys revocation entries without storing bearer tokens.
func HashToken(token domain.SessionToken) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Issuer mints session tokens the way the identity provider does. Used by
// local tooling and tests, never by request handling.
type Issuer struct {
	secretKey []byte
	ttl       time.Duration
}

func NewIssuer(secretKey string, ttl time.Duration) *Issuer {
	return &Issuer{secretKey: []byte(secretKey), ttl: ttl}
}

func (i *Issuer) NewToken(user domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Name:  user.DisplayName,
		Admin: user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
