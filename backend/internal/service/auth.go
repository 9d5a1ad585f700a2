package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/identity"
	"github.com/aicom-dev/aicom/shared/logger"
)

// AuthService turns identity-provider tokens into local sessions. Credentials
// never pass through here.
type AuthService interface {
	Signup(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error)
	Login(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error)
	Logout(ctx context.Context, token domain.SessionToken, subject *domain.Subject) error
}

type UserStorage interface {
	// CreateUser reports ConflictError on a taken email or display name.
	CreateUser(ctx context.Context, user domain.User) error
	// EnsureUser inserts the user if missing and syncs the admin flag.
	EnsureUser(ctx context.Context, user domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id domain.UserId) (*domain.User, error)
}

type Auth struct {
	storage  UserStorage
	resolver identity.SessionResolver
}

func NewAuth(storage UserStorage, resolver identity.SessionResolver) AuthService {
	return &Auth{storage: storage, resolver: resolver}
}

var errInvalidToken = &errors.ErrorWithStatusCode{Message: "Invalid token", StatusCode: http.StatusUnauthorized}

func (a *Auth) Signup(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error) {
	subject, err := a.resolve(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	user := userFromSubject(subject)
	if user.DisplayName == "" {
		return nil, nil, errors.NewValidation("token", "display name missing from token")
	}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}
	logger.Log.Info("user signed up", "component", "auth", "user_id", user.Id)

	created, err := a.storage.GetUser(ctx, user.Id)
	if err != nil {
		return nil, nil, err
	}
	return created, subject, nil
}

// Login is also used for refresh: the provider hands out a new token and the
// local session follows it.
func (a *Auth) Login(ctx context.Context, token domain.SessionToken) (*domain.User, *domain.Subject, error) {
	subject, err := a.resolve(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	user := userFromSubject(subject)
	if user.DisplayName == "" {
		user.DisplayName = fallbackDisplayName(user)
	}
	stored, err := a.storage.EnsureUser(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return stored, subject, nil
}

func (a *Auth) Logout(ctx context.Context, token domain.SessionToken, subject *domain.Subject) error {
	return a.resolver.RevokeSession(ctx, token, subject)
}

func (a *Auth) resolve(ctx context.Context, token domain.SessionToken) (*domain.Subject, error) {
	subject, err := a.resolver.ResolveSession(ctx, token)
	if err != nil {
		if stderrors.Is(err, identity.ErrInvalidSession) {
			return nil, errInvalidToken
		}
		return nil, err
	}
	return subject, nil
}

func userFromSubject(subject *domain.Subject) domain.User {
	return domain.User{
		Id:          subject.UserId,
		Email:       strings.ToLower(subject.Email),
		DisplayName: strings.TrimSpace(subject.DisplayName),
		Admin:       subject.Admin,
	}
}

// fallbackDisplayName is derived from the id so it cannot collide with
// another user's name.
func fallbackDisplayName(user domain.User) domain.DisplayName {
	return "user-" + strings.ReplaceAll(user.Id.String(), "-", "")
}
