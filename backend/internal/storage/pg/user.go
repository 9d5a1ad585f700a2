package pg

import (
	"context"

	"github.com/aicom-dev/aicom/shared/domain"
)

func (s *Storage) CreateUser(ctx context.Context, user domain.User) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, is_admin) VALUES ($1, $2, $3, $4)`,
		user.Id, user.Email, user.DisplayName, user.Admin)
	return translate("create user", "User", err)
}

// EnsureUser inserts the user on first sight. Afterwards only the admin flag
// follows the identity provider.
func (s *Storage) EnsureUser(ctx context.Context, user domain.User) (*domain.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var u domain.User
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, display_name, is_admin) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET is_admin = EXCLUDED.is_admin
		RETURNING id, email, display_name, is_admin, created_at`,
		user.Id, user.Email, user.DisplayName, user.Admin,
	).Scan(&u.Id, &u.Email, &u.DisplayName, &u.Admin, &u.CreatedAt)
	if err != nil {
		return nil, translate("ensure user", "User", err)
	}
	return &u, nil
}

func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var u domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, display_name, is_admin, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.Id, &u.Email, &u.DisplayName, &u.Admin, &u.CreatedAt)
	if err != nil {
		return nil, translate("get user", "User", err)
	}
	return &u, nil
}
