package pg

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	internal_errors "github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/logger"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

type constraintInfo struct {
	field   string
	message string
}

var uniqueConstraints = map[string]constraintInfo{
	"users_pkey":              {"id", "User already exists"},
	"users_email_key":         {"email", "Email already registered"},
	"users_display_name_key":  {"display_name", "Display name already taken"},
	"boards_slug_key":         {"slug", "Board slug already exists"},
	"bookmarks_user_post_key": {"post_id", "Post already bookmarked"},
}

var userForeignKeys = map[string]bool{
	"posts_user_id_fkey":     true,
	"comments_user_id_fkey":  true,
	"bookmarks_user_id_fkey": true,
}

// translate maps driver errors onto the domain taxonomy. Anything that is
// not a known data problem is a retryable DependencyError; its detail is
// logged here and never shown to callers.
func translate(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return internal_errors.NewNotFound(resource)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			if info, ok := uniqueConstraints[pqErr.Constraint]; ok {
				return internal_errors.NewConflict(info.field, info.message)
			}
			return internal_errors.NewConflict("", resource+" already exists")
		case foreignKeyViolation:
			if userForeignKeys[pqErr.Constraint] {
				return internal_errors.NewValidation("user", "account not registered, sign in first")
			}
			return internal_errors.NewNotFound(resource)
		case checkViolation:
			return internal_errors.NewValidation("", "invalid value")
		}
	}

	logger.Log.Error("storage call failed", "component", "pg", "op", op, "error", err)
	return internal_errors.NewDependency(op, err)
}
