package pg

import "github.com/aicom-dev/aicom/shared/domain"

// activeClause is the soft-delete predicate for a table alias. Every query
// over boards, posts or comments goes through it. The zero Visibility hides
// inactive rows; only moderation views pass IncludeInactive.
func activeClause(alias string, visibility domain.Visibility) string {
	if visibility == domain.IncludeInactive {
		return "TRUE"
	}
	return alias + ".is_active"
}

// visiblePostClause admits active posts in active boards.
func visiblePostClause() string {
	return activeClause("p", domain.ActiveOnly) + " AND " + activeClause("b", domain.ActiveOnly)
}
