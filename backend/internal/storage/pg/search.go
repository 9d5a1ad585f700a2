package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/aicom-dev/aicom/shared/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches term as a literal substring.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// buildSearchWhere is the one predicate shared by the count and the page
// query, so the two can never disagree.
func buildSearchWhere(filter domain.SearchFilter) (string, []any) {
	conds := []string{visiblePostClause(), "b.read_policy = ANY($1)"}
	args := []any{pq.Array(policyStrings(filter.ReadablePolicies))}

	args = append(args, likePattern(filter.Term))
	term := fmt.Sprintf("$%d", len(args))
	switch filter.Scope {
	case domain.ScopeTitle:
		conds = append(conds, "p.title ILIKE "+term)
	case domain.ScopeContent:
		conds = append(conds, "p.content ILIKE "+term)
	default:
		conds = append(conds, fmt.Sprintf("(p.title ILIKE %s OR p.content ILIKE %s)", term, term))
	}

	if filter.Board != nil {
		args = append(args, *filter.Board)
		conds = append(conds, fmt.Sprintf("p.board_id = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func (s *Storage) SearchPosts(ctx context.Context, filter domain.SearchFilter) ([]domain.Post, int, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	where, args := buildSearchWhere(filter)
	var (
		posts []domain.Post
		total int
	)
	err := s.readOnly(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, postCountQuery(where), args...).Scan(&total); err != nil {
			return err
		}
		var err error
		pageArgs := append(append([]any{}, args...), filter.Limit, filter.Offset)
		posts, err = queryPosts(ctx, tx, postQuery(where, "p.created_at DESC, p.id DESC", len(args)+1), pageArgs...)
		return err
	})
	if err != nil {
		return nil, 0, translate("search posts", "Post", err)
	}
	return posts, total, nil
}
