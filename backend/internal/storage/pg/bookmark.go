package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/aicom-dev/aicom/shared/domain"
)

func (s *Storage) AddBookmark(ctx context.Context, user domain.UserId, post domain.PostId) (*domain.Bookmark, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	bookmark := domain.Bookmark{User: user, Post: post}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO bookmarks (user_id, post_id) VALUES ($1, $2)
		RETURNING id, created_at`, user, post,
	).Scan(&bookmark.Id, &bookmark.CreatedAt)
	if err != nil {
		return nil, translate("add bookmark", "Post", err)
	}
	return &bookmark, nil
}

func (s *Storage) RemoveBookmark(ctx context.Context, user domain.UserId, post domain.PostId) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`, user, post)
	return translate("remove bookmark", "Bookmark", exactlyOne(res, err))
}

// ListBookmarks returns the newest bookmarks first and skips those whose post
// is gone or sits in a board the reader may no longer see.
func (s *Storage) ListBookmarks(ctx context.Context, user domain.UserId, readable []domain.Policy, limit, offset int) ([]domain.BookmarkedPost, int, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	from := fmt.Sprintf(`bookmarks bm
		JOIN posts p ON p.id = bm.post_id
		JOIN users u ON u.id = p.user_id
		JOIN boards b ON b.id = p.board_id
		WHERE bm.user_id = $1 AND b.read_policy = ANY($2) AND %s`, visiblePostClause())
	policies := pq.Array(policyStrings(readable))

	var (
		bookmarks = []domain.BookmarkedPost{}
		total     int
	)
	err := s.readOnly(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM `+from, user, policies).Scan(&total); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, fmt.Sprintf(`
			SELECT bm.id, bm.user_id, bm.post_id, bm.created_at, %s FROM %s
			ORDER BY bm.created_at DESC, bm.id DESC LIMIT $3 OFFSET $4`, postColumns, from),
			user, policies, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var bp domain.BookmarkedPost
			p := &bp.Target
			err := rows.Scan(
				&bp.Id, &bp.User, &bp.Post, &bp.CreatedAt,
				&p.Id, &p.Board, &p.Author.Id, &p.Author.DisplayName,
				&p.Title, &p.Content, &p.ViewCount, &p.IsPinned, &p.IsActive,
				&p.CreatedAt, &p.UpdatedAt,
			)
			if err != nil {
				return err
			}
			bookmarks = append(bookmarks, bp)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, translate("list bookmarks", "Bookmark", err)
	}
	return bookmarks, total, nil
}

func policyStrings(policies []domain.Policy) []string {
	out := make([]string, len(policies))
	for i, p := range policies {
		out[i] = string(p)
	}
	return out
}
