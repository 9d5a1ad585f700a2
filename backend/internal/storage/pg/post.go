package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aicom-dev/aicom/shared/domain"
)

const postColumns = `p.id, p.board_id, p.user_id, u.display_name, p.title, p.content,
	p.view_count, p.is_pinned, p.is_active, p.created_at, p.updated_at`

const postFrom = `posts p
	JOIN users u ON u.id = p.user_id
	JOIN boards b ON b.id = p.board_id`

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanPost(row interface{ Scan(...any) error }) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.Id, &post.Board, &post.Author.Id, &post.Author.DisplayName,
		&post.Title, &post.Content, &post.ViewCount, &post.IsPinned, &post.IsActive,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func postCountQuery(where string) string {
	return fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, postFrom, where)
}

// postQuery pages with LIMIT/OFFSET placeholders numbered from next.
func postQuery(where, orderBy string, next int) string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		postColumns, postFrom, where, orderBy, next, next+1)
}

func queryPosts(ctx context.Context, q querier, query string, args ...any) ([]domain.Post, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (s *Storage) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var id domain.PostId
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (board_id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		data.Board, data.Author, data.Title, data.Content,
	).Scan(&id)
	if err != nil {
		return id, translate("create post", "Post", err)
	}
	return id, nil
}

// GetPost returns an active post in an active board.
func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE p.id = $1 AND %s`, postColumns, postFrom, visiblePostClause())
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate("get post", "Post", err)
	}
	return post, nil
}

func (s *Storage) UpdatePost(ctx context.Context, id domain.PostId, title domain.PostTitle, content domain.PostContent) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET title = $2, content = $3, updated_at = clock_timestamp()
		WHERE id = $1 AND is_active`, id, title, content)
	return translate("update post", "Post", exactlyOne(res, err))
}

func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET is_active = FALSE, updated_at = clock_timestamp()
		WHERE id = $1 AND is_active`, id)
	return translate("delete post", "Post", exactlyOne(res, err))
}

func (s *Storage) SetPinned(ctx context.Context, id domain.PostId, pinned bool) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE posts SET is_pinned = $2 WHERE id = $1 AND is_active`, id, pinned)
	return translate("pin post", "Post", exactlyOne(res, err))
}

// IncrementViewCount is a single atomic statement, concurrent views never
// lose an update.
func (s *Storage) IncrementViewCount(ctx context.Context, id domain.PostId) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var views int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1 AND is_active RETURNING view_count`,
		id).Scan(&views)
	if err != nil {
		return 0, translate("increment view count", "Post", err)
	}
	return views, nil
}

func (s *Storage) IsBookmarked(ctx context.Context, user domain.UserId, post domain.PostId) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND post_id = $2)`,
		user, post).Scan(&exists)
	if err != nil {
		return false, translate("check bookmark", "Bookmark", err)
	}
	return exists, nil
}
