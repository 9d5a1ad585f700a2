package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/domain"
)

const commentColumns = `c.id, c.post_id, c.user_id, u.display_name, c.parent_id, c.content,
	c.is_active, c.created_at, c.updated_at`

func scanComment(row interface{ Scan(...any) error }) (*domain.Comment, error) {
	var (
		comment domain.Comment
		parent  uuid.NullUUID
	)
	err := row.Scan(
		&comment.Id, &comment.Post, &comment.Author.Id, &comment.Author.DisplayName,
		&parent, &comment.Content, &comment.IsActive, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		comment.Parent = &parent.UUID
	}
	return &comment, nil
}

func (s *Storage) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.CommentId, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	parent := uuid.NullUUID{}
	if data.Parent != nil {
		parent = uuid.NullUUID{UUID: *data.Parent, Valid: true}
	}

	var id domain.CommentId
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, user_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		data.Post, data.Author, parent, data.Content,
	).Scan(&id)
	if err != nil {
		return id, translate("create comment", "Comment", err)
	}
	return id, nil
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM comments c JOIN users u ON u.id = c.user_id WHERE c.id = $1 AND %s`,
		commentColumns, activeClause("c", domain.ActiveOnly))
	comment, err := scanComment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate("get comment", "Comment", err)
	}
	return comment, nil
}

// ListComments returns a post's comments oldest first.
func (s *Storage) ListComments(ctx context.Context, postId domain.PostId, visibility domain.Visibility) ([]domain.Comment, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND %s ORDER BY c.created_at, c.id`,
		commentColumns, activeClause("c", visibility))
	rows, err := s.db.QueryContext(ctx, query, postId)
	if err != nil {
		return nil, translate("list comments", "Comment", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, translate("list comments", "Comment", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list comments", "Comment", err)
	}
	return comments, nil
}

func (s *Storage) UpdateComment(ctx context.Context, id domain.CommentId, content domain.CommentText) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE comments SET content = $2, updated_at = clock_timestamp()
		WHERE id = $1 AND is_active`, id, content)
	return translate("update comment", "Comment", exactlyOne(res, err))
}

func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE comments SET is_active = FALSE, updated_at = clock_timestamp()
		WHERE id = $1 AND is_active`, id)
	return translate("delete comment", "Comment", exactlyOne(res, err))
}
