package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aicom-dev/aicom/shared/domain"
)

const boardColumns = `b.id, b.name, b.slug, b.description, b.icon, b.write_policy, b.read_policy,
	b.display_order, b.is_active, b.created_at, b.updated_at`

func scanBoard(row interface{ Scan(...any) error }) (*domain.Board, error) {
	var board domain.Board
	err := row.Scan(
		&board.Id, &board.Name, &board.Slug, &board.Description, &board.Icon,
		&board.WritePolicy, &board.ReadPolicy, &board.DisplayOrder,
		&board.IsActive, &board.CreatedAt, &board.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var id domain.BoardId
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO boards (name, slug, description, icon, write_policy, read_policy, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		data.Name, data.Slug, data.Description, data.Icon,
		string(data.WritePolicy), string(data.ReadPolicy), data.DisplayOrder,
	).Scan(&id)
	if err != nil {
		return id, translate("create board", "Board", err)
	}
	return id, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	return s.getBoard(ctx, "b.id = $1", id)
}

func (s *Storage) GetBoardBySlug(ctx context.Context, slug domain.BoardSlug) (*domain.Board, error) {
	return s.getBoard(ctx, "b.slug = $1", slug)
}

func (s *Storage) getBoard(ctx context.Context, where string, arg any) (*domain.Board, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM boards b WHERE %s AND %s`,
		boardColumns, where, activeClause("b", domain.ActiveOnly))
	board, err := scanBoard(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, translate("get board", "Board", err)
	}
	return board, nil
}

func (s *Storage) ListBoards(ctx context.Context, visibility domain.Visibility) ([]domain.Board, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM boards b WHERE %s ORDER BY b.display_order, b.name`,
		boardColumns, activeClause("b", visibility))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate("list boards", "Board", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, translate("list boards", "Board", err)
		}
		boards = append(boards, *board)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list boards", "Board", err)
	}
	return boards, nil
}

// UpdateBoard leaves NULL arguments untouched.
func (s *Storage) UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE boards SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			icon = COALESCE($4, icon),
			write_policy = COALESCE($5, write_policy),
			read_policy = COALESCE($6, read_policy),
			display_order = COALESCE($7, display_order),
			updated_at = now()
		WHERE id = $1 AND is_active`,
		id, nullString(data.Name), nullString(data.Description), nullString(data.Icon),
		nullPolicy(data.WritePolicy), nullPolicy(data.ReadPolicy), nullInt(data.DisplayOrder),
	)
	return translate("update board", "Board", exactlyOne(res, err))
}

func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`UPDATE boards SET is_active = FALSE, updated_at = now() WHERE id = $1 AND is_active`, id)
	return translate("delete board", "Board", exactlyOne(res, err))
}

func (s *Storage) CountActivePosts(ctx context.Context, id domain.BoardId) (int, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var n int
	query := fmt.Sprintf(`SELECT count(*) FROM posts p WHERE p.board_id = $1 AND %s`,
		activeClause("p", domain.ActiveOnly))
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return 0, translate("count board posts", "Board", err)
	}
	return n, nil
}

// ListBoardPosts returns pinned posts first, then newest first. The page and
// the total come from one snapshot.
func (s *Storage) ListBoardPosts(ctx context.Context, id domain.BoardId, limit, offset int) ([]domain.Post, int, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	where := fmt.Sprintf("p.board_id = $1 AND %s", visiblePostClause())
	var (
		posts []domain.Post
		total int
	)
	err := s.readOnly(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, postCountQuery(where), id).Scan(&total); err != nil {
			return err
		}
		var err error
		posts, err = queryPosts(ctx, tx,
			postQuery(where, "p.is_pinned DESC, p.created_at DESC, p.id DESC", 2), id, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, translate("list board posts", "Board", err)
	}
	return posts, total, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullPolicy(p *domain.Policy) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
