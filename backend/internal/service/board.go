package service

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/aicom-dev/aicom/backend/internal/service/utils"
	"github.com/aicom-dev/aicom/shared/access"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/logger"
)

const BoardPostsPageSize = 20

const (
	maxBoardNameLen        = 255
	maxBoardSlugLen        = 64
	maxBoardDescriptionLen = 1000
	maxBoardIconLen        = 255
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// to mock service in tests
type BoardService interface {
	List(ctx context.Context, subject *domain.Subject) ([]domain.Board, error)
	ListAll(ctx context.Context, subject *domain.Subject) ([]domain.Board, error)
	Get(ctx context.Context, subject *domain.Subject, idOrSlug string) (*domain.Board, error)
	Posts(ctx context.Context, subject *domain.Subject, idOrSlug string, page int) (*domain.PostPage, error)
	Create(ctx context.Context, subject *domain.Subject, data domain.BoardCreationData) (*domain.Board, error)
	Update(ctx context.Context, subject *domain.Subject, idOrSlug string, data domain.BoardUpdateData) (*domain.Board, error)
	Delete(ctx context.Context, subject *domain.Subject, idOrSlug string) error
}

type BoardStorage interface {
	BoardLookup
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error)
	ListBoards(ctx context.Context, visibility domain.Visibility) ([]domain.Board, error)
	UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) error
	DeleteBoard(ctx context.Context, id domain.BoardId) error
	CountActivePosts(ctx context.Context, id domain.BoardId) (int, error)
	ListBoardPosts(ctx context.Context, id domain.BoardId, limit, offset int) ([]domain.Post, int, error)
}

type Board struct {
	storage   BoardStorage
	sanitizer *utils.Sanitizer
}

func NewBoard(storage BoardStorage, sanitizer *utils.Sanitizer) BoardService {
	return &Board{storage: storage, sanitizer: sanitizer}
}

// List returns the active boards the subject can read, ordered by
// display_order then name.
func (b *Board) List(ctx context.Context, subject *domain.Subject) ([]domain.Board, error) {
	boards, err := b.storage.ListBoards(ctx, domain.ActiveOnly)
	if err != nil {
		return nil, err
	}
	readable := make([]domain.Board, 0, len(boards))
	for i := range boards {
		if access.CanRead(&boards[i], subject) {
			readable = append(readable, boards[i])
		}
	}
	return readable, nil
}

// ListAll is the moderation view: every board, deleted ones included.
func (b *Board) ListAll(ctx context.Context, subject *domain.Subject) ([]domain.Board, error) {
	if access.RoleOf(subject) != access.RoleAdmin {
		return nil, errors.NewForbidden()
	}
	return b.storage.ListBoards(ctx, domain.IncludeInactive)
}

func (b *Board) Get(ctx context.Context, subject *domain.Subject, idOrSlug string) (*domain.Board, error) {
	return visibleBoard(ctx, b.storage, subject, idOrSlug)
}

// Posts lists a board's active posts, pinned first then newest.
func (b *Board) Posts(ctx context.Context, subject *domain.Subject, idOrSlug string, page int) (*domain.PostPage, error) {
	if page < 0 {
		return nil, errors.NewValidation("page", "must not be negative")
	}
	board, err := visibleBoard(ctx, b.storage, subject, idOrSlug)
	if err != nil {
		return nil, err
	}
	posts, total, err := b.storage.ListBoardPosts(ctx, board.Id, BoardPostsPageSize, domain.Offset(page, BoardPostsPageSize))
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return &domain.PostPage{
		Board:      board,
		Posts:      posts,
		Pagination: domain.NewPagination(total, page, BoardPostsPageSize),
	}, nil
}

func (b *Board) Create(ctx context.Context, subject *domain.Subject, data domain.BoardCreationData) (*domain.Board, error) {
	if access.RoleOf(subject) != access.RoleAdmin {
		return nil, errors.NewForbidden()
	}

	if err := validateSlug(data.Slug); err != nil {
		return nil, err
	}
	data.Name = b.sanitizer.Plain(data.Name)
	data.Description = b.sanitizer.Plain(data.Description)
	data.Icon = b.sanitizer.Plain(data.Icon)
	if data.WritePolicy == "" {
		data.WritePolicy = domain.PolicyMembers
	}
	if data.ReadPolicy == "" {
		data.ReadPolicy = domain.PolicyAnyone
	}
	if err := validateBoardFields(&data.Name, &data.Description, &data.Icon, &data.WritePolicy, &data.ReadPolicy, &data.DisplayOrder); err != nil {
		return nil, err
	}

	id, err := b.storage.CreateBoard(ctx, data)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("board created", "component", "board", "board_id", id, "slug", data.Slug, "admin_id", subject.UserId)
	return b.storage.GetBoard(ctx, id)
}

func (b *Board) Update(ctx context.Context, subject *domain.Subject, idOrSlug string, data domain.BoardUpdateData) (*domain.Board, error) {
	if access.RoleOf(subject) != access.RoleAdmin {
		return nil, errors.NewForbidden()
	}
	board, err := resolveBoard(ctx, b.storage, idOrSlug)
	if err != nil {
		return nil, err
	}

	if data.Name != nil {
		name := b.sanitizer.Plain(*data.Name)
		data.Name = &name
	}
	if data.Description != nil {
		description := b.sanitizer.Plain(*data.Description)
		data.Description = &description
	}
	if data.Icon != nil {
		icon := b.sanitizer.Plain(*data.Icon)
		data.Icon = &icon
	}
	if err := validateBoardFields(data.Name, data.Description, data.Icon, data.WritePolicy, data.ReadPolicy, data.DisplayOrder); err != nil {
		return nil, err
	}

	if err := b.storage.UpdateBoard(ctx, board.Id, data); err != nil {
		return nil, err
	}
	return b.storage.GetBoard(ctx, board.Id)
}

// Delete soft-deletes a board. Boards that still hold active posts are kept.
func (b *Board) Delete(ctx context.Context, subject *domain.Subject, idOrSlug string) error {
	if access.RoleOf(subject) != access.RoleAdmin {
		return errors.NewForbidden()
	}
	board, err := resolveBoard(ctx, b.storage, idOrSlug)
	if err != nil {
		return err
	}
	active, err := b.storage.CountActivePosts(ctx, board.Id)
	if err != nil {
		return err
	}
	if active > 0 {
		return errors.NewValidation("board", "board still has active posts")
	}
	if err := b.storage.DeleteBoard(ctx, board.Id); err != nil {
		return err
	}
	logger.Log.Info("board deleted", "component", "board", "board_id", board.Id, "admin_id", subject.UserId)
	return nil
}

func validateSlug(slug domain.BoardSlug) error {
	if slug == "" || len(slug) > maxBoardSlugLen {
		return errors.NewValidation("slug", "must be 1 to 64 characters")
	}
	if !slugPattern.MatchString(slug) {
		return errors.NewValidation("slug", "may only contain lowercase letters, digits and hyphens")
	}
	return nil
}

// validateBoardFields checks the fields that are present. Nil means absent.
func validateBoardFields(name, description, icon *string, write, read *domain.Policy, order *int) error {
	if name != nil && (*name == "" || utf8.RuneCountInString(*name) > maxBoardNameLen) {
		return errors.NewValidation("name", "must be 1 to 255 characters")
	}
	if description != nil && utf8.RuneCountInString(*description) > maxBoardDescriptionLen {
		return errors.NewValidation("description", "must be at most 1000 characters")
	}
	if icon != nil && utf8.RuneCountInString(*icon) > maxBoardIconLen {
		return errors.NewValidation("icon", "must be at most 255 characters")
	}
	if write != nil && !write.Valid() {
		return errors.NewValidation("write_policy", "must be one of anyone, members, admins")
	}
	if read != nil && !read.Valid() {
		return errors.NewValidation("read_policy", "must be one of anyone, members, admins")
	}
	if order != nil && *order < 0 {
		return errors.NewValidation("display_order", "must not be negative")
	}
	return nil
}
