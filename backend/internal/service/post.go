package service

import (
	"context"
	"unicode/utf8"

	"github.com/aicom-dev/aicom/backend/internal/service/utils"
	"github.com/aicom-dev/aicom/shared/access"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/logger"
	"github.com/aicom-dev/aicom/shared/middleware/metrics"
)

const maxPostTitleLen = 255

type PostService interface {
	Get(ctx context.Context, subject *domain.Subject, id domain.PostId) (*domain.PostView, error)
	Create(ctx context.Context, subject *domain.Subject, boardIdOrSlug string, title domain.PostTitle, content domain.PostContent) (*domain.Post, error)
	Update(ctx context.Context, subject *domain.Subject, id domain.PostId, data domain.PostUpdateData) (*domain.Post, error)
	Delete(ctx context.Context, subject *domain.Subject, id domain.PostId) error
	SetPinned(ctx context.Context, subject *domain.Subject, id domain.PostId, pinned bool) (*domain.Post, error)
}

type PostStorage interface {
	PostLookup
	GetBoardBySlug(ctx context.Context, slug domain.BoardSlug) (*domain.Board, error)
	CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error)
	UpdatePost(ctx context.Context, id domain.PostId, title domain.PostTitle, content domain.PostContent) error
	DeletePost(ctx context.Context, id domain.PostId) error
	SetPinned(ctx context.Context, id domain.PostId, pinned bool) error
	// IncrementViewCount bumps view_count in one statement and returns the new value.
	IncrementViewCount(ctx context.Context, id domain.PostId) (int64, error)
	IsBookmarked(ctx context.Context, user domain.UserId, post domain.PostId) (bool, error)
}

type Post struct {
	storage      PostStorage
	sanitizer    *utils.Sanitizer
	maxPostBytes int
}

func NewPost(storage PostStorage, sanitizer *utils.Sanitizer, maxPostBytes int) PostService {
	return &Post{storage: storage, sanitizer: sanitizer, maxPostBytes: maxPostBytes}
}

// Get returns a visible post and counts the read. A failed increment does not
// fail the read: the last known count is returned instead.
func (p *Post) Get(ctx context.Context, subject *domain.Subject, id domain.PostId) (*domain.PostView, error) {
	post, board, err := visiblePost(ctx, p.storage, subject, id)
	if err != nil {
		return nil, err
	}

	count, err := p.storage.IncrementViewCount(ctx, id)
	if err != nil {
		metrics.RecordViewCountFailure()
		logger.Log.Warn("failed to increment view count", "component", "post", "post_id", id, "error", err)
	} else {
		metrics.RecordPostView()
		post.ViewCount = count
	}

	view := &domain.PostView{Post: *post, BoardSlug: board.Slug}
	if subject != nil {
		bookmarked, err := p.storage.IsBookmarked(ctx, subject.UserId, id)
		if err != nil {
			return nil, err
		}
		view.Bookmarked = bookmarked
	}
	return view, nil
}

func (p *Post) Create(ctx context.Context, subject *domain.Subject, boardIdOrSlug string, title domain.PostTitle, content domain.PostContent) (*domain.Post, error) {
	board, err := visibleBoard(ctx, p.storage, subject, boardIdOrSlug)
	if err != nil {
		return nil, err
	}
	if err := requireSubject(subject); err != nil {
		return nil, err
	}
	if !access.CanWrite(board, subject) {
		return nil, errors.NewForbidden()
	}

	if err := utils.CheckPostSize(title, content, p.maxPostBytes); err != nil {
		return nil, err
	}
	title, content = p.sanitizer.Plain(title), p.sanitizer.Rich(content)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	id, err := p.storage.CreatePost(ctx, domain.PostCreationData{
		Board:   board.Id,
		Author:  subject.UserId,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, err
	}
	return p.storage.GetPost(ctx, id)
}

func (p *Post) Update(ctx context.Context, subject *domain.Subject, id domain.PostId, data domain.PostUpdateData) (*domain.Post, error) {
	post, err := p.modifiable(ctx, subject, id)
	if err != nil {
		return nil, err
	}

	title, content := post.Title, post.Content
	rawTitle, rawContent := post.Title, post.Content
	if data.Title != nil {
		rawTitle = *data.Title
	}
	if data.Content != nil {
		rawContent = *data.Content
	}
	if err := utils.CheckPostSize(rawTitle, rawContent, p.maxPostBytes); err != nil {
		return nil, err
	}
	if data.Title != nil {
		title = p.sanitizer.Plain(*data.Title)
	}
	if data.Content != nil {
		content = p.sanitizer.Rich(*data.Content)
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	if err := p.storage.UpdatePost(ctx, id, title, content); err != nil {
		return nil, err
	}
	return p.storage.GetPost(ctx, id)
}

func (p *Post) Delete(ctx context.Context, subject *domain.Subject, id domain.PostId) error {
	if _, err := p.modifiable(ctx, subject, id); err != nil {
		return err
	}
	if err := p.storage.DeletePost(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("post deleted", "component", "post", "post_id", id, "by", subject.UserId)
	return nil
}

func (p *Post) SetPinned(ctx context.Context, subject *domain.Subject, id domain.PostId, pinned bool) (*domain.Post, error) {
	if _, _, err := visiblePost(ctx, p.storage, subject, id); err != nil {
		return nil, err
	}
	if access.RoleOf(subject) != access.RoleAdmin {
		return nil, errors.NewForbidden()
	}
	if err := p.storage.SetPinned(ctx, id, pinned); err != nil {
		return nil, err
	}
	return p.storage.GetPost(ctx, id)
}

// modifiable returns the post when the subject may edit or delete it: admins
// always, authors while the board's write policy still admits them.
func (p *Post) modifiable(ctx context.Context, subject *domain.Subject, id domain.PostId) (*domain.Post, error) {
	post, board, err := visiblePost(ctx, p.storage, subject, id)
	if err != nil {
		return nil, err
	}
	if err := requireSubject(subject); err != nil {
		return nil, err
	}
	if subject.Admin {
		return post, nil
	}
	if !access.CanModerate(subject, post.Author.Id) || !access.CanWrite(board, subject) {
		return nil, errors.NewForbidden()
	}
	return post, nil
}

func validateTitle(title domain.PostTitle) error {
	if title == "" {
		return errors.NewValidation("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return errors.NewValidation("title", "must be at most 255 characters")
	}
	return nil
}
