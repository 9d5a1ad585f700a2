package service

import (
	"context"
	"unicode/utf8"

	"github.com/aicom-dev/aicom/backend/internal/service/utils"
	"github.com/aicom-dev/aicom/shared/access"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

const maxCommentLen = 10000

type CommentService interface {
	List(ctx context.Context, subject *domain.Subject, postId domain.PostId) ([]domain.CommentNode, error)
	Create(ctx context.Context, subject *domain.Subject, postId domain.PostId, content domain.CommentText, parent *domain.CommentId) (*domain.Comment, error)
	Update(ctx context.Context, subject *domain.Subject, id domain.CommentId, content domain.CommentText) (*domain.Comment, error)
	Delete(ctx context.Context, subject *domain.Subject, id domain.CommentId) error
}

type CommentStorage interface {
	PostLookup
	CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.CommentId, error)
	// GetComment returns active comments only.
	GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	ListComments(ctx context.Context, postId domain.PostId, visibility domain.Visibility) ([]domain.Comment, error)
	UpdateComment(ctx context.Context, id domain.CommentId, content domain.CommentText) error
	DeleteComment(ctx context.Context, id domain.CommentId) error
}

type Comment struct {
	storage   CommentStorage
	sanitizer *utils.Sanitizer
}

func NewComment(storage CommentStorage, sanitizer *utils.Sanitizer) CommentService {
	return &Comment{storage: storage, sanitizer: sanitizer}
}

// List returns the comment tree of a visible post, deleted comments as placeholders.
func (c *Comment) List(ctx context.Context, subject *domain.Subject, postId domain.PostId) ([]domain.CommentNode, error) {
	if _, _, err := visiblePost(ctx, c.storage, subject, postId); err != nil {
		return nil, err
	}
	comments, err := c.storage.ListComments(ctx, postId, domain.IncludeInactive)
	if err != nil {
		return nil, err
	}
	return BuildTree(comments), nil
}

func (c *Comment) Create(ctx context.Context, subject *domain.Subject, postId domain.PostId, content domain.CommentText, parent *domain.CommentId) (*domain.Comment, error) {
	if _, _, err := visiblePost(ctx, c.storage, subject, postId); err != nil {
		return nil, err
	}
	if err := requireSubject(subject); err != nil {
		return nil, err
	}

	content, err := c.cleanContent(content)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		if err := c.checkParent(ctx, postId, *parent); err != nil {
			return nil, err
		}
	}

	id, err := c.storage.CreateComment(ctx, domain.CommentCreationData{
		Post:    postId,
		Author:  subject.UserId,
		Parent:  parent,
		Content: content,
	})
	if err != nil {
		return nil, err
	}
	return c.storage.GetComment(ctx, id)
}

func (c *Comment) Update(ctx context.Context, subject *domain.Subject, id domain.CommentId, content domain.CommentText) (*domain.Comment, error) {
	if _, err := c.modifiable(ctx, subject, id); err != nil {
		return nil, err
	}
	content, err := c.cleanContent(content)
	if err != nil {
		return nil, err
	}
	if err := c.storage.UpdateComment(ctx, id, content); err != nil {
		return nil, err
	}
	return c.storage.GetComment(ctx, id)
}

func (c *Comment) Delete(ctx context.Context, subject *domain.Subject, id domain.CommentId) error {
	if _, err := c.modifiable(ctx, subject, id); err != nil {
		return err
	}
	return c.storage.DeleteComment(ctx, id)
}

// checkParent enforces the two-level limit: replies go to active top-level
// comments of the same post.
func (c *Comment) checkParent(ctx context.Context, postId domain.PostId, parentId domain.CommentId) error {
	parent, err := c.storage.GetComment(ctx, parentId)
	if err != nil {
		if errors.Is[*errors.NotFoundError](err) {
			return errors.NewValidation("parent_id", "parent comment not found")
		}
		return err
	}
	if parent.Post != postId {
		return errors.NewValidation("parent_id", "parent comment belongs to another post")
	}
	if parent.Parent != nil {
		return errors.NewValidation("parent_id", "replies can only be made to top-level comments")
	}
	return nil
}

func (c *Comment) modifiable(ctx context.Context, subject *domain.Subject, id domain.CommentId) (*domain.Comment, error) {
	comment, err := c.storage.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, _, err := visiblePost(ctx, c.storage, subject, comment.Post); err != nil {
		if errors.Is[*errors.NotFoundError](err) {
			return nil, errors.NewNotFound("Comment")
		}
		return nil, err
	}
	if !access.CanModerate(subject, comment.Author.Id) {
		return nil, errors.NewForbidden()
	}
	return comment, nil
}

func (c *Comment) cleanContent(content domain.CommentText) (domain.CommentText, error) {
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "", errors.NewValidation("content", "must be at most 10000 characters")
	}
	content = c.sanitizer.Plain(content)
	if content == "" {
		return "", errors.NewValidation("content", "must not be empty")
	}
	return content, nil
}
