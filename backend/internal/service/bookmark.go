package service

import (
	"context"

	"github.com/aicom-dev/aicom/shared/access"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

const BookmarksPageSize = 20

type BookmarkService interface {
	Add(ctx context.Context, subject *domain.Subject, postId domain.PostId) (*domain.Bookmark, error)
	Remove(ctx context.Context, subject *domain.Subject, postId domain.PostId) error
	List(ctx context.Context, subject *domain.Subject, page int) (*domain.BookmarkPage, error)
}

type BookmarkStorage interface {
	PostLookup
	// AddBookmark reports ConflictError when the pair already exists.
	AddBookmark(ctx context.Context, user domain.UserId, post domain.PostId) (*domain.Bookmark, error)
	// RemoveBookmark reports NotFoundError when there is nothing to remove.
	RemoveBookmark(ctx context.Context, user domain.UserId, post domain.PostId) error
	// ListBookmarks skips bookmarks whose post is no longer visible under readable.
	ListBookmarks(ctx context.Context, user domain.UserId, readable []domain.Policy, limit, offset int) ([]domain.BookmarkedPost, int, error)
}

type Bookmark struct {
	storage BookmarkStorage
}

func NewBookmark(storage BookmarkStorage) BookmarkService {
	return &Bookmark{storage: storage}
}

func (b *Bookmark) Add(ctx context.Context, subject *domain.Subject, postId domain.PostId) (*domain.Bookmark, error) {
	if _, _, err := visiblePost(ctx, b.storage, subject, postId); err != nil {
		return nil, err
	}
	if err := requireSubject(subject); err != nil {
		return nil, err
	}
	return b.storage.AddBookmark(ctx, subject.UserId, postId)
}

// Remove works even when the post has since been deleted.
func (b *Bookmark) Remove(ctx context.Context, subject *domain.Subject, postId domain.PostId) error {
	if err := requireSubject(subject); err != nil {
		return err
	}
	return b.storage.RemoveBookmark(ctx, subject.UserId, postId)
}

// List returns the subject's bookmarks, newest first.
func (b *Bookmark) List(ctx context.Context, subject *domain.Subject, page int) (*domain.BookmarkPage, error) {
	if err := requireSubject(subject); err != nil {
		return nil, err
	}
	if page < 0 {
		return nil, errors.NewValidation("page", "must not be negative")
	}
	readable := access.ReadablePolicies(access.RoleOf(subject))
	bookmarks, total, err := b.storage.ListBookmarks(ctx, subject.UserId, readable, BookmarksPageSize, domain.Offset(page, BookmarksPageSize))
	if err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []domain.BookmarkedPost{}
	}
	return &domain.BookmarkPage{
		Bookmarks:  bookmarks,
		Pagination: domain.NewPagination(total, page, BookmarksPageSize),
	}, nil
}
