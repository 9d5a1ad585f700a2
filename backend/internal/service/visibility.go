package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/access"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

// BoardLookup resolves active boards.
type BoardLookup interface {
	GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error)
	GetBoardBySlug(ctx context.Context, slug domain.BoardSlug) (*domain.Board, error)
}

// PostLookup resolves active posts and their boards.
type PostLookup interface {
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
	GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error)
}

// resolveBoard treats a UUID as an id and anything else as a slug.
func resolveBoard(ctx context.Context, lookup BoardLookup, idOrSlug string) (*domain.Board, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return lookup.GetBoard(ctx, id)
	}
	return lookup.GetBoardBySlug(ctx, idOrSlug)
}

// visibleBoard is resolveBoard plus the read policy. An unreadable board is
// reported exactly like a missing one.
func visibleBoard(ctx context.Context, lookup BoardLookup, subject *domain.Subject, idOrSlug string) (*domain.Board, error) {
	board, err := resolveBoard(ctx, lookup, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(board, subject) {
		return nil, errors.NewNotFound("Board")
	}
	return board, nil
}

// visiblePost returns an active post in an active board the subject can read.
func visiblePost(ctx context.Context, lookup PostLookup, subject *domain.Subject, id domain.PostId) (*domain.Post, *domain.Board, error) {
	post, err := lookup.GetPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	board, err := lookup.GetBoard(ctx, post.Board)
	if err != nil {
		if errors.Is[*errors.NotFoundError](err) {
			return nil, nil, errors.NewNotFound("Post")
		}
		return nil, nil, err
	}
	if !access.CanRead(board, subject) {
		return nil, nil, errors.NewNotFound("Post")
	}
	return post, board, nil
}

func requireSubject(subject *domain.Subject) error {
	if subject == nil {
		return errors.NewForbidden()
	}
	return nil
}
