package service

import (
	"context"
	"unicode/utf8"

	"github.com/aicom-dev/aicom/shared/access"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

const maxSearchTermLen = 100

type SearchService interface {
	Search(ctx context.Context, subject *domain.Subject, query domain.SearchQuery) (*domain.SearchResult, error)
}

type SearchStorage interface {
	BoardLookup
	// SearchPosts returns one page of matches and the total match count,
	// both computed from the same predicate and snapshot.
	SearchPosts(ctx context.Context, filter domain.SearchFilter) ([]domain.Post, int, error)
}

type Search struct {
	storage SearchStorage
}

func NewSearch(storage SearchStorage) SearchService {
	return &Search{storage: storage}
}

// Search matches posts by case-insensitive substring. Only posts the subject
// could open directly are ever returned or counted.
func (s *Search) Search(ctx context.Context, subject *domain.Subject, query domain.SearchQuery) (*domain.SearchResult, error) {
	if query.Scope == "" {
		query.Scope = domain.ScopeAll
	}
	if !query.Scope.Valid() {
		return nil, errors.NewValidation("scope", "must be one of title, content, all")
	}
	if query.Page < 0 {
		return nil, errors.NewValidation("page", "must not be negative")
	}
	term := query.NormalizedTerm()
	if utf8.RuneCountInString(term) > maxSearchTermLen {
		return nil, errors.NewValidation("q", "must be at most 100 characters")
	}

	result := &domain.SearchResult{
		Query:      term,
		Scope:      query.Scope,
		Posts:      []domain.Post{},
		Pagination: domain.NewPagination(0, query.Page, domain.SearchPageSize),
	}
	if term == "" {
		return result, nil
	}

	filter := domain.SearchFilter{
		Term:             term,
		Scope:            query.Scope,
		ReadablePolicies: access.ReadablePolicies(access.RoleOf(subject)),
		Limit:            domain.SearchPageSize,
		Offset:           domain.Offset(query.Page, domain.SearchPageSize),
	}
	if query.Board != "" {
		board, err := visibleBoard(ctx, s.storage, subject, query.Board)
		if err != nil {
			return nil, err
		}
		filter.Board = &board.Id
	}

	posts, total, err := s.storage.SearchPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if posts != nil {
		result.Posts = posts
	}
	result.Pagination = domain.NewPagination(total, query.Page, domain.SearchPageSize)
	return result, nil
}
