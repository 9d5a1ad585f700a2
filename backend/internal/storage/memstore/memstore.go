// Package memstore is an in-memory implementation of the service storage
// interfaces. It mirrors the pg storage semantics (soft delete, uniqueness,
// ordering) and backs service and handler tests.
package memstore

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

type Store struct {
	mu        sync.Mutex
	now       time.Time
	users     map[domain.UserId]domain.User
	boards    map[domain.BoardId]*domain.Board
	posts     map[domain.PostId]*domain.Post
	comments  map[domain.CommentId]*domain.Comment
	bookmarks map[domain.BookmarkId]*domain.Bookmark
}

func New() *Store {
	return &Store{
		now:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:     make(map[domain.UserId]domain.User),
		boards:    make(map[domain.BoardId]*domain.Board),
		posts:     make(map[domain.PostId]*domain.Post),
		comments:  make(map[domain.CommentId]*domain.Comment),
		bookmarks: make(map[domain.BookmarkId]*domain.Bookmark),
	}
}

// tick returns strictly increasing timestamps so creation order is total.
func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

// Users

func (s *Store) CreateUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertUser(user)
}

func (s *Store) insertUser(user domain.User) error {
	for _, u := range s.users {
		if u.Id == user.Id {
			return errors.NewConflict("id", "User already exists")
		}
		if u.Email == user.Email {
			return errors.NewConflict("email", "Email already registered")
		}
		if u.DisplayName == user.DisplayName {
			return errors.NewConflict("display_name", "Display name already taken")
		}
	}
	user.CreatedAt = s.tick()
	s.users[user.Id] = user
	return nil
}

func (s *Store) EnsureUser(ctx context.Context, user domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.Id]; ok {
		existing.Admin = user.Admin
		s.users[user.Id] = existing
		return &existing, nil
	}
	if err := s.insertUser(user); err != nil {
		return nil, err
	}
	created := s.users[user.Id]
	return &created, nil
}

func (s *Store) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errors.NewNotFound("User")
	}
	return &u, nil
}

// Boards

func (s *Store) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.BoardId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.boards {
		if b.Slug == data.Slug {
			return uuid.Nil, errors.NewConflict("slug", "Board slug already exists")
		}
	}
	now := s.tick()
	board := &domain.Board{
		Id:           uuid.New(),
		Name:         data.Name,
		Slug:         data.Slug,
		Description:  data.Description,
		Icon:         data.Icon,
		WritePolicy:  data.WritePolicy,
		ReadPolicy:   data.ReadPolicy,
		DisplayOrder: data.DisplayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.boards[board.Id] = board
	return board.Id, nil
}

func (s *Store) GetBoard(ctx context.Context, id domain.BoardId) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok || !b.IsActive {
		return nil, errors.NewNotFound("Board")
	}
	copied := *b
	return &copied, nil
}

func (s *Store) GetBoardBySlug(ctx context.Context, slug domain.BoardSlug) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.boards {
		if b.Slug == slug && b.IsActive {
			copied := *b
			return &copied, nil
		}
	}
	return nil, errors.NewNotFound("Board")
}

func (s *Store) ListBoards(ctx context.Context, visibility domain.Visibility) ([]domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	boards := make([]domain.Board, 0, len(s.boards))
	for _, b := range s.boards {
		if b.IsActive || visibility == domain.IncludeInactive {
			boards = append(boards, *b)
		}
	}
	sort.Slice(boards, func(i, j int) bool {
		if boards[i].DisplayOrder != boards[j].DisplayOrder {
			return boards[i].DisplayOrder < boards[j].DisplayOrder
		}
		return boards[i].Name < boards[j].Name
	})
	return boards, nil
}

func (s *Store) UpdateBoard(ctx context.Context, id domain.BoardId, data domain.BoardUpdateData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok || !b.IsActive {
		return errors.NewNotFound("Board")
	}
	if data.Name != nil {
		b.Name = *data.Name
	}
	if data.Description != nil {
		b.Description = *data.Description
	}
	if data.Icon != nil {
		b.Icon = *data.Icon
	}
	if data.WritePolicy != nil {
		b.WritePolicy = *data.WritePolicy
	}
	if data.ReadPolicy != nil {
		b.ReadPolicy = *data.ReadPolicy
	}
	if data.DisplayOrder != nil {
		b.DisplayOrder = *data.DisplayOrder
	}
	b.UpdatedAt = s.tick()
	return nil
}

func (s *Store) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok || !b.IsActive {
		return errors.NewNotFound("Board")
	}
	b.IsActive = false
	b.UpdatedAt = s.tick()
	return nil
}

func (s *Store) CountActivePosts(ctx context.Context, id domain.BoardId) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.posts {
		if p.Board == id && p.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListBoardPosts(ctx context.Context, id domain.BoardId, limit, offset int) ([]domain.Post, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []domain.Post
	for _, p := range s.posts {
		if p.Board == id && p.IsActive {
			posts = append(posts, s.withAuthor(*p))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].IsPinned != posts[j].IsPinned {
			return posts[i].IsPinned
		}
		return newer(posts[i], posts[j])
	})
	return page(posts, limit, offset), len(posts), nil
}

// Posts

func (s *Store) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	post := &domain.Post{
		Id:        uuid.New(),
		Board:     data.Board,
		Author:    domain.Author{Id: data.Author},
		Title:     data.Title,
		Content:   data.Content,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[post.Id] = post
	return post.Id, nil
}

// GetPost returns an active post in an active board.
func (s *Store) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.activePost(id)
	if !ok {
		return nil, errors.NewNotFound("Post")
	}
	post := s.withAuthor(*p)
	return &post, nil
}

func (s *Store) UpdatePost(ctx context.Context, id domain.PostId, title domain.PostTitle, content domain.PostContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.activePost(id)
	if !ok {
		return errors.NewNotFound("Post")
	}
	p.Title, p.Content = title, content
	p.UpdatedAt = s.tick()
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id domain.PostId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.activePost(id)
	if !ok {
		return errors.NewNotFound("Post")
	}
	p.IsActive = false
	p.UpdatedAt = s.tick()
	return nil
}

func (s *Store) SetPinned(ctx context.Context, id domain.PostId, pinned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.activePost(id)
	if !ok {
		return errors.NewNotFound("Post")
	}
	p.IsPinned = pinned
	return nil
}

func (s *Store) IncrementViewCount(ctx context.Context, id domain.PostId) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || !p.IsActive {
		return 0, errors.NewNotFound("Post")
	}
	p.ViewCount++
	return p.ViewCount, nil
}

func (s *Store) activePost(id domain.PostId) (*domain.Post, bool) {
	p, ok := s.posts[id]
	if !ok || !p.IsActive {
		return nil, false
	}
	b, ok := s.boards[p.Board]
	if !ok || !b.IsActive {
		return nil, false
	}
	return p, true
}

func (s *Store) withAuthor(p domain.Post) domain.Post {
	p.Author.DisplayName = s.users[p.Author.Id].DisplayName
	return p
}

// Comments

func (s *Store) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.CommentId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	comment := &domain.Comment{
		Id:        uuid.New(),
		Post:      data.Post,
		Author:    domain.Author{Id: data.Author},
		Parent:    data.Parent,
		Content:   data.Content,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments[comment.Id] = comment
	return comment.Id, nil
}

func (s *Store) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || !c.IsActive {
		return nil, errors.NewNotFound("Comment")
	}
	comment := *c
	comment.Author.DisplayName = s.users[c.Author.Id].DisplayName
	return &comment, nil
}

func (s *Store) ListComments(ctx context.Context, postId domain.PostId, visibility domain.Visibility) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var comments []domain.Comment
	for _, c := range s.comments {
		if c.Post != postId || (!c.IsActive && visibility != domain.IncludeInactive) {
			continue
		}
		comment := *c
		comment.Author.DisplayName = s.users[c.Author.Id].DisplayName
		comments = append(comments, comment)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

func (s *Store) UpdateComment(ctx context.Context, id domain.CommentId, content domain.CommentText) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || !c.IsActive {
		return errors.NewNotFound("Comment")
	}
	c.Content = content
	c.UpdatedAt = s.tick()
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id domain.CommentId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || !c.IsActive {
		return errors.NewNotFound("Comment")
	}
	c.IsActive = false
	c.UpdatedAt = s.tick()
	return nil
}

// Bookmarks

func (s *Store) AddBookmark(ctx context.Context, user domain.UserId, post domain.PostId) (*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookmarks {
		if b.User == user && b.Post == post {
			return nil, errors.NewConflict("post_id", "Post already bookmarked")
		}
	}
	bookmark := &domain.Bookmark{Id: uuid.New(), User: user, Post: post, CreatedAt: s.tick()}
	s.bookmarks[bookmark.Id] = bookmark
	copied := *bookmark
	return &copied, nil
}

func (s *Store) RemoveBookmark(ctx context.Context, user domain.UserId, post domain.PostId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range s.bookmarks {
		if b.User == user && b.Post == post {
			delete(s.bookmarks, id)
			return nil
		}
	}
	return errors.NewNotFound("Bookmark")
}

func (s *Store) IsBookmarked(ctx context.Context, user domain.UserId, post domain.PostId) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookmarks {
		if b.User == user && b.Post == post {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListBookmarks(ctx context.Context, user domain.UserId, readable []domain.Policy, limit, offset int) ([]domain.BookmarkedPost, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.BookmarkedPost
	for _, b := range s.bookmarks {
		if b.User != user {
			continue
		}
		p, ok := s.activePost(b.Post)
		if !ok || !slices.Contains(readable, s.boards[p.Board].ReadPolicy) {
			continue
		}
		result = append(result, domain.BookmarkedPost{Bookmark: *b, Target: s.withAuthor(*p)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return page(result, limit, offset), len(result), nil
}

// Search

func (s *Store) SearchPosts(ctx context.Context, filter domain.SearchFilter) ([]domain.Post, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term := strings.ToLower(filter.Term)
	var matches []domain.Post
	for id := range s.posts {
		p, ok := s.activePost(id)
		if !ok {
			continue
		}
		board := s.boards[p.Board]
		if !slices.Contains(filter.ReadablePolicies, board.ReadPolicy) {
			continue
		}
		if filter.Board != nil && *filter.Board != board.Id {
			continue
		}
		inTitle := strings.Contains(strings.ToLower(p.Title), term)
		inContent := strings.Contains(strings.ToLower(p.Content), term)
		var hit bool
		switch filter.Scope {
		case domain.ScopeTitle:
			hit = inTitle
		case domain.ScopeContent:
			hit = inContent
		default:
			hit = inTitle || inContent
		}
		if hit {
			matches = append(matches, s.withAuthor(*p))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return newer(matches[i], matches[j]) })
	return page(matches, filter.Limit, filter.Offset), len(matches), nil
}

func newer(a, b domain.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.Id.String() > b.Id.String()
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
