package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aicom-dev/aicom/backend/internal/service/utils"
	"github.com/aicom-dev/aicom/backend/internal/storage/memstore"
	"github.com/aicom-dev/aicom/shared/domain"
)

const testMaxPostBytes = 1 << 20

type fixture struct {
	store     *memstore.Store
	boards    BoardService
	posts     PostService
	comments  CommentService
	bookmarks BookmarkService
	search    SearchService

	admin  *domain.Subject
	member *domain.Subject
	other  *domain.Subject
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	sanitizer := utils.NewSanitizer()
	f := &fixture{
		store:     store,
		boards:    NewBoard(store, sanitizer),
		posts:     NewPost(store, sanitizer, testMaxPostBytes),
		comments:  NewComment(store, sanitizer),
		bookmarks: NewBookmark(store),
		search:    NewSearch(store),
	}
	f.admin = f.user(t, "admin", true)
	f.member = f.user(t, "member", false)
	f.other = f.user(t, "other", false)
	return f
}

func (f *fixture) user(t *testing.T, name string, admin bool) *domain.Subject {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.store.CreateUser(context.Background(), domain.User{
		Id: id, Email: name + "@example.com", DisplayName: name, Admin: admin,
	}))
	return &domain.Subject{UserId: id, DisplayName: name, Email: name + "@example.com", Admin: admin}
}

func (f *fixture) board(t *testing.T, slug string, write, read domain.Policy) *domain.Board {
	t.Helper()
	board, err := f.boards.Create(context.Background(), f.admin, domain.BoardCreationData{
		Name: slug, Slug: slug, WritePolicy: write, ReadPolicy: read,
	})
	require.NoError(t, err)
	return board
}

func (f *fixture) post(t *testing.T, author *domain.Subject, board *domain.Board, title, content string) *domain.Post {
	t.Helper()
	post, err := f.posts.Create(context.Background(), author, board.Slug, title, content)
	require.NoError(t, err)
	return post
}

func (f *fixture) comment(t *testing.T, author *domain.Subject, post *domain.Post, content string, parent *domain.CommentId) *domain.Comment {
	t.Helper()
	comment, err := f.comments.Create(context.Background(), author, post.Id, content, parent)
	require.NoError(t, err)
	return comment
}
