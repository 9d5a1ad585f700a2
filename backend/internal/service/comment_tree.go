package service

import (
	"sort"

	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/domain"
)

// BuildTree arranges a post's comments into two levels. Both levels are in
// creation order. Inactive comments stay in place as "[deleted]"
// placeholders so their replies keep a parent. Replies whose parent is
// missing or is itself a reply are dropped.
func BuildTree(comments []domain.Comment) []domain.CommentNode {
	sorted := make([]domain.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return uuidLess(sorted[i].Id, sorted[j].Id)
	})

	roots := make([]domain.CommentNode, 0)
	index := make(map[domain.CommentId]int)
	for _, c := range sorted {
		if c.Parent != nil {
			continue
		}
		index[c.Id] = len(roots)
		roots = append(roots, newNode(c))
	}
	for _, c := range sorted {
		if c.Parent == nil {
			continue
		}
		i, ok := index[*c.Parent]
		if !ok {
			continue
		}
		roots[i].Replies = append(roots[i].Replies, newNode(c))
	}
	return roots
}

func newNode(c domain.Comment) domain.CommentNode {
	node := domain.CommentNode{Comment: c, Replies: []domain.CommentNode{}}
	if !c.IsActive {
		node.Deleted = true
		node.Content = domain.DeletedCommentText
		node.Author = domain.Author{}
	}
	return node
}

func uuidLess(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
