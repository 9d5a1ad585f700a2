package domain

import "github.com/google/uuid"

type (
	UserId     = uuid.UUID
	BoardId    = uuid.UUID
	PostId     = uuid.UUID
	CommentId  = uuid.UUID
	BookmarkId = uuid.UUID

	BoardSlug    = string
	PostTitle    = string
	PostContent  = string
	CommentText  = string
	DisplayName  = string
	Email        = string
	SessionToken = string
)

// Policy is a board read or write policy.
type Policy string

const (
	PolicyAnyone  Policy = "anyone"
	PolicyMembers Policy = "members"
	PolicyAdmins  Policy = "admins"
)

func (p Policy) Valid() bool {
	switch p {
	case PolicyAnyone, PolicyMembers, PolicyAdmins:
		return true
	}
	return false
}

// Visibility selects whether soft-deleted rows take part in a query.
// The zero value hides them.
type Visibility int

const (
	ActiveOnly Visibility = iota
	IncludeInactive
)
