package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Board   BoardId
	Author  UserId
	Title   PostTitle
	Content PostContent
}

type PostUpdateData struct {
	Title   *PostTitle
	Content *PostContent
}

type Post struct {
	Id        PostId      `json:"id"`
	Board     BoardId     `json:"board_id"`
	Author    Author      `json:"author"`
	Title     PostTitle   `json:"title"`
	Content   PostContent `json:"content"`
	ViewCount int64       `json:"view_count"`
	IsPinned  bool        `json:"is_pinned"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PostPage is one page of a board's post listing.
type PostPage struct {
	Board *Board `json:"board"`
	Posts []Post `json:"posts"`
	Pagination
}

// PostView is a single post as shown to a reader.
type PostView struct {
	Post
	BoardSlug  BoardSlug `json:"board_slug"`
	Bookmarked bool      `json:"is_bookmarked"`
}
