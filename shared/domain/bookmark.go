package domain

import "time"

type Bookmark struct {
	Id        BookmarkId `json:"id"`
	User      UserId     `json:"user_id"`
	Post      PostId     `json:"post_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// BookmarkedPost is a bookmark joined with the post it points to.
type BookmarkedPost struct {
	Bookmark
	Target Post `json:"post"`
}

type BookmarkPage struct {
	Bookmarks []BookmarkedPost `json:"bookmarks"`
	Pagination
}
