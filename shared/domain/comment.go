package domain

import "time"

const DeletedCommentText = "[deleted]"

// to iterate thru layers: handler -> service -> storage
type CommentCreationData struct {
	Post    PostId
	Author  UserId
	Parent  *CommentId
	Content CommentText
}

type Comment struct {
	Id        CommentId   `json:"id"`
	Post      PostId      `json:"post_id"`
	Author    Author      `json:"author"`
	Parent    *CommentId  `json:"parent_id"`
	Content   CommentText `json:"content"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CommentNode is a comment with its direct replies. Replies never have replies.
type CommentNode struct {
	Comment
	Deleted bool          `json:"deleted"`
	Replies []CommentNode `json:"replies"`
}
