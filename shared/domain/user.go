package domain

import "time"

type User struct {
	Id          UserId      `json:"id"`
	Email       Email       `json:"-"`
	DisplayName DisplayName `json:"display_name"`
	Admin       bool        `json:"is_admin"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Subject is the identity behind a request. A nil *Subject is a guest.
type Subject struct {
	UserId      UserId
	DisplayName DisplayName
	Email       Email
	Admin       bool
	// ExpiresAt is the expiry of the session token the subject was resolved from.
	ExpiresAt time.Time
}

// Author is the public part of a user attached to posts and comments.
type Author struct {
	Id          UserId      `json:"id"`
	DisplayName DisplayName `json:"display_name"`
}
