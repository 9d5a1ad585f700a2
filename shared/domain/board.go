package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name         string
	Slug         BoardSlug
	Description  string
	Icon         string
	WritePolicy  Policy
	ReadPolicy   Policy
	DisplayOrder int
}

// Nil fields are left untouched. Slug is immutable and is not part of the update.
type BoardUpdateData struct {
	Name         *string
	Description  *string
	Icon         *string
	WritePolicy  *Policy
	ReadPolicy   *Policy
	DisplayOrder *int
}

type Board struct {
	Id           BoardId   `json:"id"`
	Name         string    `json:"name"`
	Slug         BoardSlug `json:"slug"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	WritePolicy  Policy    `json:"write_policy"`
	ReadPolicy   Policy    `json:"read_policy"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
