package api

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

// Request DTOs

type CreateCommentRequest struct {
	Content  string            `json:"content" validate:"required,max=10000"`
	ParentId *domain.CommentId `json:"parent_id,omitempty"`
}

func (r *CreateCommentRequest) DecodeForm(form url.Values) error {
	r.Content = form.Get("content")
	if v := form.Get("parent_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return errors.NewValidation("parent_id", "must be a valid id")
		}
		r.ParentId = &id
	}
	return nil
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

func (r *UpdateCommentRequest) DecodeForm(form url.Values) error {
	r.Content = form.Get("content")
	return nil
}

// Response DTOs

type CommentTreeResponse struct {
	Comments []domain.CommentNode `json:"comments"`
}
