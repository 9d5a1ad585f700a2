package api

import (
	"net/url"

	"github.com/aicom-dev/aicom/shared/domain"
)

// Request DTOs

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

func (r *CreatePostRequest) DecodeForm(form url.Values) error {
	r.Title = form.Get("title")
	r.Content = form.Get("content")
	return nil
}

type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content,omitempty"`
}

func (r *UpdatePostRequest) DecodeForm(form url.Values) error {
	r.Title = formString(form, "title")
	r.Content = formString(form, "content")
	return nil
}

func (r *UpdatePostRequest) ToDomain() domain.PostUpdateData {
	return domain.PostUpdateData{Title: r.Title, Content: r.Content}
}

// Response DTOs

type PostListResponse struct {
	domain.PostPage
}

type CreatePostResponse struct {
	Id domain.PostId `json:"id"`
}
