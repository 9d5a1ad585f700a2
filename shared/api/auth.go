package api

import (
	"net/url"

	"github.com/aicom-dev/aicom/shared/domain"
)

// Request DTOs

// SessionRequest carries a token signed by the identity provider.
type SessionRequest struct {
	Token string `json:"token" validate:"required"`
}

func (r *SessionRequest) DecodeForm(form url.Values) error {
	r.Token = form.Get("token")
	return nil
}

// Response DTOs

type SessionResponse struct {
	CSRFToken string      `json:"csrf_token"`
	User      domain.User `json:"user"`
}

type CSRFResponse struct {
	CSRFToken string `json:"csrf_token"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	Id          domain.UserId      `json:"id"`
	DisplayName domain.DisplayName `json:"display_name"`
	Admin       bool               `json:"is_admin"`
}
