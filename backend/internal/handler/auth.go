package handler

import (
	"net/http"

	"github.com/aicom-dev/aicom/shared/api"
	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/logger"
	mw "github.com/aicom-dev/aicom/shared/middleware"
	"github.com/aicom-dev/aicom/shared/utils"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SessionRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, subject, err := h.auth.Signup(r.Context(), body.Token)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.establishSession(w, r, http.StatusCreated, body.Token, user, subject)
}

// Login also serves /v1/auth/refresh.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.SessionRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, subject, err := h.auth.Login(r.Context(), body.Token)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.establishSession(w, r, http.StatusOK, body.Token, user, subject)
}

func (h *Handler) establishSession(w http.ResponseWriter, r *http.Request, status int, token domain.SessionToken, user *domain.User, subject *domain.Subject) {
	csrfToken, err := h.csrf.IssueToken(w)
	if err != nil {
		logger.Log.Error("failed to issue csrf token", "component", "auth", "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	mw.SetSessionCookie(w, token, subject, h.cfg.Public.SecureCookies)
	respond(w, r, status, api.SessionResponse{CSRFToken: csrfToken, User: *user}, boardsLocation)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), mw.SessionToken(r), mw.GetSubjectFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	mw.ClearSessionCookie(w, h.cfg.Public.SecureCookies)
	h.csrf.ClearToken(w)
	respond(w, r, http.StatusOK, api.LogoutResponse{Message: "Signed out"}, boardsLocation)
}

// CSRFToken hands out a fresh token, for clients that lost the one issued
// at sign-in.
func (h *Handler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrf.IssueToken(w)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.CSRFResponse{CSRFToken: token})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject := mw.GetSubjectFromContext(r)
	if subject == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MeResponse{
		Id:          subject.UserId,
		DisplayName: subject.DisplayName,
		Admin:       subject.Admin,
	})
}
