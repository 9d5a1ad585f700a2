package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aicom-dev/aicom/shared/api"
	mw "github.com/aicom-dev/aicom/shared/middleware"
	"github.com/aicom-dev/aicom/shared/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(r.Context(), mw.GetSubjectFromContext(r), chi.URLParam(r, "board"), body.Title, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusCreated, api.CreatePostResponse{Id: post.Id}, postLocation(post.Id))
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Get(r.Context(), mw.GetSubjectFromContext(r), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdatePostRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Update(r.Context(), mw.GetSubjectFromContext(r), id, body.ToDomain())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusOK, post, postLocation(post.Id))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.Delete(r.Context(), mw.GetSubjectFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respondEmpty(w, r, boardsLocation)
}

func (h *Handler) PinPost(w http.ResponseWriter, r *http.Request) {
	h.setPinned(w, r, true)
}

func (h *Handler) UnpinPost(w http.ResponseWriter, r *http.Request) {
	h.setPinned(w, r, false)
}

func (h *Handler) setPinned(w http.ResponseWriter, r *http.Request, pinned bool) {
	id, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.SetPinned(r.Context(), mw.GetSubjectFromContext(r), id, pinned)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusOK, post, postLocation(post.Id))
}
