package handler

import (
	"net/http"

	"github.com/aicom-dev/aicom/shared/api"
	mw "github.com/aicom-dev/aicom/shared/middleware"
	"github.com/aicom-dev/aicom/shared/utils"
)

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	tree, err := h.comment.List(r.Context(), mw.GetSubjectFromContext(r), postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.CommentTreeResponse{Comments: tree})
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comment.Create(r.Context(), mw.GetSubjectFromContext(r), postId, body.Content, body.ParentId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusCreated, comment, postLocation(postId))
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "comment", "Comment")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateCommentRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comment.Update(r.Context(), mw.GetSubjectFromContext(r), id, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusOK, comment, postLocation(comment.Post))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "comment", "Comment")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.comment.Delete(r.Context(), mw.GetSubjectFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respondEmpty(w, r, boardsLocation)
}
