package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aicom-dev/aicom/shared/api"
	mw "github.com/aicom-dev/aicom/shared/middleware"
	"github.com/aicom-dev/aicom/shared/utils"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.board.List(r.Context(), mw.GetSubjectFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.BoardListResponse{Boards: boards})
}

// GetAllBoards is the moderation listing, deleted boards included.
func (h *Handler) GetAllBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.board.ListAll(r.Context(), mw.GetSubjectFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.BoardListResponse{Boards: boards})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.board.Get(r.Context(), mw.GetSubjectFromContext(r), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, board)
}

func (h *Handler) GetBoardPosts(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	posts, err := h.board.Posts(r.Context(), mw.GetSubjectFromContext(r), chi.URLParam(r, "board"), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostListResponse{PostPage: *posts})
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(r.Context(), mw.GetSubjectFromContext(r), body.ToDomain())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusCreated, board, boardLocation(board.Slug))
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Update(r.Context(), mw.GetSubjectFromContext(r), chi.URLParam(r, "board"), body.ToDomain())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusOK, board, boardLocation(board.Slug))
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Delete(r.Context(), mw.GetSubjectFromContext(r), chi.URLParam(r, "board")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respondEmpty(w, r, boardsLocation)
}
