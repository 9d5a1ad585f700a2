package handler

import (
	"net/http"

	"github.com/aicom-dev/aicom/shared/api"
	mw "github.com/aicom-dev/aicom/shared/middleware"
	"github.com/aicom-dev/aicom/shared/utils"
)

func (h *Handler) AddBookmark(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	bookmark, err := h.bookmark.Add(r.Context(), mw.GetSubjectFromContext(r), postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respond(w, r, http.StatusCreated, api.BookmarkResponse{Bookmark: *bookmark}, postLocation(postId))
}

func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "post", "Post")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.bookmark.Remove(r.Context(), mw.GetSubjectFromContext(r), postId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	respondEmpty(w, r, postLocation(postId))
}

func (h *Handler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	bookmarks, err := h.bookmark.List(r.Context(), mw.GetSubjectFromContext(r), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, bookmarks)
}
