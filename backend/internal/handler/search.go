package handler

import (
	"net/http"

	"github.com/aicom-dev/aicom/shared/domain"
	mw "github.com/aicom-dev/aicom/shared/middleware"
	"github.com/aicom-dev/aicom/shared/utils"
)

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	q := r.URL.Query()

	result, err := h.search.Search(r.Context(), mw.GetSubjectFromContext(r), domain.SearchQuery{
		Term:  q.Get("q"),
		Scope: domain.SearchScope(q.Get("scope")),
		Board: q.Get("board"),
		Page:  page,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
