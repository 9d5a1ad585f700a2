package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aicom-dev/aicom/shared/errors"
	"github.com/aicom-dev/aicom/shared/utils"
)

// parsePage reads the zero-indexed ?page= parameter.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidation("page", "must be an integer")
	}
	return page, nil
}

// idParam parses a uuid URL parameter. A malformed id cannot name anything,
// so it is reported as not found.
func idParam(r *http.Request, param, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errors.NewNotFound(resource)
	}
	return id, nil
}

// respond answers form submissions with a redirect to location and API
// clients with v as JSON.
func respond(w http.ResponseWriter, r *http.Request, status int, v any, location string) {
	if utils.IsFormRequest(r) {
		http.Redirect(w, r, location, http.StatusSeeOther)
		return
	}
	utils.WriteJSON(w, status, v)
}

// respondEmpty is respond for operations without a response body.
func respondEmpty(w http.ResponseWriter, r *http.Request, location string) {
	if utils.IsFormRequest(r) {
		http.Redirect(w, r, location, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func boardLocation(idOrSlug string) string {
	return "/v1/boards/" + idOrSlug
}

func postLocation(id uuid.UUID) string {
	return "/v1/posts/" + id.String()
}

const boardsLocation = "/v1/boards"
