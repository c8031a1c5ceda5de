package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/strand-dev/strand/internal/api"
	internal_errors "github.com/strand-dev/strand/internal/errors"
	"github.com/strand-dev/strand/internal/middleware"
	"github.com/strand-dev/strand/internal/utils"
)

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	externalId := mux.Vars(r)["user"]

	user, err := h.user.Get(r.Context(), externalId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUser upserts the caller's own profile; a user cannot edit anyone else.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	externalId := mux.Vars(r)["user"]
	viewer := middleware.GetViewerFromContext(r)
	if viewer != externalId {
		utils.WriteErrorAndStatusCode(w, internal_errors.Forbidden("Cannot edit another user's profile"))
		return
	}

	var body api.UpdateUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.user.Upsert(r.Context(), externalId, body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) GetUserThreads(w http.ResponseWriter, r *http.Request) {
	externalId := mux.Vars(r)["user"]

	viewer := middleware.GetViewerFromContext(r)
	posts, err := h.user.Posts(r.Context(), externalId, viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.UserPostsResponse{Posts: posts})
}
