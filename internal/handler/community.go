package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/middleware"
	"github.com/strand-dev/strand/internal/utils"
)

func (h *Handler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	externalId := mux.Vars(r)["community"]

	community, err := h.community.Get(r.Context(), externalId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, community)
}

func (h *Handler) GetCommunityThreads(w http.ResponseWriter, r *http.Request) {
	externalId := mux.Vars(r)["community"]

	viewer := middleware.GetViewerFromContext(r)
	posts, err := h.community.Posts(r.Context(), externalId, viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.CommunityPostsResponse{Posts: posts})
}
