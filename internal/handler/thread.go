package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/middleware"
	"github.com/strand-dev/strand/internal/utils"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	viewer := middleware.GetViewerFromContext(r)
	node, err := h.thread.Create(r.Context(), viewer, body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, node)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId := mux.Vars(r)["thread"]

	node, err := h.thread.GetTree(r.Context(), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, node)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId := mux.Vars(r)["thread"]

	viewer := middleware.GetViewerFromContext(r)
	if err := h.thread.Delete(r.Context(), threadId, viewer); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	threadId := mux.Vars(r)["thread"]

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	viewer := middleware.GetViewerFromContext(r)
	node, err := h.thread.AddComment(r.Context(), threadId, viewer, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, node)
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	threadId := mux.Vars(r)["thread"]

	viewer := middleware.GetViewerFromContext(r)
	state, err := h.engagement.ToggleLike(r.Context(), threadId, viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}
