package handler

import (
	"net/http"
	"strconv"

	"github.com/strand-dev/strand/internal/middleware"
	"github.com/strand-dev/strand/internal/utils"
)

// GetFeed serves the paginated home feed of root threads, newest first.
// Page numbers start at 1; out-of-range values fall back to defaults.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	viewer := middleware.GetViewerFromContext(r)
	feed, err := h.feed.Fetch(r.Context(), page, pageSize, viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}
