package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"portal/internal/portal"
	"portal/pkg/platform/httputil"
)

type PlansHandler struct {
	store *portal.Store
}

func NewPlansHandler(store *portal.Store) *PlansHandler {
	return &PlansHandler{store: store}
}

func (h *PlansHandler) Register(r chi.Router) {
	r.Get("/plans", h.handleGet)
}

func (h *PlansHandler) handleGet(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.store.State().Plans)
}
