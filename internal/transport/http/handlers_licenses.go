package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portal/internal/licenses"
	"portal/internal/portal"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/platform/httputil"
	"portal/pkg/requestcontext"
)

// LicensesHandler serves the license list and triggers fetches.
type LicensesHandler struct {
	store  *portal.Store
	logger *slog.Logger
}

func NewLicensesHandler(store *portal.Store, logger *slog.Logger) *LicensesHandler {
	return &LicensesHandler{store: store, logger: logger}
}

func (h *LicensesHandler) Register(r chi.Router) {
	r.Get("/licenses", h.handleList)
	r.Post("/licenses/fetch", h.handleFetch)
}

type fetchResponse struct {
	IsFetching bool `json:"is_fetching"`
}

// handleList returns the licenses view, optionally filtered by ?status=.
func (h *LicensesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	view := portal.Licenses(h.store.State())

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := licenses.ParseStatus(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "status must be attached, detached or revoked"))
			return
		}
		view.All = licenses.FilterByStatus(view.All, status)
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

// handleFetch dispatches a request intent for the active key. The fetch
// completes asynchronously.
func (h *LicensesHandler) handleFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	portal.FetchLicenses(ctx, h.store)

	h.logger.InfoContext(ctx, "license fetch requested",
		"key_id", int64(portal.ActivePartnerKeyID(h.store.State())),
		"subject", requestcontext.Subject(ctx),
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusAccepted, fetchResponse{IsFetching: true})
}
