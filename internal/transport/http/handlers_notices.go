package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portal/internal/notices"
	"portal/internal/portal"
	dErrors "portal/pkg/domain-errors"
	audit "portal/pkg/platform/audit"
	"portal/pkg/platform/httputil"
	"portal/pkg/requestcontext"
)

type NoticesHandler struct {
	store   *portal.Store
	auditor AuditPublisher
	logger  *slog.Logger
}

func NewNoticesHandler(store *portal.Store, auditor AuditPublisher, logger *slog.Logger) *NoticesHandler {
	return &NoticesHandler{store: store, auditor: auditor, logger: logger}
}

func (h *NoticesHandler) Register(r chi.Router) {
	r.Get("/notices", h.handleList)
	r.Delete("/notices/{id}", h.handleDismiss)
}

func (h *NoticesHandler) handleList(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.store.State().Notices)
}

func (h *NoticesHandler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if _, ok := notices.Find(h.store.State().Notices, id); !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "notice not found"))
		return
	}

	h.store.Dispatch(ctx, notices.Remove(id))
	if h.auditor != nil {
		_ = h.auditor.Emit(ctx, audit.Event{
			Action:    string(audit.EventNoticeDismissed),
			Subject:   requestcontext.Subject(ctx),
			RequestID: requestcontext.RequestID(ctx),
			Detail:    "notice_id=" + id,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}
