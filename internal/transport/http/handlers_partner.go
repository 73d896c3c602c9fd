package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portal/internal/partner"
	partnerstore "portal/internal/partner/store"
	"portal/internal/portal"
	dErrors "portal/pkg/domain-errors"
	audit "portal/pkg/platform/audit"
	"portal/pkg/platform/httputil"
	"portal/pkg/platform/sentinel"
	"portal/pkg/requestcontext"
)

// AuditPublisher records audit events raised by handlers.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// PartnerHandler exposes the partner keys and the active key selection.
type PartnerHandler struct {
	store   *portal.Store
	keys    partnerstore.Store
	auditor AuditPublisher
	logger  *slog.Logger
}

func NewPartnerHandler(store *portal.Store, keys partnerstore.Store, auditor AuditPublisher, logger *slog.Logger) *PartnerHandler {
	return &PartnerHandler{store: store, keys: keys, auditor: auditor, logger: logger}
}

func (h *PartnerHandler) Register(r chi.Router) {
	r.Get("/partner", h.handleGetActive)
	r.Get("/partner/keys", h.handleListKeys)
	r.Put("/partner/active-key", h.handleSetActiveKey)
}

type activeKeyResponse struct {
	KeyID  int64 `json:"key_id"`
	HasKey bool  `json:"has_key"`
}

type setActiveKeyRequest struct {
	KeyID int64 `json:"key_id"`
}

func (h *PartnerHandler) handleGetActive(w http.ResponseWriter, _ *http.Request) {
	id := portal.ActivePartnerKeyID(h.store.State())
	httputil.WriteJSON(w, http.StatusOK, activeKeyResponse{KeyID: int64(id), HasKey: !id.IsNil()})
}

func (h *PartnerHandler) handleListKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	keys, err := h.keys.ListKeys(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list partner keys",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "partner keys unavailable"))
		return
	}

	out := make([]partner.Key, 0, len(keys))
	for _, k := range keys {
		if ownsKey(ctx, k) {
			out = append(out, k)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"keys": out})
}

func (h *PartnerHandler) handleSetActiveKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[setActiveKeyRequest](w, r, h.logger)
	if !ok {
		return
	}
	keyID := partner.KeyID(req.KeyID)
	if keyID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "key_id is required"))
		return
	}

	key, err := h.keys.FindKey(ctx, keyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "partner key not found"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to find partner key",
			"error", err,
			"key_id", req.KeyID,
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "partner keys unavailable"))
		return
	}
	if !ownsKey(ctx, *key) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "partner key belongs to another partner"))
		return
	}
	if key.Disabled {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "partner key is disabled"))
		return
	}

	h.store.Dispatch(ctx, partner.SelectKey(key.ID))
	if h.auditor != nil {
		if err := h.auditor.Emit(ctx, audit.Event{
			Action:    string(audit.EventPartnerKeySelected),
			Subject:   requestcontext.Subject(ctx),
			RequestID: requestID,
			Detail:    "key_id=" + key.ID.String(),
		}); err != nil {
			h.logger.WarnContext(ctx, "failed to emit audit event",
				"error", err,
				"log_type", "audit",
				"request_id", requestID,
			)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, activeKeyResponse{KeyID: int64(key.ID), HasKey: true})
}

// ownsKey reports whether the caller's token is scoped to the key's partner.
// Tokens without a partner scope see every key.
func ownsKey(ctx context.Context, k partner.Key) bool {
	raw := requestcontext.PartnerID(ctx)
	if raw == "" {
		return true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	return k.PartnerID == id
}
