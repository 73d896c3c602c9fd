package licenses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"portal/internal/licenses/metrics"
	"portal/internal/notices"
	"portal/internal/platform/wpcom"
	"portal/internal/state"
	audit "portal/pkg/platform/audit"
	"portal/pkg/requestcontext"
)

// FetchErrorMessage is the user-facing text of the failure notice.
const FetchErrorMessage = "Failed to retrieve your licenses. Please try again later."

// AuditPublisher records fetch lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Handler is the data-layer middleware bound to the request intent. Every
// intent triggers exactly one fetch, run off the dispatch goroutine.
type Handler struct {
	fetcher Fetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
	tracer  trace.Tracer

	wg sync.WaitGroup
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func WithAuditor(a AuditPublisher) Option {
	return func(h *Handler) {
		h.auditor = a
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(h *Handler) {
		h.tracer = t
	}
}

func NewHandler(fetcher Fetcher, opts ...Option) (*Handler, error) {
	if fetcher == nil {
		return nil, errors.New("licenses fetcher is required")
	}
	h := &Handler{
		fetcher: fetcher,
		logger:  slog.Default(),
		tracer:  otel.Tracer("portal/internal/licenses"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = metrics.New(nil)
	}
	return h, nil
}

// Handle starts a fetch for request intents and ignores everything else.
// The fetch outlives the dispatching request's cancellation.
func (h *Handler) Handle(ctx context.Context, action state.Action, d state.Dispatcher) {
	req, ok := action.(RequestAction)
	if !ok {
		return
	}
	fetchCtx := context.WithoutCancel(ctx)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.fetch(fetchCtx, req, d)
	}()
}

// Wait blocks until every in-flight fetch has dispatched its outcome.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func (h *Handler) fetch(ctx context.Context, req RequestAction, d state.Dispatcher) {
	ctx, span := h.tracer.Start(ctx, "licenses.fetch",
		trace.WithAttributes(attribute.Int64("partner.key_id", int64(req.KeyID))))
	defer span.End()

	subject := subjectFor(req)
	requestID := requestcontext.RequestID(ctx)
	h.emit(ctx, audit.EventLicensesRequested, subject, "")

	start := time.Now()
	records, err := h.fetcher.FetchLicenses(ctx, req.KeyID)
	elapsed := time.Since(start)

	if err != nil {
		category := wpcom.CategoryOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "license fetch failed")
		h.metrics.ObserveFailure(string(category), elapsed)
		h.logger.ErrorContext(ctx, "license fetch failed",
			"error", err,
			"category", category,
			"key_id", int64(req.KeyID),
			"request_id", requestID,
		)
		h.emit(ctx, audit.EventLicensesRequestFailed, subject, string(category))

		d.Dispatch(ctx, notices.Error(FetchErrorMessage))
		d.Dispatch(ctx, RequestFailure(err))
		return
	}

	items := Normalize(records)
	span.SetAttributes(attribute.Int("licenses.count", len(items)))
	h.metrics.ObserveSuccess(len(items), elapsed)
	h.logger.InfoContext(ctx, "licenses received",
		"count", len(items),
		"key_id", int64(req.KeyID),
		"duration_ms", elapsed.Milliseconds(),
		"request_id", requestID,
	)
	h.emit(ctx, audit.EventLicensesReceived, subject, "count="+strconv.Itoa(len(items)))

	d.Dispatch(ctx, Receive(items))
}

func (h *Handler) emit(ctx context.Context, event audit.AuditEvent, subject, detail string) {
	if h.auditor == nil {
		return
	}
	err := h.auditor.Emit(ctx, audit.Event{
		Action:    string(event),
		Subject:   subject,
		RequestID: requestcontext.RequestID(ctx),
		Detail:    detail,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "failed to emit audit event",
			"error", err,
			"action", string(event),
			"log_type", "audit",
		)
	}
}

func subjectFor(req RequestAction) string {
	if req.KeyID.IsNil() {
		return "key:none"
	}
	return fmt.Sprintf("key:%d", int64(req.KeyID))
}
