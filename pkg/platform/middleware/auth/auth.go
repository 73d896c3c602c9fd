package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "portal/pkg/domain-errors"
	"portal/pkg/platform/httputil"
	"portal/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	Subject   string
	PartnerID string
	JTI       string
}

// FailureHook is notified of every rejected request.
type FailureHook func(ctx context.Context, reason string)

type Option func(*options)

type options struct {
	onFailure FailureHook
}

// WithFailureHook registers a callback for rejected requests.
func WithFailureHook(h FailureHook) Option {
	return func(o *options) {
		o.onFailure = h
	}
}

// RequireAuth admits requests carrying a valid bearer token and stores its
// subject and partner in the context.
func RequireAuth(validator JWTValidator, logger *slog.Logger, opts ...Option) func(http.Handler) http.Handler {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	reject := func(w http.ResponseWriter, r *http.Request, reason, description string, err error) {
		ctx := r.Context()
		logger.WarnContext(ctx, "unauthorized access - "+reason,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if o.onFailure != nil {
			o.onFailure(ctx, reason)
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, description))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				reject(w, r, "missing token", "Missing or invalid Authorization header", nil)
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				reject(w, r, "invalid token", "Invalid or expired token", err)
				return
			}

			ctx := requestcontext.WithSubject(r.Context(), claims.Subject)
			ctx = requestcontext.WithPartnerID(ctx, claims.PartnerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
