package testutil

import (
	"net/http"

	"portal/pkg/requestcontext"
)

// WithClaims puts an authenticated caller on the request context, the way
// the auth middleware does after validating a bearer token. An empty
// partnerID leaves the caller unscoped.
func WithClaims(req *http.Request, subject, partnerID string) *http.Request {
	ctx := requestcontext.WithSubject(req.Context(), subject)
	if partnerID != "" {
		ctx = requestcontext.WithPartnerID(ctx, partnerID)
	}
	return req.WithContext(ctx)
}

// WithRequestID tags the request the way the request ID middleware does.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
