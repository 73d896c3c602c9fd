// Package store persists the partner keys a portal user may select from.
package store

import (
	"context"

	"portal/internal/partner"
)

// Store looks up partner keys. Implementations return sentinel.ErrNotFound
// for unknown keys.
type Store interface {
	ListKeys(ctx context.Context) ([]partner.Key, error)
	FindKey(ctx context.Context, id partner.KeyID) (*partner.Key, error)
	SaveKey(ctx context.Context, key partner.Key) error
}
