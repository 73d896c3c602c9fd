package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, feeds and upstream clients
// return these (optionally wrapped) so services can translate them into domain
// errors without knowing which backend produced them.
//
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: entity already exists
//   - ErrUnavailable: backend temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
