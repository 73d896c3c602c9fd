// Package licenses synchronizes the partner's license list into the portal
// state: a request intent triggers one fetch, and the normalized result is
// folded into a three-field slice (hasFetched, isFetching, all).
package licenses

import (
	"context"

	"portal/internal/partner"
	"portal/internal/state"
)

const (
	ActionRequest        state.ActionType = "JETPACK_PARTNER_PORTAL_LICENSES_REQUEST"
	ActionReceive        state.ActionType = "JETPACK_PARTNER_PORTAL_LICENSES_RECEIVE"
	ActionRequestFailure state.ActionType = "JETPACK_PARTNER_PORTAL_LICENSES_REQUEST_FAILURE"
)

// RequestAction asks for the license list of a partner key.
type RequestAction struct {
	KeyID partner.KeyID
}

func (RequestAction) Type() state.ActionType { return ActionRequest }

// ReceiveAction carries an already-normalized license list.
type ReceiveAction struct {
	Licenses []License
}

func (ReceiveAction) Type() state.ActionType { return ActionReceive }

// FailureAction records that a fetch ended without a receipt.
type FailureAction struct {
	Err error
}

func (FailureAction) Type() state.ActionType { return ActionRequestFailure }

// Request builds the fetch intent for keyID; NoKey is passed through as-is.
func Request(keyID partner.KeyID) RequestAction {
	return RequestAction{KeyID: keyID}
}

// Receive wraps licenses in a receipt action without validating them.
func Receive(licenses []License) ReceiveAction {
	return ReceiveAction{Licenses: licenses}
}

// RequestFailure wraps a fetch error.
func RequestFailure(err error) FailureAction {
	return FailureAction{Err: err}
}

// Fetch reads the active partner key through activeKey, then dispatches the
// pure request intent. It never fails; a nil accessor dispatches NoKey.
func Fetch(ctx context.Context, d state.Dispatcher, activeKey func() partner.KeyID) {
	keyID := partner.NoKey
	if activeKey != nil {
		keyID = activeKey()
	}
	d.Dispatch(ctx, Request(keyID))
}
