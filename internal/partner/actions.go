// Package partner owns the active partner key slice of the portal state.
package partner

import "portal/internal/state"

const ActionKeySet state.ActionType = "JETPACK_PARTNER_PORTAL_PARTNER_KEY_SET"

// Slice is the partner portion of the portal state.
type Slice struct {
	ActiveKeyID KeyID `json:"active_key_id"`
}

// KeySetAction selects the partner key used by keyed fetches.
type KeySetAction struct {
	KeyID KeyID
}

func (KeySetAction) Type() state.ActionType { return ActionKeySet }

// SelectKey returns the action that makes keyID the active partner key.
func SelectKey(keyID KeyID) KeySetAction {
	return KeySetAction{KeyID: keyID}
}

// Reduce folds partner actions into the slice.
func Reduce(s Slice, a state.Action) Slice {
	switch a := a.(type) {
	case KeySetAction:
		return Slice{ActiveKeyID: a.KeyID}
	}
	return s
}

// ActiveKeyID returns the active partner key, or NoKey.
func ActiveKeyID(s Slice) KeyID {
	return s.ActiveKeyID
}
