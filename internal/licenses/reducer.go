package licenses

import "portal/internal/state"

// Slice is the licenses portion of the portal state.
type Slice struct {
	HasFetched bool
	IsFetching bool
	All        []License
}

// InitialSlice returns {false, false, []}.
func InitialSlice() Slice {
	return Slice{All: []License{}}
}

// Reduce folds license actions into the slice. HasFetched latches on the
// first receipt; All is replaced, never merged.
func Reduce(s Slice, a state.Action) Slice {
	switch a := a.(type) {
	case RequestAction:
		s.IsFetching = true
		return s
	case ReceiveAction:
		s.IsFetching = false
		s.HasFetched = true
		s.All = a.Licenses
		if s.All == nil {
			s.All = []License{}
		}
		return s
	case FailureAction:
		s.IsFetching = false
		return s
	}
	return s
}
