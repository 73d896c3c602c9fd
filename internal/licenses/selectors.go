package licenses

import "fmt"

// View is the read model handed to callers.
type View struct {
	HasFetched bool      `json:"hasFetched"`
	IsFetching bool      `json:"isFetching"`
	All        []License `json:"all"`
}

// Select returns the view of a licenses slice.
func Select(s Slice) View {
	return View{
		HasFetched: s.HasFetched,
		IsFetching: s.IsFetching,
		All:        s.All,
	}
}

// Status is the lifecycle state derived from a license's timestamps.
type Status string

const (
	StatusAttached Status = "attached"
	StatusDetached Status = "detached"
	StatusRevoked  Status = "revoked"
)

// ParseStatus validates a status filter value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAttached, StatusDetached, StatusRevoked:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown license status %q", s)
}

// StatusOf derives the status of l. Revocation wins over attachment.
func StatusOf(l License) Status {
	switch {
	case l.IsRevoked():
		return StatusRevoked
	case l.IsAttached():
		return StatusAttached
	default:
		return StatusDetached
	}
}

// FilterByStatus returns the licenses in all with the given status, in order.
func FilterByStatus(all []License, status Status) []License {
	out := make([]License, 0, len(all))
	for _, l := range all {
		if StatusOf(l) == status {
			out = append(out, l)
		}
	}
	return out
}
