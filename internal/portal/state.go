// Package portal assembles the partner portal state tree: one store whose
// root reducer delegates to the licenses, partner, notices and plans slices.
package portal

import (
	"context"
	"log/slog"
	"time"

	"portal/internal/licenses"
	"portal/internal/notices"
	"portal/internal/notices/feed"
	"portal/internal/partner"
	"portal/internal/plans"
	"portal/internal/state"
)

// State is the root of the portal state tree.
type State struct {
	Licenses licenses.Slice
	Partner  partner.Slice
	Notices  notices.Slice
	Plans    plans.Slice
}

func InitialState() State {
	return State{
		Licenses: licenses.InitialSlice(),
		Partner:  partner.Slice{ActiveKeyID: partner.NoKey},
		Notices:  notices.InitialSlice(),
		Plans:    plans.InitialSlice(),
	}
}

// Reduce hands every action to every slice reducer. Slices ignore actions
// they do not own.
func Reduce(s State, a state.Action) State {
	return State{
		Licenses: licenses.Reduce(s.Licenses, a),
		Partner:  partner.Reduce(s.Partner, a),
		Notices:  notices.Reduce(s.Notices, a),
		Plans:    plans.Reduce(s.Plans, a),
	}
}

// Store is the portal's single state owner.
type Store = state.Store[State]

// Deps are the data-layer collaborators wired into the store.
type Deps struct {
	// LicenseHandler runs the fetch for each license request intent.
	LicenseHandler state.Handler
	// NoticeFeed mirrors created notices. Optional.
	NoticeFeed feed.Feed
	Logger     *slog.Logger
	// Observer is called after each fold, typically a metrics hook.
	Observer func(state.Action, time.Duration)
}

// NewStore builds the store and registers the data-layer handlers.
func NewStore(deps Deps) *Store {
	opts := []state.Option[State]{}
	if deps.Logger != nil {
		opts = append(opts, state.WithLogger[State](deps.Logger))
	}
	if deps.Observer != nil {
		opts = append(opts, state.WithObserver[State](deps.Observer))
	}
	s := state.New(Reduce, InitialState(), opts...)

	if deps.LicenseHandler != nil {
		s.Handle(licenses.ActionRequest, deps.LicenseHandler)
	}
	if deps.NoticeFeed != nil {
		s.Handle(notices.ActionCreate, feed.Handler(deps.NoticeFeed, deps.Logger))
	}
	return s
}

// ActivePartnerKeyID selects the partner key the portal is acting for.
func ActivePartnerKeyID(s State) partner.KeyID {
	return partner.ActiveKeyID(s.Partner)
}

// Licenses selects the licenses read model.
func Licenses(s State) licenses.View {
	return licenses.Select(s.Licenses)
}

// FetchLicenses reads the active key from the store, then dispatches the
// request intent for it.
func FetchLicenses(ctx context.Context, s *Store) {
	licenses.Fetch(ctx, s, func() partner.KeyID {
		return ActivePartnerKeyID(s.State())
	})
}
