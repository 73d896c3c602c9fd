package portal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"portal/internal/licenses"
	"portal/internal/licenses/mocks"
	"portal/internal/notices"
	"portal/internal/notices/feed"
	"portal/internal/partner"
	"portal/internal/plans"
	"portal/internal/state"
)

type unknown struct{}

func (unknown) Type() state.ActionType { return "UNKNOWN" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReduceUnknownActionIsIdentity(t *testing.T) {
	s := InitialState()
	s.Partner.ActiveKeyID = 3
	s.Licenses = licenses.Reduce(s.Licenses, licenses.Receive([]licenses.License{{LicenseID: 1}}))

	got := Reduce(s, unknown{})
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("unknown action changed state (-want +got):\n%s", diff)
	}
}

func TestReduceRoutesToSlices(t *testing.T) {
	s := Reduce(InitialState(), partner.SelectKey(11))
	s = Reduce(s, plans.SetPlans([]plans.Plan{{PeriodAgnosticSlug: "free"}}))
	s = Reduce(s, licenses.Request(11))

	assert.Equal(t, partner.KeyID(11), ActivePartnerKeyID(s))
	assert.Len(t, s.Plans.Plans, 1)
	assert.True(t, Licenses(s).IsFetching)
	assert.False(t, Licenses(s).HasFetched)
}

func TestStoreFetchFlow(t *testing.T) {
	t.Run("successful fetch lands in the licenses slice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mocks.NewMockFetcher(ctrl)
		fetcher.EXPECT().FetchLicenses(gomock.Any(), partner.KeyID(4)).
			Return([]licenses.APILicense{{LicenseID: 10, LicenseKey: "k", Domain: "a.example"}}, nil)

		h, err := licenses.NewHandler(fetcher, licenses.WithLogger(discardLogger()))
		require.NoError(t, err)

		var observed []state.ActionType
		store := NewStore(Deps{
			LicenseHandler: h,
			Logger:         discardLogger(),
			Observer: func(a state.Action, _ time.Duration) {
				observed = append(observed, a.Type())
			},
		})

		store.Dispatch(context.Background(), partner.SelectKey(4))
		FetchLicenses(context.Background(), store)
		h.Wait()

		view := Licenses(store.State())
		assert.True(t, view.HasFetched)
		assert.False(t, view.IsFetching)
		require.Len(t, view.All, 1)
		assert.Equal(t, int64(10), view.All[0].LicenseID)
		assert.Equal(t, licenses.Some("a.example"), view.All[0].Domain)

		assert.Equal(t, []state.ActionType{
			partner.ActionKeySet,
			licenses.ActionRequest,
			licenses.ActionReceive,
		}, observed)
	})

	t.Run("failed fetch raises a notice and clears isFetching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mocks.NewMockFetcher(ctrl)
		fetcher.EXPECT().FetchLicenses(gomock.Any(), partner.NoKey).Return(nil, errors.New("connection reset"))

		h, err := licenses.NewHandler(fetcher, licenses.WithLogger(discardLogger()))
		require.NoError(t, err)
		sink := feed.NewInMemory(10)

		store := NewStore(Deps{LicenseHandler: h, NoticeFeed: sink, Logger: discardLogger()})
		FetchLicenses(context.Background(), store)
		h.Wait()

		st := store.State()
		assert.False(t, st.Licenses.IsFetching)
		assert.False(t, st.Licenses.HasFetched)
		require.Len(t, st.Notices.Items, 1)
		assert.Equal(t, notices.StatusError, st.Notices.Items[0].Status)
		assert.Equal(t, licenses.FetchErrorMessage, st.Notices.Items[0].Text)

		mirrored, err := sink.Recent(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, mirrored, 1)
		assert.Equal(t, st.Notices.Items[0].ID, mirrored[0].ID)
	})

	t.Run("without a handler the intent only flips isFetching", func(t *testing.T) {
		store := NewStore(Deps{})
		FetchLicenses(context.Background(), store)
		assert.True(t, Licenses(store.State()).IsFetching)
	})
}
