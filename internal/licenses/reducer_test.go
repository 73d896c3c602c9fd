package licenses

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/state"
)

type unknownAction struct{}

func (unknownAction) Type() state.ActionType { return "SOMETHING_ELSE" }

func sampleLicense(id int64) License {
	return License{
		LicenseID:  id,
		LicenseKey: "jetpack-backup-daily_abc",
		IssuedAt:   "2021-01-01 00:00:00",
		AttachedAt: Some("2021-01-02 00:00:00"),
		RevokedAt:  None(),
		Domain:     Some("example.com"),
		Product:    "Jetpack Backup (Daily)",
		Username:   "partner",
		BlogID:     1234,
	}
}

func TestInitialSlice(t *testing.T) {
	s := InitialSlice()
	assert.False(t, s.HasFetched)
	assert.False(t, s.IsFetching)
	require.NotNil(t, s.All)
	assert.Empty(t, s.All)
}

func TestReduceScenarios(t *testing.T) {
	t.Run("request then receive", func(t *testing.T) {
		s := Reduce(InitialSlice(), Request(7))
		if diff := cmp.Diff(Slice{IsFetching: true, All: []License{}}, s); diff != "" {
			t.Fatalf("after request (-want +got):\n%s", diff)
		}

		item := FromAPI(APILicense{LicenseID: 1, LicenseKey: "k", IssuedAt: "2021-01-01"})
		s = Reduce(s, Receive([]License{item}))
		want := Slice{HasFetched: true, IsFetching: false, All: []License{item}}
		if diff := cmp.Diff(want, s); diff != "" {
			t.Fatalf("after receive (-want +got):\n%s", diff)
		}
	})

	t.Run("empty receipt after a non-empty one clears the list", func(t *testing.T) {
		s := Reduce(InitialSlice(), Receive([]License{sampleLicense(1), sampleLicense(2)}))
		require.Len(t, s.All, 2)

		s = Reduce(s, Receive([]License{}))
		assert.Empty(t, s.All)
		assert.True(t, s.HasFetched)
	})

	t.Run("nil receipt normalizes to an empty list", func(t *testing.T) {
		s := Reduce(InitialSlice(), Receive(nil))
		require.NotNil(t, s.All)
		assert.Empty(t, s.All)
	})

	t.Run("failure clears isFetching but not hasFetched or all", func(t *testing.T) {
		s := Reduce(InitialSlice(), Receive([]License{sampleLicense(1)}))
		s = Reduce(s, Request(1))
		s = Reduce(s, RequestFailure(assert.AnError))

		assert.False(t, s.IsFetching)
		assert.True(t, s.HasFetched)
		assert.Len(t, s.All, 1)
	})

	t.Run("failure before any receipt leaves hasFetched false", func(t *testing.T) {
		s := Reduce(Reduce(InitialSlice(), Request(1)), RequestFailure(assert.AnError))
		assert.False(t, s.HasFetched)
		assert.False(t, s.IsFetching)
	})

	t.Run("repeated requests keep isFetching true", func(t *testing.T) {
		s := Reduce(Reduce(InitialSlice(), Request(1)), Request(2))
		assert.True(t, s.IsFetching)
	})

	t.Run("last receipt wins", func(t *testing.T) {
		s := Reduce(InitialSlice(), Request(1))
		s = Reduce(s, Request(2))
		s = Reduce(s, Receive([]License{sampleLicense(2)}))
		s = Reduce(s, Receive([]License{sampleLicense(1)}))
		require.Len(t, s.All, 1)
		assert.Equal(t, int64(1), s.All[0].LicenseID)
	})
}

func TestReduceReplacesByReference(t *testing.T) {
	prior := Slice{HasFetched: true, All: []License{sampleLicense(9), sampleLicense(8)}}
	items := []License{sampleLicense(1)}

	s := Reduce(prior, Receive(items))
	assert.Equal(t, reflect.ValueOf(items).Pointer(), reflect.ValueOf(s.All).Pointer())
	assert.Len(t, prior.All, 2, "prior slice is not modified")
}

func TestReduceUnknownActionIsIdentity(t *testing.T) {
	prior := Slice{HasFetched: true, IsFetching: true, All: []License{sampleLicense(1)}}
	s := Reduce(prior, unknownAction{})
	if diff := cmp.Diff(prior, s); diff != "" {
		t.Fatalf("unknown action changed the slice (-want +got):\n%s", diff)
	}
}
