package licenses

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/partner"
	"portal/internal/platform/wpcom"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := wpcom.New(srv.URL, wpcom.WithToken("tok"))
	require.NoError(t, err)
	return NewAPIClient(c)
}

func TestAPIClientFetchLicenses(t *testing.T) {
	t.Run("sends key_id and decodes the list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/wpcom/v2/jetpack-licensing/licenses", r.URL.Path)
			assert.Equal(t, "12", r.URL.Query().Get("key_id"))
			_, _ = w.Write([]byte(`[{"license_id":5,"license_key":"k","attached_at":""}]`))
		})

		records, err := client.FetchLicenses(context.Background(), partner.KeyID(12))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(5), records[0].LicenseID)
	})

	t.Run("omits key_id when no key is active", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, present := r.URL.Query()["key_id"]
			assert.False(t, present)
			_, _ = w.Write([]byte(`[]`))
		})

		records, err := client.FetchLicenses(context.Background(), partner.NoKey)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("propagates API errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.FetchLicenses(context.Background(), 1)
		require.Error(t, err)
		assert.Equal(t, wpcom.ErrorOutage, wpcom.CategoryOf(err))
	})
}
