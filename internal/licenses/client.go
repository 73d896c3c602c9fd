package licenses

import (
	"context"
	"net/http"
	"net/url"

	"portal/internal/partner"
	"portal/internal/platform/wpcom"
)

const (
	APINamespace = "wpcom/v2"
	APIPath      = "/jetpack-licensing/licenses"
)

// Fetcher retrieves the raw license list for a partner key.
type Fetcher interface {
	FetchLicenses(ctx context.Context, keyID partner.KeyID) ([]APILicense, error)
}

// APIClient fetches licenses from the licensing endpoint.
type APIClient struct {
	client *wpcom.Client
}

func NewAPIClient(client *wpcom.Client) *APIClient {
	return &APIClient{client: client}
}

// FetchLicenses issues one GET. The key_id parameter is omitted for NoKey.
func (c *APIClient) FetchLicenses(ctx context.Context, keyID partner.KeyID) ([]APILicense, error) {
	var out []APILicense
	err := c.client.Do(ctx, wpcom.Request{
		Method:    http.MethodGet,
		Namespace: APINamespace,
		Path:      APIPath,
		Query:     requestQuery(keyID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func requestQuery(keyID partner.KeyID) url.Values {
	q := url.Values{}
	if !keyID.IsNil() {
		q.Set("key_id", keyID.String())
	}
	return q
}
