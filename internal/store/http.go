package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bbernstein/tidecal/internal/harmonic"
	"github.com/bbernstein/tidecal/pkg/http/client"
)

// HTTPStore fetches models from <baseURL>/<stationID>.json
type HTTPStore struct {
	client client.Interface
}

func NewHTTPStore(httpClient client.Interface) *HTTPStore {
	return &HTTPStore{client: httpClient}
}

func (s *HTTPStore) Load(ctx context.Context, stationID string) ([]byte, error) {
	if err := validateStationID(stationID); err != nil {
		return nil, err
	}
	path := "/" + url.PathEscape(stationID) + modelExtension

	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching model %s: %w", path, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, harmonic.ErrModelNotFound)
	default:
		return nil, fmt.Errorf("fetching model %s: unexpected status %d", path, resp.StatusCode)
	}
}
