package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jonathan/listing-site-builder/internal/fetch"
	"github.com/jonathan/listing-site-builder/internal/types"
)

// DefaultEndpoint is the public Nominatim search endpoint. Self-hosted
// instances can be pointed at via config.
const DefaultEndpoint = "https://nominatim.openstreetmap.org/search"

// Client looks addresses up against a Nominatim-compatible HTTP endpoint.
type Client struct {
	Endpoint string
	Email    string // contact address, requested by the public instance's usage policy
}

// NewClient creates a lookup client for the given endpoint. An empty
// endpoint uses the public instance.
func NewClient(endpoint, email string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{Endpoint: endpoint, Email: email}
}

// nominatimResult is the subset of the search response the client reads.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves one address. ErrNotFound means the service returned no
// match; TransientError covers rate limiting and server-side failures.
func (c *Client) Geocode(ctx context.Context, address string) (*types.Point, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	if c.Email != "" {
		query.Set("email", c.Email)
	}

	result, err := fetch.URL(ctx, c.Endpoint+"?"+query.Encode(), nil)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && fetchErr.Retryable {
			return nil, &TransientError{Cause: err}
		}
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}

	var matches []nominatimResult
	if err := json.Unmarshal(result.Body, &matches); err != nil {
		return nil, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: bad latitude %q", address, matches[0].Lat)
	}
	lng, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: bad longitude %q", address, matches[0].Lon)
	}

	return &types.Point{Lat: lat, Lng: lng}, nil
}
