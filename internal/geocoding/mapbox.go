package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultBaseURL is the Mapbox forward geocoding endpoint.
const DefaultBaseURL = "https://api.mapbox.com/search/geocode/v6/forward"

// Client wraps the Mapbox forward geocoding API.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a geocoding client from the MAPBOX_ACCESS_TOKEN env
// var. Returns nil if the token is not set (graceful degradation: the
// resolver treats a nil geocoder as "not found").
func NewClient() *Client {
	token := os.Getenv("MAPBOX_ACCESS_TOKEN")
	if token == "" {
		return nil
	}
	return &Client{
		accessToken: token,
		baseURL:     DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// NewClientWithBaseURL builds a client against a specific endpoint.
// Tests point this at an httptest server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	return &Client{
		accessToken: token,
		baseURL:     baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type forwardResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Forward geocodes free text to a [lng, lat] pair, requesting only the
// single best candidate. ok is false when Mapbox has no match; err covers
// transport failures, non-200 statuses and malformed payloads.
func (c *Client) Forward(ctx context.Context, place string) (lng, lat float64, ok bool, err error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("access_token", c.accessToken)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, false, fmt.Errorf("geocoding API returned HTTP %d", resp.StatusCode)
	}

	var fwd forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&fwd); err != nil {
		return 0, 0, false, fmt.Errorf("decoding response: %w", err)
	}

	if len(fwd.Features) == 0 {
		return 0, 0, false, nil
	}
	coords := fwd.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return 0, 0, false, fmt.Errorf("malformed coordinates in geocoding response")
	}

	// Mapbox returns [lng, lat].
	return coords[0], coords[1], true, nil
}
