package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/sidequest/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Coordinate is a resolved (lat, lng) pair in decimal degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Suggestion is one autocomplete candidate
type Suggestion struct {
	Label   string `json:"label"`
	PlaceID string `json:"place_id"`
}

// Geocoder resolves free-text addresses to coordinates and offers
// typed-text suggestions
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinate, error)
	Autocomplete(ctx context.Context, partial string) ([]Suggestion, error)
}

// Client calls the Google Maps Geocoding and Places Autocomplete APIs.
// Lookups are single attempt, no retry; a failed geocode surfaces as a
// domain error, a failed autocomplete degrades to no suggestions.
type Client struct {
	baseURL    string
	apiKey     string
	regionHint string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a geocoding client from configuration
func NewClient(cfg config.GeocodeConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		regionHint: cfg.RegionHint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location Coordinate `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to a coordinate. Returns
// shared.ErrGeocodeNotFound when the service has no match.
func (c *Client) Geocode(ctx context.Context, address string) (Coordinate, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("region", c.regionHint)
	params.Set("key", c.apiKey)

	var body geocodeResponse
	if err := c.get(ctx, "/maps/api/geocode/json", params, &body); err != nil {
		return Coordinate{}, err
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		c.logger.Info("geocode returned no results",
			zap.String("address", address),
			zap.String("status", body.Status))
		return Coordinate{}, shared.ErrGeocodeNotFound
	}

	return body.Results[0].Geometry.Location, nil
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

// Autocomplete returns suggestions for partially typed text. Empty
// input and upstream errors both yield an empty list; suggestions must
// never block typing.
func (c *Client) Autocomplete(ctx context.Context, partial string) ([]Suggestion, error) {
	if partial == "" {
		return []Suggestion{}, nil
	}

	params := url.Values{}
	params.Set("input", partial)
	params.Set("components", "country:"+c.regionHint)
	params.Set("key", c.apiKey)

	var body autocompleteResponse
	if err := c.get(ctx, "/maps/api/place/autocomplete/json", params, &body); err != nil {
		c.logger.Warn("autocomplete lookup failed", zap.Error(err))
		return []Suggestion{}, nil
	}

	if body.Status != "OK" {
		return []Suggestion{}, nil
	}

	suggestions := make([]Suggestion, 0, len(body.Predictions))
	for _, p := range body.Predictions {
		suggestions = append(suggestions, Suggestion{Label: p.Description, PlaceID: p.PlaceID})
	}
	return suggestions, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
