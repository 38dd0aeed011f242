package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gufengmap/explore-engine/pkg/state"
)

const defaultAmapBaseURL = "https://restapi.amap.com/v3"

// DefaultLocation is the fallback region when IP geolocation fails.
var DefaultLocation = state.LocationInfo{
	Province: "北京市",
	City:     "北京市",
	Adcode:   "110000",
}

// GeoWeatherService resolves the player's region and its current weather.
type GeoWeatherService interface {
	// LocationByIP resolves the caller's region. It falls back to
	// DefaultLocation on any upstream failure and never returns an error
	// for recoverable conditions.
	LocationByIP(ctx context.Context) *state.LocationInfo

	// Weather returns current conditions for an adcode. Failures propagate;
	// there is no default weather payload.
	Weather(ctx context.Context, adcode string) (*state.Weather, error)
}

// AmapService implements GeoWeatherService against the Amap REST API.
type AmapService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ GeoWeatherService = (*AmapService)(nil)

// NewAmapService creates an Amap client. baseURL may be empty to use the
// public endpoint.
func NewAmapService(apiKey string, baseURL string, logger *slog.Logger) *AmapService {
	if baseURL == "" {
		baseURL = defaultAmapBaseURL
	}
	return &AmapService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type ipResponse struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	Province string `json:"province"`
	City     string `json:"city"`
	Adcode   string `json:"adcode"`
}

// weatherResponse is the Amap weather envelope. Only the live conditions
// are consumed; the forecast block is decoded and discarded.
type weatherResponse struct {
	Status string          `json:"status"`
	Info   string          `json:"info"`
	Lives  []state.Weather `json:"lives"`
}

func (s *AmapService) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	query.Set("key", s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// LocationByIP resolves the caller's region from its IP. Any failure, or a
// non-success upstream status, falls back to DefaultLocation.
func (s *AmapService) LocationByIP(ctx context.Context) *state.LocationInfo {
	var ipResp ipResponse
	if err := s.get(ctx, "/ip", url.Values{}, &ipResp); err != nil {
		s.logger.Warn("IP geolocation failed, using default location", "error", err)
		loc := DefaultLocation
		return &loc
	}
	if ipResp.Status != "1" {
		s.logger.Warn("IP geolocation returned non-success status, using default location",
			"status", ipResp.Status, "info", ipResp.Info)
		loc := DefaultLocation
		return &loc
	}
	return &state.LocationInfo{
		Province: ipResp.Province,
		City:     ipResp.City,
		Adcode:   ipResp.Adcode,
	}
}

// Weather returns current conditions for an adcode. Unlike geolocation,
// failures propagate to the caller: there is no default weather payload.
func (s *AmapService) Weather(ctx context.Context, adcode string) (*state.Weather, error) {
	query := url.Values{}
	query.Set("city", adcode)
	query.Set("extensions", "all")

	var weatherResp weatherResponse
	if err := s.get(ctx, "/weather/weatherInfo", query, &weatherResp); err != nil {
		return nil, err
	}
	if weatherResp.Status != "1" {
		return nil, fmt.Errorf("weather API error: %s", weatherResp.Info)
	}
	if len(weatherResp.Lives) == 0 {
		return nil, fmt.Errorf("weather API returned no live conditions for %s", adcode)
	}
	return &weatherResp.Lives[0], nil
}
