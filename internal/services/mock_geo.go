package services

import (
	"context"

	"github.com/gufengmap/explore-engine/pkg/state"
)

// MockGeoWeather is a mock implementation of GeoWeatherService for testing.
type MockGeoWeather struct {
	LocationByIPFunc func(ctx context.Context) *state.LocationInfo
	WeatherFunc      func(ctx context.Context, adcode string) (*state.Weather, error)
}

var _ GeoWeatherService = (*MockGeoWeather)(nil)

// LocationByIP delegates to LocationByIPFunc, or returns DefaultLocation.
func (m *MockGeoWeather) LocationByIP(ctx context.Context) *state.LocationInfo {
	if m.LocationByIPFunc != nil {
		return m.LocationByIPFunc(ctx)
	}
	loc := DefaultLocation
	return &loc
}

// Weather delegates to WeatherFunc, or returns a fixed clear-sky payload.
func (m *MockGeoWeather) Weather(ctx context.Context, adcode string) (*state.Weather, error) {
	if m.WeatherFunc != nil {
		return m.WeatherFunc(ctx, adcode)
	}
	return &state.Weather{
		Province:    "北京",
		City:        "北京市",
		Weather:     "晴",
		Temperature: "22",
	}, nil
}
