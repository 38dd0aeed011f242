package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAmapService_LocationByIP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ip" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.Query().Get("key"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","info":"OK","province":"浙江省","city":"杭州市","adcode":"330100"}`))
	}))
	defer server.Close()

	svc := NewAmapService("test-key", server.URL, slog.Default())
	loc := svc.LocationByIP(context.Background())
	if loc.City != "杭州市" || loc.Adcode != "330100" {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestAmapService_LocationByIPFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"upstream error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"non-success status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"0","info":"INVALID_USER_KEY"}`))
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := NewAmapService("test-key", server.URL, slog.Default())
			loc := svc.LocationByIP(context.Background())
			if *loc != DefaultLocation {
				t.Errorf("expected default location, got %+v", loc)
			}
		})
	}
}

func TestAmapService_Weather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather/weatherInfo" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("city") != "330100" {
			t.Errorf("expected city 330100, got %q", r.URL.Query().Get("city"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"1","info":"OK","lives":[{"province":"浙江","city":"杭州市","weather":"小雨","temperature":"18","winddirection":"东","windpower":"≤3","humidity":"85","reporttime":"2025-10-01 12:00:00"}]}`))
	}))
	defer server.Close()

	svc := NewAmapService("test-key", server.URL, slog.Default())
	weather, err := svc.Weather(context.Background(), "330100")
	if err != nil {
		t.Fatalf("Weather failed: %v", err)
	}
	if weather.Weather != "小雨" || weather.Temperature != "18" {
		t.Errorf("unexpected weather: %+v", weather)
	}
}

func TestAmapService_WeatherErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"api error status", `{"status":"0","info":"INVALID_PARAMS"}`},
		{"no live conditions", `{"status":"1","info":"OK","lives":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewAmapService("test-key", server.URL, slog.Default())
			if _, err := svc.Weather(context.Background(), "330100"); err == nil {
				t.Error("expected error")
			}
		})
	}
}
