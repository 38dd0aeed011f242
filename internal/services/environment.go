package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gufengmap/explore-engine/pkg/state"
)

// solarFestivals maps Gregorian month-day to festival names.
var solarFestivals = map[string]string{
	"1-1":   "元旦",
	"2-14":  "情人节",
	"3-8":   "妇女节",
	"4-1":   "愚人节",
	"5-1":   "劳动节",
	"5-4":   "青年节",
	"6-1":   "儿童节",
	"7-1":   "建党节",
	"8-1":   "建军节",
	"9-10":  "教师节",
	"10-1":  "国庆节",
	"12-25": "圣诞节",
}

// lunarFestivals holds lunar-calendar festivals keyed by fixed Gregorian
// month-day pairs. This is NOT a lunar-to-solar conversion: the dates are
// only correct for the lunar year the table was written for. A proper fix
// would require a lunar calendar library.
var lunarFestivals = map[string]string{
	"1-1":  "春节",
	"1-15": "元宵节",
	"5-5":  "端午节",
	"7-7":  "七夕节",
	"8-15": "中秋节",
	"9-9":  "重阳节",
}

// FestivalForDate returns the festival for a date, or "" if none. Solar
// festivals take precedence over the lunar table.
func FestivalForDate(t time.Time) string {
	key := fmt.Sprintf("%d-%d", int(t.Month()), t.Day())
	if f, ok := solarFestivals[key]; ok {
		return f
	}
	if f, ok := lunarFestivals[key]; ok {
		return f
	}
	return ""
}

// SeasonForDate buckets the month into one of the four seasons.
func SeasonForDate(t time.Time) string {
	switch m := int(t.Month()); {
	case m >= 3 && m <= 5:
		return "春季"
	case m >= 6 && m <= 8:
		return "夏季"
	case m >= 9 && m <= 11:
		return "秋季"
	default:
		return "冬季"
	}
}

// EnvironmentService composes geolocation, weather and calendar context
// into one environment snapshot.
type EnvironmentService struct {
	geo    GeoWeatherService
	logger *slog.Logger
}

// NewEnvironmentService creates an environment composer over a
// geo/weather backend.
func NewEnvironmentService(geo GeoWeatherService, logger *slog.Logger) *EnvironmentService {
	return &EnvironmentService{geo: geo, logger: logger}
}

// Fetch builds a full environment snapshot. Geolocation never fails (it
// falls back to the default region), but a weather failure after the region
// is known propagates, since no default weather exists.
func (s *EnvironmentService) Fetch(ctx context.Context, now time.Time) (*state.EnvironmentInfo, error) {
	location := s.geo.LocationByIP(ctx)

	weather, err := s.geo.Weather(ctx, location.Adcode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather for %s: %w", location.Adcode, err)
	}

	return &state.EnvironmentInfo{
		Location: location,
		Weather:  weather,
		Festival: FestivalForDate(now),
		Season:   SeasonForDate(now),
	}, nil
}
