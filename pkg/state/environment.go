package state

// LocationInfo is the resolved geolocation of the player.
type LocationInfo struct {
	Province string `json:"province"`
	City     string `json:"city"`
	Adcode   string `json:"adcode"`
}

// Weather is the current conditions snapshot for a region.
type Weather struct {
	Province      string `json:"province"`
	City          string `json:"city"`
	Weather       string `json:"weather"`
	Temperature   string `json:"temperature"`
	WindDirection string `json:"winddirection"`
	WindPower     string `json:"windpower"`
	Humidity      string `json:"humidity"`
	ReportTime    string `json:"reporttime"`
}

// EnvironmentInfo is the composed location + weather + festival + season
// snapshot used to contextualize dynamic task generation. It is replaced
// wholesale on every refresh, never merged field by field.
type EnvironmentInfo struct {
	Location *LocationInfo `json:"location,omitempty"`
	Weather  *Weather      `json:"weather,omitempty"`
	Festival string        `json:"festival,omitempty"`
	Season   string        `json:"season"`
}
