package state

import "fmt"

// LocationCategory is the closed set of location types on the map.
type LocationCategory string

const (
	LocationTemple   LocationCategory = "temple"
	LocationPalace   LocationCategory = "palace"
	LocationGarden   LocationCategory = "garden"
	LocationMountain LocationCategory = "mountain"
	LocationRiver    LocationCategory = "river"
	LocationVillage  LocationCategory = "village"
	LocationCity     LocationCategory = "city"
)

// Valid reports whether c is one of the defined categories.
func (c LocationCategory) Valid() bool {
	switch c {
	case LocationTemple, LocationPalace, LocationGarden,
		LocationMountain, LocationRiver, LocationVillage, LocationCity:
		return true
	}
	return false
}

// Icon returns the map glyph for a category. Every category is mapped
// explicitly; an unknown category is a programming error.
func (c LocationCategory) Icon() string {
	switch c {
	case LocationTemple:
		return "🏛️"
	case LocationPalace:
		return "🏰"
	case LocationGarden:
		return "🌸"
	case LocationMountain:
		return "⛰️"
	case LocationRiver:
		return "🌊"
	case LocationVillage:
		return "🏘️"
	case LocationCity:
		return "🏙️"
	}
	return "📍"
}

// GuideInfo is static visitor guidance attached to some locations.
type GuideInfo struct {
	Introduction    string   `json:"introduction"`
	ExplorationTips []string `json:"exploration_tips,omitempty"`
	Highlights      []string `json:"highlights,omitempty"`
	BestTime        string   `json:"best_time,omitempty"`
	Duration        string   `json:"duration,omitempty"`
}

// Location is a point of interest on the exploration map. Cities own a set
// of sub-locations; a sub-location references its city via ParentCity.
// Unlocked is the only field mutated after seeding, and only false->true.
type Location struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     LocationCategory `json:"category"`
	Unlocked     bool             `json:"unlocked"`
	X            int              `json:"x"`
	Y            int              `json:"y"`
	Description  string           `json:"description"`
	Tasks        []string         `json:"tasks,omitempty"`
	Events       []string         `json:"events,omitempty"`
	ParentCity   string           `json:"parent_city,omitempty"`
	IsCity       bool             `json:"is_city,omitempty"`
	SubLocations []string         `json:"sub_locations,omitempty"`
	GuideInfo    *GuideInfo       `json:"guide_info,omitempty"`
}

// ValidateHierarchy checks the city/sub-location back-references of a
// location set: every ParentCity must name an existing city, and a city's
// SubLocations must agree with its children's ParentCity.
func ValidateHierarchy(locations []Location) error {
	byID := make(map[string]*Location, len(locations))
	for i := range locations {
		byID[locations[i].ID] = &locations[i]
	}

	for i := range locations {
		loc := &locations[i]
		if loc.ParentCity != "" {
			city, ok := byID[loc.ParentCity]
			if !ok {
				return fmt.Errorf("location %s references unknown city %s", loc.ID, loc.ParentCity)
			}
			if !city.IsCity || city.Category != LocationCity {
				return fmt.Errorf("location %s parent %s is not a city", loc.ID, loc.ParentCity)
			}
		}
		for _, subID := range loc.SubLocations {
			sub, ok := byID[subID]
			if !ok {
				return fmt.Errorf("city %s lists unknown sub-location %s", loc.ID, subID)
			}
			if sub.ParentCity != loc.ID {
				return fmt.Errorf("sub-location %s of city %s has parent %q", subID, loc.ID, sub.ParentCity)
			}
		}
	}
	return nil
}
