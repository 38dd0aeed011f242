package state

import "time"

// NFTRarity is the closed set of collectible rarities.
type NFTRarity string

const (
	RarityCommon    NFTRarity = "common"
	RarityRare      NFTRarity = "rare"
	RarityEpic      NFTRarity = "epic"
	RarityLegendary NFTRarity = "legendary"
)

// Valid reports whether r is one of the defined rarities.
func (r NFTRarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Label returns the display name for a rarity.
func (r NFTRarity) Label() string {
	switch r {
	case RarityLegendary:
		return "传说"
	case RarityEpic:
		return "史诗"
	case RarityRare:
		return "稀有"
	case RarityCommon:
		return "普通"
	}
	return string(r)
}

// RarityForRoll maps one uniform roll in [0,1) onto the rarity distribution:
// 20% legendary, 20% epic, 30% rare, 30% common. A single cumulative-bucket
// lookup keeps the weights independent of check ordering.
func RarityForRoll(roll float64) NFTRarity {
	switch {
	case roll < 0.20:
		return RarityLegendary
	case roll < 0.40:
		return RarityEpic
	case roll < 0.70:
		return RarityRare
	default:
		return RarityCommon
	}
}

// NFTMetadata carries the exploration context captured at mint time.
type NFTMetadata struct {
	ExplorationTime time.Time `json:"exploration_time"`
	Weather         string    `json:"weather,omitempty"`
	Festival        string    `json:"festival,omitempty"`
	SpecialEvent    string    `json:"special_event,omitempty"`
}

// NFT is a locally minted collectible souvenir with no chain backing.
// Append-only.
type NFT struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Description string     `json:"description"`
	Icon       string      `json:"icon"`
	LocationID string      `json:"location_id"`
	Rarity     NFTRarity   `json:"rarity"`
	UnlockedAt time.Time   `json:"unlocked_at"`
	Metadata   NFTMetadata `json:"metadata"`
}
