package state

import "time"

// AchievementCategory is the closed set of achievement types.
type AchievementCategory string

const (
	AchievementExploration AchievementCategory = "exploration"
	AchievementTasks       AchievementCategory = "tasks"
	AchievementSocial      AchievementCategory = "social"
	AchievementTime        AchievementCategory = "time"
)

// Achievement is a static badge seeded at session creation.
// Completed implies Progress == MaxProgress.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Completed   bool                `json:"completed"`
	Progress    int                 `json:"progress"`
	MaxProgress int                 `json:"max_progress"`
	Reward      string              `json:"reward"`
	Category    AchievementCategory `json:"category"`
}

// UnlockCondition records what earned a dynamic achievement. It is a ledger
// entry only: the store never evaluates it against live state.
type UnlockCondition struct {
	TasksCompleted    int      `json:"tasks_completed,omitempty"`
	LocationsUnlocked int      `json:"locations_unlocked,omitempty"`
	FriendsAdded      int      `json:"friends_added,omitempty"`
	ConsecutiveDays   int      `json:"consecutive_days,omitempty"`
	SpecialEvents     []string `json:"special_events,omitempty"`
}

// DynamicAchievement is an achievement generated at runtime. Append-only.
type DynamicAchievement struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Icon            string              `json:"icon"`
	Completed       bool                `json:"completed"`
	Progress        int                 `json:"progress"`
	MaxProgress     int                 `json:"max_progress"`
	Reward          string              `json:"reward"`
	Category        AchievementCategory `json:"category"`
	UnlockCondition UnlockCondition     `json:"unlock_condition"`
	GeneratedAt     time.Time           `json:"generated_at"`
}
