package quest

import "time"

// Stage identifies one of the three quest stages.
type Stage string

const (
	StagePoetryRiddle    Stage = "poetry_riddle"
	StagePoetExploration Stage = "poet_exploration"
	StagePoetryCreation  Stage = "poetry_creation"
)

// StageStatus is the lifecycle state of a single stage. Stages two and three
// begin locked and unlock when the previous stage completes.
type StageStatus string

const (
	StatusNotStarted StageStatus = "not_started"
	StatusInProgress StageStatus = "in_progress"
	StatusCompleted  StageStatus = "completed"
	StatusLocked     StageStatus = "locked"
)

// Riddle is a complete-the-verse prompt. Alternatives are stored for display
// but matching is exact equality against CorrectAnswer only.
type Riddle struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Alternatives  []string `json:"alternatives,omitempty"`
	Hint          string   `json:"hint"`
	Explanation   string   `json:"explanation"`
}

// Poet is a historical figure the player converses with in stage two.
type Poet struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Dynasty       string   `json:"dynasty"`
	Description   string   `json:"description"`
	WestLakePoems []string `json:"west_lake_poems"`
	KeyClues      []string `json:"key_clues"`
	Personality   string   `json:"personality"`
}

// Theme is a composition theme for stage three.
type Theme struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Emotions    []string `json:"emotions"`
	Examples    []string `json:"examples"`
}

// UserPoem is the player's submitted composition.
type UserPoem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Theme     string    `json:"theme"`
	Keywords  []string  `json:"keywords"`
	Emotions  []string  `json:"emotions"`
	AIScore   int       `json:"ai_score"`
	CreatedAt time.Time `json:"created_at"`
}

// RiddleStage is the state of the verse-completion stage.
type RiddleStage struct {
	Status             StageStatus `json:"status"`
	Progress           int         `json:"progress"`
	MaxProgress        int         `json:"max_progress"`
	Riddles            []Riddle    `json:"riddles"`
	CurrentRiddleIndex int         `json:"current_riddle_index"`
	CorrectAnswers     int         `json:"correct_answers"`
	UnlockedAt         *time.Time  `json:"unlocked_at,omitempty"`
}

// PoetStage is the state of the poet-dialogue stage.
type PoetStage struct {
	Status          StageStatus `json:"status"`
	Progress        int         `json:"progress"`
	MaxProgress     int         `json:"max_progress"`
	Poets           []Poet      `json:"poets"`
	CurrentPoetID   string      `json:"current_poet_id,omitempty"`
	DiscoveredClues []string    `json:"discovered_clues"`
	UnlockedAt      *time.Time  `json:"unlocked_at,omitempty"`
}

// CreationStage is the state of the composition stage.
type CreationStage struct {
	Status           StageStatus `json:"status"`
	Progress         int         `json:"progress"`
	MaxProgress      int         `json:"max_progress"`
	Themes           []Theme     `json:"themes"`
	SelectedTheme    string      `json:"selected_theme,omitempty"`
	SelectedKeywords []string    `json:"selected_keywords,omitempty"`
	SelectedEmotions []string    `json:"selected_emotions,omitempty"`
	Draft            string      `json:"draft,omitempty"`
	UserPoem         *UserPoem   `json:"user_poem,omitempty"`
	AIScore          int         `json:"ai_score"`
	UnlockedAt       *time.Time  `json:"unlocked_at,omitempty"`
}

// Rewards accumulates milestone flags and point totals across the quest.
type Rewards struct {
	PoetryDoor    bool `json:"poetry_door"`
	PoetCard      bool `json:"poet_card"`
	WestLakeBadge bool `json:"west_lake_badge"`
	PoetryValue   int  `json:"poetry_value"`
	CulturePoints int  `json:"culture_points"`
}

// Task is the three-stage West Lake poetry quest for one session.
// CurrentStage always points at the active stage.
type Task struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	LocationID   string        `json:"location_id"`
	CurrentStage Stage         `json:"current_stage"`
	Riddle       RiddleStage   `json:"riddle_stage"`
	Poet         PoetStage     `json:"poet_stage"`
	Creation     CreationStage `json:"creation_stage"`
	Rewards      Rewards       `json:"rewards"`
	CreatedAt    time.Time     `json:"created_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

// Completed reports whether all three stages are done.
func (t *Task) Completed() bool {
	return t.Riddle.Status == StatusCompleted &&
		t.Poet.Status == StatusCompleted &&
		t.Creation.Status == StatusCompleted
}
