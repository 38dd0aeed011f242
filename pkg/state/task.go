package state

import (
	"fmt"
	"strconv"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskExpired    TaskStatus = "expired"
)

// TaskCategory is the closed set of task types.
type TaskCategory string

const (
	TaskExploration TaskCategory = "exploration"
	TaskKnowledge   TaskCategory = "knowledge"
	TaskSocial      TaskCategory = "social"
	TaskCollection  TaskCategory = "collection"
	TaskLimitedTime TaskCategory = "limited_time"
)

// Valid reports whether c is one of the defined categories.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskExploration, TaskKnowledge, TaskSocial, TaskCollection, TaskLimitedTime:
		return true
	}
	return false
}

// Icon returns the display glyph for a task category.
func (c TaskCategory) Icon() string {
	switch c {
	case TaskExploration:
		return "🗺️"
	case TaskKnowledge:
		return "📚"
	case TaskSocial:
		return "👥"
	case TaskCollection:
		return "🎁"
	case TaskLimitedTime:
		return "⏰"
	}
	return "🎯"
}

// Task is a unit of gameplay owned by a location. Static tasks are seeded at
// session creation; dynamic tasks are synthesized from live weather and
// festival context. Progress is always clamped to [0, MaxProgress], and
// Status is completed iff Progress == MaxProgress.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Detail      string       `json:"detail,omitempty"`
	Target      string       `json:"target,omitempty"`
	Background  string       `json:"background,omitempty"`
	Status      TaskStatus   `json:"status"`
	Progress    int          `json:"progress"`
	MaxProgress int          `json:"max_progress"`
	Reward      string       `json:"reward"`
	TimeLimit   Duration     `json:"time_limit,omitempty"`
	LocationID  string       `json:"location_id"`
	Category    TaskCategory `json:"category"`

	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	IsLimitedTime bool       `json:"is_limited_time,omitempty"`
	IsDynamic     bool       `json:"is_dynamic,omitempty"`
	GeneratedAt   *time.Time `json:"generated_at,omitempty"`

	// Display-only context tags on dynamic tasks.
	WeatherTag  string `json:"weather_tag,omitempty"`
	FestivalTag string `json:"festival_tag,omitempty"`
}

// Duration marshals as milliseconds, matching the wire format the map
// front-ends expect for task time limits.
type Duration time.Duration

// MarshalJSON encodes the duration as integer milliseconds.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Duration(d).Milliseconds(), 10)), nil
}

// UnmarshalJSON decodes integer milliseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// Expired reports whether a dynamic task's generation window has passed.
func (t *Task) Expired(now time.Time) bool {
	if !t.IsDynamic || t.GeneratedAt == nil || t.TimeLimit <= 0 {
		return false
	}
	deadline := t.GeneratedAt.Add(time.Duration(t.TimeLimit))
	return !now.Before(deadline)
}

// GeneratedTask is the structured result of the task generation pipeline,
// either parsed out of an LLM reply or built from a fallback template.
// All fields are always non-empty after generation.
type GeneratedTask struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"` // weather | festival | seasonal
	DurationHours int    `json:"duration"`
	Reward        string `json:"reward"`
	WeatherTag    string `json:"weatherCondition,omitempty"`
	FestivalTag   string `json:"festivalType,omitempty"`
}
