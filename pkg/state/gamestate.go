package state

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/gufengmap/explore-engine/pkg/quest"
)

// ErrNotFound is returned by mutations that reference a missing entity.
var ErrNotFound = errors.New("not found")

// GameState is the full game state of one player session: the map, the task
// board, achievements, events, social graph, collectibles, the poetry quest
// and the last environment snapshot. All mutations are methods on GameState;
// callers load a session, mutate it, and save it back.
type GameState struct {
	ID                  uuid.UUID            `json:"id"`
	Locations           []Location           `json:"locations"`
	Tasks               []Task               `json:"tasks"`
	Achievements        []Achievement        `json:"achievements"`
	DynamicAchievements []DynamicAchievement `json:"dynamic_achievements"`
	Events              []DynamicEvent       `json:"events"`
	Friends             []Friend             `json:"friends"`
	NFTs                []NFT                `json:"nfts"`
	UserLevel           int                  `json:"user_level"`
	UserExperience      int                  `json:"user_experience"`
	CurrentTime         time.Time            `json:"current_time"`
	Settings            Settings             `json:"settings"`
	Environment         *EnvironmentInfo     `json:"environment,omitempty"`
	Quest               *quest.Task          `json:"quest"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// NewGameState creates a session seeded with the static world content.
func NewGameState(now time.Time) *GameState {
	return &GameState{
		ID:                  uuid.New(),
		Locations:           seedLocations(),
		Tasks:               seedTasks(),
		Achievements:        seedAchievements(),
		DynamicAchievements: make([]DynamicAchievement, 0),
		Events:              seedEvents(),
		Friends:             seedFriends(),
		NFTs:                make([]NFT, 0),
		UserLevel:           5,
		UserExperience:      1250,
		CurrentTime:         now,
		Settings: Settings{
			SoundEnabled: true,
			MusicEnabled: true,
			Theme:        ThemeLight,
			ShowLocation: true,
		},
		Quest:     quest.NewTask(now),
		CreatedAt: now,
	}
}

func (gs *GameState) findLocation(id string) *Location {
	for i := range gs.Locations {
		if gs.Locations[i].ID == id {
			return &gs.Locations[i]
		}
	}
	return nil
}

// FindTask returns the task with the given id, or nil.
func (gs *GameState) FindTask(id string) *Task {
	for i := range gs.Tasks {
		if gs.Tasks[i].ID == id {
			return &gs.Tasks[i]
		}
	}
	return nil
}

// FindEvent returns the event with the given id, or nil.
func (gs *GameState) FindEvent(id string) *DynamicEvent {
	for i := range gs.Events {
		if gs.Events[i].ID == id {
			return &gs.Events[i]
		}
	}
	return nil
}

// UnlockLocation flips a location to unlocked. The transition is one-way;
// unlocking an already-unlocked location is a no-op.
func (gs *GameState) UnlockLocation(id string) error {
	loc := gs.findLocation(id)
	if loc == nil {
		return fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	loc.Unlocked = true
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// UpdateTaskProgress clamps progress to [0, MaxProgress] and derives status:
// completed iff the clamped value reaches MaxProgress, in_progress otherwise.
func (gs *GameState) UpdateTaskProgress(id string, progress int) error {
	task := gs.FindTask(id)
	if task == nil {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	task.Progress = clamp(progress, 0, task.MaxProgress)
	if task.Progress == task.MaxProgress {
		task.Status = TaskCompleted
	} else {
		task.Status = TaskInProgress
	}
	return nil
}

// CompleteTask forces a task to completed and its progress to MaxProgress,
// bypassing the progress threshold.
func (gs *GameState) CompleteTask(id string) error {
	task := gs.FindTask(id)
	if task == nil {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	task.Status = TaskCompleted
	task.Progress = task.MaxProgress
	return nil
}

// CompleteAchievement marks a static achievement completed with full progress.
func (gs *GameState) CompleteAchievement(id string) error {
	for i := range gs.Achievements {
		if gs.Achievements[i].ID == id {
			gs.Achievements[i].Completed = true
			gs.Achievements[i].Progress = gs.Achievements[i].MaxProgress
			return nil
		}
	}
	return fmt.Errorf("achievement %s: %w", id, ErrNotFound)
}

// JoinEvent increments an event's participant count. The store does not
// check capacity; callers gate on DynamicEvent.Full before invoking.
func (gs *GameState) JoinEvent(id string) error {
	event := gs.FindEvent(id)
	if event == nil {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	event.Participants++
	return nil
}

// AddFriend appends one friend to the list.
func (gs *GameState) AddFriend(friend Friend) {
	gs.Friends = append(gs.Friends, friend)
}

// UpdateSettings applies a partial settings update.
func (gs *GameState) UpdateSettings(patch SettingsPatch) {
	if patch.SoundEnabled != nil {
		gs.Settings.SoundEnabled = *patch.SoundEnabled
	}
	if patch.MusicEnabled != nil {
		gs.Settings.MusicEnabled = *patch.MusicEnabled
	}
	if patch.Theme != nil {
		gs.Settings.Theme = *patch.Theme
	}
	if patch.ShowLocation != nil {
		gs.Settings.ShowLocation = *patch.ShowLocation
	}
}

// UpdateTime advances the session clock.
func (gs *GameState) UpdateTime(now time.Time) {
	gs.CurrentTime = now
}

// StartLimitedTimeTask moves a limited-time task to in_progress and stamps
// its absolute start and end times from the configured time limit.
func (gs *GameState) StartLimitedTimeTask(id string, now time.Time) error {
	task := gs.FindTask(id)
	if task == nil {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if !task.IsLimitedTime && task.TimeLimit <= 0 {
		return fmt.Errorf("task %s is not limited-time", id)
	}
	start := now
	end := now.Add(time.Duration(task.TimeLimit))
	task.Status = TaskInProgress
	task.IsLimitedTime = true
	task.StartTime = &start
	task.EndTime = &end
	return nil
}

// CheckLimitedTimeTasks marks limited-time tasks whose deadline has passed
// as expired. Idempotent; safe to call on a fixed interval. Returns the
// number of tasks newly marked.
func (gs *GameState) CheckLimitedTimeTasks(now time.Time) int {
	marked := 0
	for i := range gs.Tasks {
		task := &gs.Tasks[i]
		if !task.IsLimitedTime || task.EndTime == nil {
			continue
		}
		if task.Status == TaskCompleted || task.Status == TaskExpired {
			continue
		}
		if !now.Before(*task.EndTime) {
			task.Status = TaskExpired
			marked++
		}
	}
	return marked
}

// RemoveExpiredDynamicTasks deletes dynamic tasks whose generation window
// has passed. Unlike the limited-time sweep, which only marks, expired
// dynamic tasks are removed outright and never resurrect.
func (gs *GameState) RemoveExpiredDynamicTasks(now time.Time) int {
	kept := gs.Tasks[:0]
	removed := 0
	for _, task := range gs.Tasks {
		if task.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	gs.Tasks = kept
	return removed
}

// MintNFT appends one collectible for a location, with rarity drawn from a
// single uniform roll through the weighted buckets.
func (gs *GameState) MintNFT(locationID string, meta NFTMetadata, now time.Time) (*NFT, error) {
	loc := gs.findLocation(locationID)
	if loc == nil {
		return nil, fmt.Errorf("location %s: %w", locationID, ErrNotFound)
	}
	if meta.ExplorationTime.IsZero() {
		meta.ExplorationTime = now
	}
	rarity := RarityForRoll(rand.Float64())
	nft := NFT{
		ID:          "nft_" + uuid.NewString(),
		Name:        fmt.Sprintf("%s·%s纪念", loc.Name, rarity.Label()),
		Description: fmt.Sprintf("探索%s获得的数字藏品", loc.Name),
		Icon:        loc.Category.Icon(),
		LocationID:  locationID,
		Rarity:      rarity,
		UnlockedAt:  now,
		Metadata:    meta,
	}
	gs.NFTs = append(gs.NFTs, nft)
	return &gs.NFTs[len(gs.NFTs)-1], nil
}

// AddDynamicAchievement appends a generated achievement. The unlock
// condition is recorded as-is and never evaluated against live state.
func (gs *GameState) AddDynamicAchievement(cond UnlockCondition, now time.Time) *DynamicAchievement {
	title, desc, icon := describeCondition(cond)
	ach := DynamicAchievement{
		ID:              "dyn_ach_" + uuid.NewString(),
		Title:           title,
		Description:     desc,
		Icon:            icon,
		Completed:       true,
		Progress:        1,
		MaxProgress:     1,
		Reward:          "文化积分 +10",
		Category:        AchievementSocial,
		UnlockCondition: cond,
		GeneratedAt:     now,
	}
	gs.DynamicAchievements = append(gs.DynamicAchievements, ach)
	return &gs.DynamicAchievements[len(gs.DynamicAchievements)-1]
}

func describeCondition(cond UnlockCondition) (title, desc, icon string) {
	switch {
	case len(cond.SpecialEvents) > 0 && cond.SpecialEvents[0] == "task_sharing":
		return "乐于分享", "与好友分享了一个任务", "📤"
	case cond.FriendsAdded > 0:
		return "广结良缘", fmt.Sprintf("添加了%d位好友", cond.FriendsAdded), "👥"
	case cond.LocationsUnlocked > 0:
		return "寻幽访胜", fmt.Sprintf("解锁了%d个地点", cond.LocationsUnlocked), "🗺️"
	case cond.ConsecutiveDays > 0:
		return "持之以恒", fmt.Sprintf("连续探索%d天", cond.ConsecutiveDays), "⏰"
	case cond.TasksCompleted > 0:
		return "勤学不辍", fmt.Sprintf("完成了%d个任务", cond.TasksCompleted), "📚"
	default:
		return "古风奇缘", "一段特别的探索经历", "✨"
	}
}

// AddDynamicTask converts a generated task into a live limited-time dynamic
// task attached to the first unlocked city.
func (gs *GameState) AddDynamicTask(gen GeneratedTask, now time.Time) *Task {
	duration := time.Duration(gen.DurationHours) * time.Hour
	start := now
	end := now.Add(duration)
	task := Task{
		ID:            "dynamic_task_" + uuid.NewString(),
		Title:         gen.Title,
		Description:   gen.Description,
		Status:        TaskNotStarted,
		Progress:      0,
		MaxProgress:   1,
		Reward:        gen.Reward,
		TimeLimit:     Duration(duration),
		LocationID:    gs.firstUnlockedCity(),
		Category:      TaskLimitedTime,
		StartTime:     &start,
		EndTime:       &end,
		IsLimitedTime: true,
		IsDynamic:     true,
		GeneratedAt:   &start,
		WeatherTag:    gen.WeatherTag,
		FestivalTag:   gen.FestivalTag,
	}
	gs.Tasks = append(gs.Tasks, task)
	return &gs.Tasks[len(gs.Tasks)-1]
}

func (gs *GameState) firstUnlockedCity() string {
	for i := range gs.Locations {
		if gs.Locations[i].IsCity && gs.Locations[i].Unlocked {
			return gs.Locations[i].ID
		}
	}
	return "beijing"
}

// SetEnvironment replaces the environment snapshot wholesale. No field from
// a previous snapshot survives a refresh.
func (gs *GameState) SetEnvironment(env *EnvironmentInfo) {
	gs.Environment = env
}
