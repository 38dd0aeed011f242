package quest

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyInput        = errors.New("input cannot be empty")
	ErrStageLocked       = errors.New("stage is locked")
	ErrStageCompleted    = errors.New("stage is already completed")
	ErrNoPoetSelected    = errors.New("no poet selected")
	ErrNoThemeSelected   = errors.New("no theme selected")
	ErrUnknownPoet       = errors.New("unknown poet")
	ErrUnknownTheme      = errors.New("unknown theme")
	ErrSelectionRequired = errors.New("select at least one keyword and one emotion")
)

// normalizeInput trims whitespace and applies NFC so that composed and
// decomposed forms of the same CJK text compare equal. It does not broaden
// matching beyond exact equality.
func normalizeInput(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func pick(replies []string) string {
	return replies[rand.Intn(len(replies))]
}

// AnswerResult reports the outcome of a riddle submission.
type AnswerResult struct {
	Correct        bool   `json:"correct"`
	Reply          string `json:"reply"`
	Explanation    string `json:"explanation,omitempty"`
	StageCompleted bool   `json:"stage_completed"`
}

// AnswerRiddle checks one answer against the current riddle. A correct
// answer advances progress and the riddle index; the second correct answer
// completes the stage, unlocks poet exploration and grants the poetry-door
// reward. Incorrect answers change nothing but the canned reply.
func (t *Task) AnswerRiddle(answer string, now time.Time) (*AnswerResult, error) {
	if t.Riddle.Status == StatusCompleted {
		return nil, ErrStageCompleted
	}
	answer = normalizeInput(answer)
	if answer == "" {
		return nil, ErrEmptyInput
	}
	if t.Riddle.Status == StatusNotStarted {
		t.Riddle.Status = StatusInProgress
	}

	riddle := t.Riddle.Riddles[t.Riddle.CurrentRiddleIndex]
	if answer != riddle.CorrectAnswer {
		return &AnswerResult{Reply: pick(YinFeng.Incorrect)}, nil
	}

	t.Riddle.CorrectAnswers++
	t.Riddle.Progress++

	res := &AnswerResult{
		Correct:     true,
		Reply:       pick(YinFeng.Correct),
		Explanation: riddle.Explanation,
	}

	if t.Riddle.Progress >= t.Riddle.MaxProgress {
		t.Riddle.Status = StatusCompleted
		t.Poet.Status = StatusNotStarted
		unlocked := now
		t.Poet.UnlockedAt = &unlocked
		t.CurrentStage = StagePoetExploration
		t.Rewards.PoetryDoor = true
		t.Rewards.PoetryValue += 20
		res.StageCompleted = true
	} else {
		t.Riddle.CurrentRiddleIndex++
	}
	return res, nil
}

// SelectPoet begins a conversation with one poet from the roster and
// returns the poet's introduction line.
func (t *Task) SelectPoet(poetID string) (string, error) {
	if t.Poet.Status == StatusLocked {
		return "", ErrStageLocked
	}
	if t.Poet.Status == StatusCompleted {
		return "", ErrStageCompleted
	}
	for _, p := range t.Poet.Poets {
		if p.ID == poetID {
			t.Poet.CurrentPoetID = p.ID
			t.Poet.Status = StatusInProgress
			return fmt.Sprintf("我是%s，%s诗人。%s", p.Name, p.Dynasty, p.Description), nil
		}
	}
	return "", ErrUnknownPoet
}

// PoetReply is the outcome of one exchange with the selected poet.
type PoetReply struct {
	Reply          string `json:"reply"`
	ClueFound      string `json:"clue_found,omitempty"`
	StageCompleted bool   `json:"stage_completed"`
}

// SendMessage scans one user message for the selected poet's key clues.
// The first clue found completes the stage, unlocks poetry creation and
// grants the poet-card reward; anything else earns a deflection.
func (t *Task) SendMessage(message string, now time.Time) (*PoetReply, error) {
	if t.Poet.Status == StatusLocked {
		return nil, ErrStageLocked
	}
	if t.Poet.Status == StatusCompleted {
		return nil, ErrStageCompleted
	}
	if t.Poet.CurrentPoetID == "" {
		return nil, ErrNoPoetSelected
	}
	message = normalizeInput(message)
	if message == "" {
		return nil, ErrEmptyInput
	}

	var poet *Poet
	for i := range t.Poet.Poets {
		if t.Poet.Poets[i].ID == t.Poet.CurrentPoetID {
			poet = &t.Poet.Poets[i]
			break
		}
	}
	if poet == nil {
		return nil, ErrUnknownPoet
	}

	for _, clue := range poet.KeyClues {
		if strings.Contains(message, clue) {
			t.Poet.DiscoveredClues = append(t.Poet.DiscoveredClues, clue)
			t.Poet.Progress = t.Poet.MaxProgress
			t.Poet.Status = StatusCompleted
			t.Creation.Status = StatusNotStarted
			unlocked := now
			t.Creation.UnlockedAt = &unlocked
			t.CurrentStage = StagePoetryCreation
			t.Rewards.PoetCard = true
			t.Rewards.PoetryValue += 30
			return &PoetReply{
				Reply:          fmt.Sprintf("是的！%s正是我的作品。你找到了关键线索！", clue),
				ClueFound:      clue,
				StageCompleted: true,
			}, nil
		}
	}
	return &PoetReply{
		Reply: "关于西湖，我有很多感悟。你可以问我关于我的作品或者生活。",
	}, nil
}

// SelectTheme picks the composition theme and clears any previous
// keyword/emotion selections and draft.
func (t *Task) SelectTheme(themeID string) error {
	if t.Creation.Status == StatusLocked {
		return ErrStageLocked
	}
	if t.Creation.Status == StatusCompleted {
		return ErrStageCompleted
	}
	for _, th := range t.Creation.Themes {
		if th.ID == themeID {
			t.Creation.SelectedTheme = th.ID
			t.Creation.SelectedKeywords = nil
			t.Creation.SelectedEmotions = nil
			t.Creation.Draft = ""
			t.Creation.Status = StatusInProgress
			return nil
		}
	}
	return ErrUnknownTheme
}

func (t *Task) selectedTheme() *Theme {
	for i := range t.Creation.Themes {
		if t.Creation.Themes[i].ID == t.Creation.SelectedTheme {
			return &t.Creation.Themes[i]
		}
	}
	return nil
}

func toggle(list []string, item string) []string {
	for i, v := range list {
		if v == item {
			return append(list[:i], list[i+1:]...)
		}
	}
	return append(list, item)
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// ToggleKeyword adds or removes one of the selected theme's keywords.
func (t *Task) ToggleKeyword(keyword string) error {
	theme := t.selectedTheme()
	if theme == nil {
		return ErrNoThemeSelected
	}
	if !contains(theme.Keywords, keyword) {
		return fmt.Errorf("keyword %q is not offered by theme %s", keyword, theme.ID)
	}
	t.Creation.SelectedKeywords = toggle(t.Creation.SelectedKeywords, keyword)
	return nil
}

// ToggleEmotion adds or removes one of the selected theme's emotions.
func (t *Task) ToggleEmotion(emotion string) error {
	theme := t.selectedTheme()
	if theme == nil {
		return ErrNoThemeSelected
	}
	if !contains(theme.Emotions, emotion) {
		return fmt.Errorf("emotion %q is not offered by theme %s", emotion, theme.ID)
	}
	t.Creation.SelectedEmotions = toggle(t.Creation.SelectedEmotions, emotion)
	return nil
}

// ComposeDraft interpolates the first selected keyword and emotion into a
// fixed verse template and stores it as the working draft.
func (t *Task) ComposeDraft() (string, error) {
	if t.Creation.Status == StatusLocked {
		return "", ErrStageLocked
	}
	if t.Creation.Status == StatusCompleted {
		return "", ErrStageCompleted
	}
	if t.Creation.SelectedTheme == "" {
		return "", ErrNoThemeSelected
	}
	if len(t.Creation.SelectedKeywords) == 0 || len(t.Creation.SelectedEmotions) == 0 {
		return "", ErrSelectionRequired
	}
	draft := fmt.Sprintf("荷影摇风意未休，\n烟波深处梦悠悠。\n%s映%s，\n诗意西湖共此游。",
		t.Creation.SelectedKeywords[0], t.Creation.SelectedEmotions[0])
	t.Creation.Draft = draft
	return draft, nil
}

// SubmitPoem finalizes the composition with a random score in [80,100),
// completes the quest and grants the final reward bundle.
func (t *Task) SubmitPoem(content string, now time.Time) (*UserPoem, error) {
	if t.Creation.Status == StatusLocked {
		return nil, ErrStageLocked
	}
	if t.Creation.Status == StatusCompleted {
		return nil, ErrStageCompleted
	}
	theme := t.selectedTheme()
	if theme == nil {
		return nil, ErrNoThemeSelected
	}
	content = normalizeInput(content)
	if content == "" {
		return nil, ErrEmptyInput
	}

	score := rand.Intn(20) + 80
	poem := &UserPoem{
		ID:        "poem_" + uuid.NewString(),
		Title:     theme.Name + "有感",
		Content:   content,
		Theme:     theme.ID,
		Keywords:  t.Creation.SelectedKeywords,
		Emotions:  t.Creation.SelectedEmotions,
		AIScore:   score,
		CreatedAt: now,
	}

	t.Creation.Status = StatusCompleted
	t.Creation.Progress = t.Creation.MaxProgress
	t.Creation.UserPoem = poem
	t.Creation.AIScore = score
	t.Rewards.WestLakeBadge = true
	t.Rewards.PoetryValue += 50
	t.Rewards.CulturePoints += 100
	completed := now
	t.CompletedAt = &completed
	return poem, nil
}

// Reset restores the quest to its initial state, re-locking stages two and
// three and zeroing all rewards.
func (t *Task) Reset(now time.Time) {
	*t = *NewTask(now)
}
