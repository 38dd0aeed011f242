package quest

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

// solveRiddles answers both riddles correctly, completing stage one.
func solveRiddles(t *testing.T, task *Task) {
	t.Helper()
	for _, answer := range []string{"淡妆浓抹总相宜", "映日荷花别样红"} {
		if _, err := task.AnswerRiddle(answer, testNow); err != nil {
			t.Fatalf("AnswerRiddle(%s) failed: %v", answer, err)
		}
	}
}

// meetPoet completes stage two with Su Shi.
func meetPoet(t *testing.T, task *Task) {
	t.Helper()
	if _, err := task.SelectPoet("poet_sushi"); err != nil {
		t.Fatalf("SelectPoet failed: %v", err)
	}
	if _, err := task.SendMessage("你写过饮湖上初晴后雨吗", testNow); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
}

func TestNewTaskInitialState(t *testing.T) {
	task := NewTask(testNow)

	if task.CurrentStage != StagePoetryRiddle {
		t.Errorf("Expected riddle stage, got %s", task.CurrentStage)
	}
	if task.Riddle.Status != StatusNotStarted {
		t.Errorf("Expected riddle not_started, got %s", task.Riddle.Status)
	}
	if task.Poet.Status != StatusLocked || task.Creation.Status != StatusLocked {
		t.Error("Expected later stages locked")
	}
	if task.Riddle.MaxProgress != 2 {
		t.Errorf("Expected riddle max progress 2, got %d", task.Riddle.MaxProgress)
	}
	if task.Rewards != (Rewards{}) {
		t.Errorf("Expected zeroed rewards, got %+v", task.Rewards)
	}
}

func TestAnswerRiddle(t *testing.T) {
	task := NewTask(testNow)

	// Wrong answer: nothing advances.
	res, err := task.AnswerRiddle("不知道", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Correct {
		t.Error("Expected incorrect result")
	}
	if task.Riddle.Progress != 0 || task.Riddle.CurrentRiddleIndex != 0 {
		t.Error("Wrong answer must not advance progress or index")
	}
	if task.Riddle.Status != StatusInProgress {
		t.Errorf("Expected in_progress after first attempt, got %s", task.Riddle.Status)
	}

	// First correct answer advances to the next riddle.
	res, err = task.AnswerRiddle("淡妆浓抹总相宜", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Correct || res.StageCompleted {
		t.Errorf("Expected correct, stage not completed: %+v", res)
	}
	if res.Explanation == "" {
		t.Error("Expected explanation on correct answer")
	}
	if task.Riddle.CurrentRiddleIndex != 1 {
		t.Errorf("Expected index 1, got %d", task.Riddle.CurrentRiddleIndex)
	}

	// Second correct answer completes the stage and unlocks the poets.
	res, err = task.AnswerRiddle("映日荷花别样红", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !res.StageCompleted {
		t.Error("Expected stage completed on second correct answer")
	}
	if task.Riddle.Status != StatusCompleted {
		t.Errorf("Expected completed, got %s", task.Riddle.Status)
	}
	if task.Poet.Status != StatusNotStarted {
		t.Errorf("Expected poet stage unlocked, got %s", task.Poet.Status)
	}
	if task.CurrentStage != StagePoetExploration {
		t.Errorf("Expected current stage advanced, got %s", task.CurrentStage)
	}
	if !task.Rewards.PoetryDoor || task.Rewards.PoetryValue != 20 {
		t.Errorf("Expected poetry door and +20, got %+v", task.Rewards)
	}

	// Completed stage rejects further answers.
	if _, err := task.AnswerRiddle("淡妆浓抹总相宜", testNow); !errors.Is(err, ErrStageCompleted) {
		t.Errorf("Expected ErrStageCompleted, got %v", err)
	}
}

func TestAnswerRiddleInputHandling(t *testing.T) {
	task := NewTask(testNow)

	if _, err := task.AnswerRiddle("   ", testNow); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}

	// Surrounding whitespace is ignored but matching stays exact.
	res, err := task.AnswerRiddle("  淡妆浓抹总相宜  ", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Correct {
		t.Error("Expected trimmed answer to match")
	}
}

func TestPoetStageGating(t *testing.T) {
	task := NewTask(testNow)

	if _, err := task.SelectPoet("poet_sushi"); !errors.Is(err, ErrStageLocked) {
		t.Errorf("Expected ErrStageLocked, got %v", err)
	}
	if _, err := task.SendMessage("你好", testNow); !errors.Is(err, ErrStageLocked) {
		t.Errorf("Expected ErrStageLocked, got %v", err)
	}

	solveRiddles(t, task)

	if _, err := task.SendMessage("你好", testNow); !errors.Is(err, ErrNoPoetSelected) {
		t.Errorf("Expected ErrNoPoetSelected, got %v", err)
	}
	if _, err := task.SelectPoet("poet_ghost"); !errors.Is(err, ErrUnknownPoet) {
		t.Errorf("Expected ErrUnknownPoet, got %v", err)
	}

	intro, err := task.SelectPoet("poet_sushi")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(intro, "苏轼") || !strings.Contains(intro, "北宋") {
		t.Errorf("Expected introduction with name and dynasty, got %q", intro)
	}
	if task.Poet.Status != StatusInProgress {
		t.Errorf("Expected in_progress, got %s", task.Poet.Status)
	}
}

func TestSendMessageClueMatching(t *testing.T) {
	task := NewTask(testNow)
	solveRiddles(t, task)
	if _, err := task.SelectPoet("poet_sushi"); err != nil {
		t.Fatal(err)
	}

	// A message without any clue earns a deflection.
	reply, err := task.SendMessage("西湖今天天气如何", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if reply.StageCompleted || reply.ClueFound != "" {
		t.Errorf("Expected deflection, got %+v", reply)
	}
	if task.Poet.Status != StatusInProgress {
		t.Errorf("Stage must stay in progress, got %s", task.Poet.Status)
	}

	// A clue embedded in the message completes the stage.
	reply, err = task.SendMessage("我很喜欢你的饮湖上初晴后雨", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reply.StageCompleted || reply.ClueFound != "饮湖上初晴后雨" {
		t.Errorf("Expected clue found, got %+v", reply)
	}
	if task.Creation.Status != StatusNotStarted {
		t.Errorf("Expected creation unlocked, got %s", task.Creation.Status)
	}
	if !task.Rewards.PoetCard || task.Rewards.PoetryValue != 50 {
		t.Errorf("Expected poet card and cumulative +50, got %+v", task.Rewards)
	}
}

func TestCreationFlow(t *testing.T) {
	task := NewTask(testNow)
	solveRiddles(t, task)
	meetPoet(t, task)

	if err := task.SelectTheme("theme_ghost"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("Expected ErrUnknownTheme, got %v", err)
	}
	if err := task.ToggleKeyword("阳光"); !errors.Is(err, ErrNoThemeSelected) {
		t.Errorf("Expected ErrNoThemeSelected, got %v", err)
	}
	if _, err := task.ComposeDraft(); !errors.Is(err, ErrNoThemeSelected) {
		t.Errorf("Expected ErrNoThemeSelected, got %v", err)
	}

	if err := task.SelectTheme("theme_sunny"); err != nil {
		t.Fatal(err)
	}

	// Selections must come from the theme's own lists.
	if err := task.ToggleKeyword("月光"); err == nil {
		t.Error("Expected error for keyword from another theme")
	}
	if err := task.ToggleKeyword("荷花"); err != nil {
		t.Fatal(err)
	}
	if err := task.ToggleEmotion("愉悦"); err != nil {
		t.Fatal(err)
	}

	// Toggling twice removes the selection again.
	if err := task.ToggleKeyword("荷花"); err != nil {
		t.Fatal(err)
	}
	if len(task.Creation.SelectedKeywords) != 0 {
		t.Errorf("Expected keyword removed, got %v", task.Creation.SelectedKeywords)
	}
	if _, err := task.ComposeDraft(); !errors.Is(err, ErrSelectionRequired) {
		t.Errorf("Expected ErrSelectionRequired, got %v", err)
	}
	if err := task.ToggleKeyword("荷花"); err != nil {
		t.Fatal(err)
	}

	draft, err := task.ComposeDraft()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(draft, "荷花") || !strings.Contains(draft, "愉悦") {
		t.Errorf("Expected draft to carry selections, got %q", draft)
	}
	if task.Creation.Draft != draft {
		t.Error("Expected draft stored")
	}

	poem, err := task.SubmitPoem(draft, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if poem.AIScore < 80 || poem.AIScore > 99 {
		t.Errorf("Expected score in [80,99], got %d", poem.AIScore)
	}
	if poem.Title != "晴日西湖有感" {
		t.Errorf("Expected theme-derived title, got %s", poem.Title)
	}

	if !task.Completed() {
		t.Error("Expected quest completed")
	}
	if task.CompletedAt == nil {
		t.Error("Expected completion timestamp")
	}
	want := Rewards{PoetryDoor: true, PoetCard: true, WestLakeBadge: true, PoetryValue: 100, CulturePoints: 100}
	if task.Rewards != want {
		t.Errorf("Expected final rewards %+v, got %+v", want, task.Rewards)
	}

	// Submitting again is rejected.
	if _, err := task.SubmitPoem("再来一首", testNow); !errors.Is(err, ErrStageCompleted) {
		t.Errorf("Expected ErrStageCompleted, got %v", err)
	}
}

func TestSelectThemeClearsSelections(t *testing.T) {
	task := NewTask(testNow)
	solveRiddles(t, task)
	meetPoet(t, task)

	if err := task.SelectTheme("theme_sunny"); err != nil {
		t.Fatal(err)
	}
	if err := task.ToggleKeyword("荷花"); err != nil {
		t.Fatal(err)
	}
	if err := task.SelectTheme("theme_rainy"); err != nil {
		t.Fatal(err)
	}
	if len(task.Creation.SelectedKeywords) != 0 || task.Creation.Draft != "" {
		t.Error("Expected selections and draft cleared on theme change")
	}
}

func TestReset(t *testing.T) {
	task := NewTask(testNow)
	solveRiddles(t, task)
	meetPoet(t, task)

	later := testNow.Add(time.Hour)
	task.Reset(later)

	if task.CurrentStage != StagePoetryRiddle {
		t.Errorf("Expected riddle stage after reset, got %s", task.CurrentStage)
	}
	if task.Poet.Status != StatusLocked || task.Creation.Status != StatusLocked {
		t.Error("Expected later stages re-locked")
	}
	if task.Rewards != (Rewards{}) {
		t.Errorf("Expected rewards zeroed, got %+v", task.Rewards)
	}
	if !task.CreatedAt.Equal(later) {
		t.Errorf("Expected creation time refreshed, got %v", task.CreatedAt)
	}
}
