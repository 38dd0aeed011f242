package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gufengmap/explore-engine/internal/storage"
	"github.com/gufengmap/explore-engine/pkg/quest"
)

func postQuest(t *testing.T, handler *QuestHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/quest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeQuest(t *testing.T, rr *httptest.ResponseRecorder) *QuestResponse {
	t.Helper()
	var resp QuestResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return &resp
}

func TestQuestHandler_AnswerRiddle(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewQuestHandler(store, testLogger())
	gs := seedSession(t, store)

	body := fmt.Sprintf(`{"session_id":%q,"action":"answer_riddle","answer":"淡妆浓抹总相宜"}`, gs.ID)
	rr := postQuest(t, handler, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeQuest(t, rr)
	if resp.Answer == nil || !resp.Answer.Correct {
		t.Fatalf("Expected correct answer result, got %+v", resp.Answer)
	}
	if resp.Answer.StageCompleted {
		t.Error("First correct answer must not complete the stage")
	}
	if resp.Quest.Riddle.Progress != 1 {
		t.Errorf("Expected riddle progress 1, got %d", resp.Quest.Riddle.Progress)
	}
}

func TestQuestHandler_FullPlaythrough(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewQuestHandler(store, testLogger())
	gs := seedSession(t, store)

	steps := []struct {
		name string
		body string
	}{
		{"riddle 1", fmt.Sprintf(`{"session_id":%q,"action":"answer_riddle","answer":"淡妆浓抹总相宜"}`, gs.ID)},
		{"riddle 2", fmt.Sprintf(`{"session_id":%q,"action":"answer_riddle","answer":"映日荷花别样红"}`, gs.ID)},
		{"select poet", fmt.Sprintf(`{"session_id":%q,"action":"select_poet","poet_id":"poet_sushi"}`, gs.ID)},
		{"find clue", fmt.Sprintf(`{"session_id":%q,"action":"send_message","message":"你写过饮湖上初晴后雨吗？"}`, gs.ID)},
		{"select theme", fmt.Sprintf(`{"session_id":%q,"action":"select_theme","theme_id":"theme_sunny"}`, gs.ID)},
		{"pick keyword", fmt.Sprintf(`{"session_id":%q,"action":"toggle_keyword","keyword":"荷花"}`, gs.ID)},
		{"pick emotion", fmt.Sprintf(`{"session_id":%q,"action":"toggle_emotion","emotion":"愉悦"}`, gs.ID)},
		{"compose", fmt.Sprintf(`{"session_id":%q,"action":"compose_draft"}`, gs.ID)},
		{"submit", fmt.Sprintf(`{"session_id":%q,"action":"submit_poem"}`, gs.ID)},
	}

	var last *QuestResponse
	for _, step := range steps {
		rr := postQuest(t, handler, step.body)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d. Response body: %s", step.name, rr.Code, rr.Body.String())
		}
		last = decodeQuest(t, rr)
	}

	if last.Poem == nil {
		t.Fatal("Expected a submitted poem")
	}
	if last.Poem.AIScore < 80 || last.Poem.AIScore > 99 {
		t.Errorf("Expected score in [80,99], got %d", last.Poem.AIScore)
	}

	q := last.Quest
	if !q.Completed() {
		t.Error("Expected quest to be completed")
	}
	if !q.Rewards.PoetryDoor || !q.Rewards.PoetCard || !q.Rewards.WestLakeBadge {
		t.Errorf("Expected all badge rewards, got %+v", q.Rewards)
	}
	if q.Rewards.PoetryValue != 100 {
		t.Errorf("Expected poetry value 100, got %d", q.Rewards.PoetryValue)
	}
	if q.Rewards.CulturePoints != 100 {
		t.Errorf("Expected culture points 100, got %d", q.Rewards.CulturePoints)
	}
}

func TestQuestHandler_StageGating(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewQuestHandler(store, testLogger())
	gs := seedSession(t, store)

	// Poet stage is locked before the riddles are solved.
	body := fmt.Sprintf(`{"session_id":%q,"action":"select_poet","poet_id":"poet_sushi"}`, gs.ID)
	rr := postQuest(t, handler, body)
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for locked stage, got %d. Response body: %s", rr.Code, rr.Body.String())
	}
}

func TestQuestHandler_Reset(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewQuestHandler(store, testLogger())
	gs := seedSession(t, store)

	// Make some progress, then reset.
	rr := postQuest(t, handler, fmt.Sprintf(`{"session_id":%q,"action":"answer_riddle","answer":"淡妆浓抹总相宜"}`, gs.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("setup failed: %d", rr.Code)
	}

	rr = postQuest(t, handler, fmt.Sprintf(`{"session_id":%q,"action":"reset"}`, gs.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	resp := decodeQuest(t, rr)
	if resp.Quest.Riddle.Progress != 0 {
		t.Errorf("Expected riddle progress reset to 0, got %d", resp.Quest.Riddle.Progress)
	}
	if resp.Quest.Poet.Status != quest.StatusLocked {
		t.Errorf("Expected poet stage re-locked, got %s", resp.Quest.Poet.Status)
	}
	if resp.Quest.Rewards.PoetryValue != 0 {
		t.Errorf("Expected rewards zeroed, got %d", resp.Quest.Rewards.PoetryValue)
	}
}

func TestQuestHandler_Errors(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewQuestHandler(store, testLogger())
	gs := seedSession(t, store)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing session", fmt.Sprintf(`{"session_id":%q,"action":"reset"}`, uuid.New()), http.StatusNotFound},
		{"empty answer", fmt.Sprintf(`{"session_id":%q,"action":"answer_riddle","answer":"  "}`, gs.ID), http.StatusBadRequest},
		{"unknown action", fmt.Sprintf(`{"session_id":%q,"action":"dance"}`, gs.ID), http.StatusBadRequest},
		{"no session id", `{"action":"reset"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postQuest(t, handler, tt.body)
			if rr.Code != tt.status {
				t.Errorf("Expected status %d, got %d. Response body: %s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}
}
