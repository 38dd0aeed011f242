package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gufengmap/explore-engine/internal/storage"
	"github.com/gufengmap/explore-engine/pkg/state"
)

func postAction(t *testing.T, handler *ActionHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/action", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeAction(t *testing.T, rr *httptest.ResponseRecorder) *ActionResponse {
	t.Helper()
	var resp ActionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return &resp
}

func TestActionHandler_UnlockLocation(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	body := fmt.Sprintf(`{"session_id":%q,"action":"unlock_location","location_id":"hangzhou"}`, gs.ID)
	rr := postAction(t, handler, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeAction(t, rr)
	for _, loc := range resp.GameState.Locations {
		if loc.ID == "hangzhou" && !loc.Unlocked {
			t.Error("Expected hangzhou to be unlocked")
		}
	}

	// The mutation must be persisted.
	stored, _ := store.LoadGameState(context.Background(), gs.ID)
	for _, loc := range stored.Locations {
		if loc.ID == "hangzhou" && !loc.Unlocked {
			t.Error("Expected unlock to be persisted")
		}
	}
}

func TestActionHandler_UpdateTaskProgress(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	tests := []struct {
		progress       int
		expectProgress int
		expectStatus   state.TaskStatus
	}{
		{30, 30, state.TaskInProgress},
		{250, 100, state.TaskCompleted}, // clamped to max
		{-10, 0, state.TaskInProgress},  // clamped to zero
	}

	for _, tt := range tests {
		body := fmt.Sprintf(`{"session_id":%q,"action":"update_task_progress","task_id":"explore_throne_room","progress":%d}`, gs.ID, tt.progress)
		rr := postAction(t, handler, body)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
		}
		resp := decodeAction(t, rr)
		task := resp.GameState.FindTask("explore_throne_room")
		if task.Progress != tt.expectProgress {
			t.Errorf("progress %d: expected %d, got %d", tt.progress, tt.expectProgress, task.Progress)
		}
		if task.Status != tt.expectStatus {
			t.Errorf("progress %d: expected status %s, got %s", tt.progress, tt.expectStatus, task.Status)
		}
	}
}

func TestActionHandler_JoinEventFull(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	// Fill the event to capacity, then join once more.
	event := gs.FindEvent("ancient_discovery")
	event.Participants = event.MaxParticipants
	if err := store.SaveGameState(context.Background(), gs.ID, gs); err != nil {
		t.Fatal(err)
	}

	body := fmt.Sprintf(`{"session_id":%q,"action":"join_event","event_id":"ancient_discovery"}`, gs.ID)
	rr := postAction(t, handler, body)

	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for full event, got %d", rr.Code)
	}

	// Participant count must not have moved.
	stored, _ := store.LoadGameState(context.Background(), gs.ID)
	if got := stored.FindEvent("ancient_discovery").Participants; got != event.MaxParticipants {
		t.Errorf("Expected participants unchanged at %d, got %d", event.MaxParticipants, got)
	}
}

func TestActionHandler_JoinEvent(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	body := fmt.Sprintf(`{"session_id":%q,"action":"join_event","event_id":"imperial_ceremony"}`, gs.ID)
	rr := postAction(t, handler, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeAction(t, rr)
	if got := resp.GameState.FindEvent("imperial_ceremony").Participants; got != 24 {
		t.Errorf("Expected 24 participants, got %d", got)
	}
}

func TestActionHandler_MintNFT(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	// Environment context should flow into the collectible metadata.
	gs.SetEnvironment(&state.EnvironmentInfo{
		Weather:  &state.Weather{Weather: "晴"},
		Festival: "中秋节",
		Season:   "秋季",
	})
	if err := store.SaveGameState(context.Background(), gs.ID, gs); err != nil {
		t.Fatal(err)
	}

	body := fmt.Sprintf(`{"session_id":%q,"action":"mint_nft","location_id":"forbidden_city"}`, gs.ID)
	rr := postAction(t, handler, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeAction(t, rr)
	if resp.NFT == nil {
		t.Fatal("Expected minted NFT in response")
	}
	if resp.NFT.LocationID != "forbidden_city" {
		t.Errorf("Expected location forbidden_city, got %s", resp.NFT.LocationID)
	}
	if resp.NFT.Metadata.Weather != "晴" || resp.NFT.Metadata.Festival != "中秋节" {
		t.Errorf("Expected environment metadata on NFT, got %+v", resp.NFT.Metadata)
	}
	if !strings.Contains(resp.NFT.Name, "紫禁城") {
		t.Errorf("Expected NFT name to carry location name, got %s", resp.NFT.Name)
	}
	if len(resp.GameState.NFTs) != 1 {
		t.Errorf("Expected 1 NFT in session, got %d", len(resp.GameState.NFTs))
	}
}

func TestActionHandler_AddDynamicAchievement(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	body := fmt.Sprintf(`{"session_id":%q,"action":"add_dynamic_achievement","condition":{"friends_added":3}}`, gs.ID)
	rr := postAction(t, handler, body)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Response body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeAction(t, rr)
	if resp.Achievement == nil {
		t.Fatal("Expected achievement in response")
	}
	if resp.Achievement.Title != "广结良缘" {
		t.Errorf("Expected friendship achievement, got %s", resp.Achievement.Title)
	}
}

func TestActionHandler_StartFinishedLimitedTask(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	if err := gs.CompleteTask("prayer_ritual"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveGameState(context.Background(), gs.ID, gs); err != nil {
		t.Fatal(err)
	}

	body := fmt.Sprintf(`{"session_id":%q,"action":"start_limited_task","task_id":"prayer_ritual"}`, gs.ID)
	rr := postAction(t, handler, body)

	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for completed task, got %d", rr.Code)
	}
}

func TestActionHandler_Errors(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())
	gs := seedSession(t, store)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing session", fmt.Sprintf(`{"session_id":%q,"action":"unlock_location","location_id":"x"}`, uuid.New()), http.StatusNotFound},
		{"unknown location", fmt.Sprintf(`{"session_id":%q,"action":"unlock_location","location_id":"atlantis"}`, gs.ID), http.StatusNotFound},
		{"unknown action", fmt.Sprintf(`{"session_id":%q,"action":"fly"}`, gs.ID), http.StatusBadRequest},
		{"missing parameter", fmt.Sprintf(`{"session_id":%q,"action":"unlock_location"}`, gs.ID), http.StatusBadRequest},
		{"no session id", `{"action":"unlock_location","location_id":"x"}`, http.StatusBadRequest},
		{"malformed body", `{not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postAction(t, handler, tt.body)
			if rr.Code != tt.status {
				t.Errorf("Expected status %d, got %d. Response body: %s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestActionHandler_MethodNotAllowed(t *testing.T) {
	store := storage.NewMemoryStorage()
	handler := NewActionHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/action", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}
