package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gufengmap/explore-engine/internal/services"
	"github.com/gufengmap/explore-engine/internal/storage"
	"github.com/gufengmap/explore-engine/pkg/state"
)

// SessionRequest is the body for session-scoped POST endpoints that take no
// other parameters.
type SessionRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

// EnvironmentHandler serves POST /v1/environment/refresh: fetch a fresh
// environment snapshot and replace the session's copy wholesale.
type EnvironmentHandler struct {
	storage storage.Storage
	env     *services.EnvironmentService
	logger  *slog.Logger
}

func NewEnvironmentHandler(storage storage.Storage, env *services.EnvironmentService, logger *slog.Logger) *EnvironmentHandler {
	return &EnvironmentHandler{
		storage: storage,
		env:     env,
		logger:  logger,
	}
}

func (h *EnvironmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gs, ok := loadSessionForPost(w, r, h.storage, h.logger)
	if !ok {
		return
	}

	now := time.Now().UTC()
	env, err := h.env.Fetch(r.Context(), now)
	if err != nil {
		h.logger.Error("Environment refresh failed", "session_id", gs.ID, "error", err)
		writeError(w, h.logger, http.StatusBadGateway, "Failed to fetch environment")
		return
	}

	gs.SetEnvironment(env)
	gs.UpdatedAt = now
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save session", "session_id", gs.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, env)
}

// TaskGenHandler serves POST /v1/task/generate: synthesize one limited-time
// task from the session's environment and attach it to the task board.
type TaskGenHandler struct {
	storage storage.Storage
	env     *services.EnvironmentService
	taskGen *services.TaskGenerator
	logger  *slog.Logger
}

func NewTaskGenHandler(storage storage.Storage, env *services.EnvironmentService, taskGen *services.TaskGenerator, logger *slog.Logger) *TaskGenHandler {
	return &TaskGenHandler{
		storage: storage,
		env:     env,
		taskGen: taskGen,
		logger:  logger,
	}
}

func (h *TaskGenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gs, ok := loadSessionForPost(w, r, h.storage, h.logger)
	if !ok {
		return
	}

	now := time.Now().UTC()

	// Generation needs environment context; refresh it if the session has
	// never fetched one.
	if gs.Environment == nil {
		env, err := h.env.Fetch(r.Context(), now)
		if err != nil {
			h.logger.Error("Environment fetch for task generation failed", "session_id", gs.ID, "error", err)
			writeError(w, h.logger, http.StatusBadGateway, "Failed to fetch environment")
			return
		}
		gs.SetEnvironment(env)
	}

	gen := h.taskGen.Generate(r.Context(), gs.Environment)
	task := gs.AddDynamicTask(gen, now)

	gs.UpdatedAt = now
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save session", "session_id", gs.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Info("Dynamic task generated", "session_id", gs.ID, "task_id", task.ID, "title", task.Title)
	writeJSON(w, h.logger, http.StatusCreated, task)
}

// loadSessionForPost decodes a SessionRequest and loads its session,
// writing the error reply itself when anything fails.
func loadSessionForPost(w http.ResponseWriter, r *http.Request, store storage.Storage, logger *slog.Logger) (*state.GameState, bool) {
	if r.Method != http.MethodPost {
		writeError(w, logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return nil, false
	}

	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if req.SessionID == uuid.Nil {
		writeError(w, logger, http.StatusBadRequest, "session_id is required")
		return nil, false
	}

	gs, err := store.LoadGameState(r.Context(), req.SessionID)
	if err != nil {
		logger.Error("Failed to load session", "session_id", req.SessionID, "error", err)
		writeError(w, logger, http.StatusInternalServerError, "Failed to load session")
		return nil, false
	}
	if gs == nil {
		writeError(w, logger, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return gs, true
}
