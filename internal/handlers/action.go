package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gufengmap/explore-engine/internal/storage"
	"github.com/gufengmap/explore-engine/pkg/state"
)

// ActionRequest is the body for POST /v1/action. Action selects the
// mutation; the remaining fields carry its parameters and only the ones the
// action needs are read.
type ActionRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Action    string    `json:"action"`

	LocationID    string                 `json:"location_id,omitempty"`
	TaskID        string                 `json:"task_id,omitempty"`
	Progress      *int                   `json:"progress,omitempty"`
	AchievementID string                 `json:"achievement_id,omitempty"`
	EventID       string                 `json:"event_id,omitempty"`
	Friend        *state.Friend          `json:"friend,omitempty"`
	Settings      *state.SettingsPatch   `json:"settings,omitempty"`
	Time          *time.Time             `json:"time,omitempty"`
	Metadata      *state.NFTMetadata     `json:"metadata,omitempty"`
	Condition     *state.UnlockCondition `json:"condition,omitempty"`
}

// ActionResponse returns the full session after the mutation, plus the
// created entity for actions that mint one.
type ActionResponse struct {
	GameState   *state.GameState          `json:"game_state"`
	NFT         *state.NFT                `json:"nft,omitempty"`
	Achievement *state.DynamicAchievement `json:"achievement,omitempty"`
}

type ActionHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewActionHandler(storage storage.Storage, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles POST /v1/action: load the session, apply one mutation,
// save it back.
func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SessionID == uuid.Nil {
		writeError(w, h.logger, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Action == "" {
		writeError(w, h.logger, http.StatusBadRequest, "action is required")
		return
	}

	gs, err := h.storage.LoadGameState(r.Context(), req.SessionID)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", req.SessionID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if gs == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}

	resp := &ActionResponse{GameState: gs}
	now := time.Now().UTC()

	if err := h.apply(gs, &req, resp, now); err != nil {
		h.writeActionError(w, req.Action, err)
		return
	}

	gs.UpdatedAt = now
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save session", "session_id", gs.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Debug("Action applied", "session_id", gs.ID, "action", req.Action)
	writeJSON(w, h.logger, http.StatusOK, resp)
}

var (
	errMissingParam = errors.New("missing parameter")
	errEventFull    = errors.New("event is full")
	errTaskFinished = errors.New("task is already completed or expired")
	errUnknownMove  = errors.New("unknown action")
)

func (h *ActionHandler) apply(gs *state.GameState, req *ActionRequest, resp *ActionResponse, now time.Time) error {
	switch req.Action {
	case "unlock_location":
		if req.LocationID == "" {
			return errMissingParam
		}
		return gs.UnlockLocation(req.LocationID)

	case "update_task_progress":
		if req.TaskID == "" || req.Progress == nil {
			return errMissingParam
		}
		return gs.UpdateTaskProgress(req.TaskID, *req.Progress)

	case "complete_task":
		if req.TaskID == "" {
			return errMissingParam
		}
		return gs.CompleteTask(req.TaskID)

	case "complete_achievement":
		if req.AchievementID == "" {
			return errMissingParam
		}
		return gs.CompleteAchievement(req.AchievementID)

	case "join_event":
		if req.EventID == "" {
			return errMissingParam
		}
		event := gs.FindEvent(req.EventID)
		if event == nil {
			return state.ErrNotFound
		}
		if event.Full() {
			return errEventFull
		}
		return gs.JoinEvent(req.EventID)

	case "add_friend":
		if req.Friend == nil {
			return errMissingParam
		}
		gs.AddFriend(*req.Friend)
		return nil

	case "update_settings":
		if req.Settings == nil {
			return errMissingParam
		}
		gs.UpdateSettings(*req.Settings)
		return nil

	case "update_time":
		if req.Time == nil {
			return errMissingParam
		}
		gs.UpdateTime(*req.Time)
		return nil

	case "start_limited_task":
		if req.TaskID == "" {
			return errMissingParam
		}
		if task := gs.FindTask(req.TaskID); task != nil &&
			(task.Status == state.TaskCompleted || task.Status == state.TaskExpired) {
			return errTaskFinished
		}
		return gs.StartLimitedTimeTask(req.TaskID, now)

	case "mint_nft":
		if req.LocationID == "" {
			return errMissingParam
		}
		meta := state.NFTMetadata{}
		if req.Metadata != nil {
			meta = *req.Metadata
		}
		if gs.Environment != nil {
			if meta.Weather == "" && gs.Environment.Weather != nil {
				meta.Weather = gs.Environment.Weather.Weather
			}
			if meta.Festival == "" {
				meta.Festival = gs.Environment.Festival
			}
		}
		nft, err := gs.MintNFT(req.LocationID, meta, now)
		if err != nil {
			return err
		}
		resp.NFT = nft
		return nil

	case "add_dynamic_achievement":
		if req.Condition == nil {
			return errMissingParam
		}
		resp.Achievement = gs.AddDynamicAchievement(*req.Condition, now)
		return nil

	default:
		return errUnknownMove
	}
}

func (h *ActionHandler) writeActionError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, state.ErrNotFound):
		writeError(w, h.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, errEventFull), errors.Is(err, errTaskFinished):
		writeError(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, errMissingParam):
		writeError(w, h.logger, http.StatusBadRequest, "missing required parameter for action "+action)
	case errors.Is(err, errUnknownMove):
		writeError(w, h.logger, http.StatusBadRequest, "unknown action "+action)
	default:
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
	}
}
