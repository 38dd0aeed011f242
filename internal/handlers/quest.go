package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gufengmap/explore-engine/internal/storage"
	"github.com/gufengmap/explore-engine/pkg/quest"
)

// QuestRequest is the body for POST /v1/quest. Action selects the quest
// operation; the remaining fields carry its input.
type QuestRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Action    string    `json:"action"`

	Answer  string `json:"answer,omitempty"`
	PoetID  string `json:"poet_id,omitempty"`
	Message string `json:"message,omitempty"`
	ThemeID string `json:"theme_id,omitempty"`
	Keyword string `json:"keyword,omitempty"`
	Emotion string `json:"emotion,omitempty"`
	Content string `json:"content,omitempty"`
}

// QuestResponse carries the operation's result plus the full quest state
// after the operation.
type QuestResponse struct {
	Answer    *quest.AnswerResult `json:"answer,omitempty"`
	Intro     string              `json:"intro,omitempty"`
	PoetReply *quest.PoetReply    `json:"poet_reply,omitempty"`
	Draft     string              `json:"draft,omitempty"`
	Poem      *quest.UserPoem     `json:"poem,omitempty"`
	Quest     *quest.Task         `json:"quest"`
}

type QuestHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewQuestHandler(storage storage.Storage, logger *slog.Logger) *QuestHandler {
	return &QuestHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles POST /v1/quest: load the session, run one quest
// operation, save it back.
func (h *QuestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req QuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SessionID == uuid.Nil {
		writeError(w, h.logger, http.StatusBadRequest, "session_id is required")
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
	if gs.Quest == nil {
		gs.Quest = quest.NewTask(time.Now().UTC())
	}

	resp := &QuestResponse{}
	now := time.Now().UTC()

	if err := h.apply(gs.Quest, &req, resp, now); err != nil {
		h.writeQuestError(w, err)
		return
	}
	resp.Quest = gs.Quest

	gs.UpdatedAt = now
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save session", "session_id", gs.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Debug("Quest action applied", "session_id", gs.ID, "action", req.Action)
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *QuestHandler) apply(t *quest.Task, req *QuestRequest, resp *QuestResponse, now time.Time) error {
	switch req.Action {
	case "answer_riddle":
		result, err := t.AnswerRiddle(req.Answer, now)
		if err != nil {
			return err
		}
		resp.Answer = result
		return nil

	case "select_poet":
		intro, err := t.SelectPoet(req.PoetID)
		if err != nil {
			return err
		}
		resp.Intro = intro
		return nil

	case "send_message":
		reply, err := t.SendMessage(req.Message, now)
		if err != nil {
			return err
		}
		resp.PoetReply = reply
		return nil

	case "select_theme":
		return t.SelectTheme(req.ThemeID)

	case "toggle_keyword":
		return t.ToggleKeyword(req.Keyword)

	case "toggle_emotion":
		return t.ToggleEmotion(req.Emotion)

	case "compose_draft":
		draft, err := t.ComposeDraft()
		if err != nil {
			return err
		}
		resp.Draft = draft
		return nil

	case "submit_poem":
		content := req.Content
		if content == "" {
			content = t.Creation.Draft
		}
		poem, err := t.SubmitPoem(content, now)
		if err != nil {
			return err
		}
		resp.Poem = poem
		return nil

	case "reset":
		t.Reset(now)
		return nil

	default:
		return errUnknownMove
	}
}

func (h *QuestHandler) writeQuestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quest.ErrStageLocked), errors.Is(err, quest.ErrStageCompleted):
		writeError(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, quest.ErrUnknownPoet), errors.Is(err, quest.ErrUnknownTheme):
		writeError(w, h.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, errUnknownMove):
		writeError(w, h.logger, http.StatusBadRequest, "unknown quest action")
	default:
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
	}
}
