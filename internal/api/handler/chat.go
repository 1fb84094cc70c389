package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/vitrine-app/vitrine-server/internal/api/response"
	"github.com/vitrine-app/vitrine-server/internal/chat"
)

var validate = validator.New()

// ChatHandler handles chat widget endpoints
type ChatHandler struct {
	chatService *chat.Service
	store       *chat.Store
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service, store *chat.Store) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		store:       store,
	}
}

// MessageRequest is the inbound chat message payload
type MessageRequest struct {
	SubjectID       string `json:"subject_id" validate:"required"`
	DisplayName     string `json:"display_name"`
	Message         string `json:"message" validate:"required"`
	CampaignContext string `json:"campaign_context"`
	Channel         string `json:"channel"`
}

// Message handles an inbound chat message
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if req.DisplayName == "" {
		req.DisplayName = "un visiteur"
	}

	result := h.chatService.HandleMessage(r.Context(), chat.Request{
		SubjectID:       req.SubjectID,
		DisplayName:     req.DisplayName,
		Message:         req.Message,
		CampaignContext: req.CampaignContext,
		Channel:         req.Channel,
	})

	response.OK(w, result)
}

// History returns the subject's conversation window
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")
	if subjectID == "" {
		response.BadRequest(w, "missing subject ID")
		return
	}

	turns, _ := h.store.History(r.Context(), subjectID)
	response.OK(w, turns)
}

// ClearHistory removes the subject's conversation window
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")
	if subjectID == "" {
		response.BadRequest(w, "missing subject ID")
		return
	}

	if err := h.store.Clear(r.Context(), subjectID); err != nil {
		response.InternalError(w, "failed to clear conversation")
		return
	}

	response.NoContent(w)
}
