package handler

import (
	"github.com/gin-gonic/gin"
	questapp "github.com/sidequest/backend/internal/application/quest"
	"github.com/sidequest/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// ChatHandler serves per-quest chat: history, sending, read receipts,
// and unread counts
type ChatHandler struct {
	BaseHandler
	chat *questapp.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *questapp.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		chat:        chat,
	}
}

// ListMessages returns a quest's chat history, oldest first
// GET /quests/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.chat.ListMessages(c.Request.Context(), userID, questID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SendMessage appends a message to a quest's chat
// POST /quests/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req questapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.chat.SendMessage(c.Request.Context(), userID, questID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// MarkRead records that the caller has seen a message
// POST /messages/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	messageID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.chat.MarkRead(c.Request.Context(), userID, messageID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead marks the whole chat read for this device
// POST /quests/:id/read
func (h *ChatHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.chat.MarkAllRead(c.Request.Context(), userID, middleware.GetDeviceID(c), questID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Unread reports how many messages arrived since this device last read
// the chat
// GET /quests/:id/unread
func (h *ChatHandler) Unread(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.chat.UnreadCount(c.Request.Context(), userID, middleware.GetDeviceID(c), questID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
