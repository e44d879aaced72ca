package handler

import (
	"github.com/gin-gonic/gin"
	questapp "github.com/sidequest/backend/internal/application/quest"
	"github.com/sidequest/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// QuestHandler serves the quest board: posting, listing, detail,
// membership, and ending quests
type QuestHandler struct {
	BaseHandler
	quests     *questapp.QuestService
	membership *questapp.MembershipService
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(quests *questapp.QuestService, membership *questapp.MembershipService, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{
		BaseHandler: NewBaseHandler(logger),
		quests:      quests,
		membership:  membership,
	}
}

// Create posts a new quest owned by the caller
// POST /quests
func (h *QuestHandler) Create(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req questapp.CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.quests.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns active quests matching the optional filters
// GET /quests?category=food&date=2026-09-01&start_after=12:00&end_before=18:00
func (h *QuestHandler) List(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var filter questapp.QuestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.quests.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one quest with its participant roster
// GET /quests/:id
func (h *QuestHandler) Get(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.quests.GetDetail(c.Request.Context(), userID, questID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete ends a quest. Owner only.
// DELETE /quests/:id
func (h *QuestHandler) Delete(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.quests.Delete(c.Request.Context(), userID, questID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Join adds the caller to a quest's roster
// POST /quests/:id/join
func (h *QuestHandler) Join(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.membership.Join(c.Request.Context(), userID, questID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Leave removes the caller from a quest's roster. Owners cannot leave.
// POST /quests/:id/leave
func (h *QuestHandler) Leave(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.membership.Leave(c.Request.Context(), userID, middleware.GetDeviceID(c), questID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Participants returns a quest's roster, owner first
// GET /quests/:id/participants
func (h *QuestHandler) Participants(c *gin.Context) {
	if _, ok := h.getUserID(c); !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.membership.ListParticipants(c.Request.Context(), questID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
