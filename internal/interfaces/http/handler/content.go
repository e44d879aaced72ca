package handler

import (
	"github.com/gin-gonic/gin"
	contentapp "github.com/sidequest/backend/internal/application/content"
	"go.uber.org/zap"
)

// ContentHandler serves generated daily content
type ContentHandler struct {
	BaseHandler
	content *contentapp.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(content *contentapp.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: NewBaseHandler(logger),
		content:     content,
	}
}

// DailyQuotes returns today's motivational quote list
// POST /content/daily-quotes
func (h *ContentHandler) DailyQuotes(c *gin.Context) {
	if _, ok := h.getUserID(c); !ok {
		return
	}

	resp, err := h.content.DailyQuotes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DailyReflection returns today's reflection question for a category
// POST /content/daily-reflection
func (h *ContentHandler) DailyReflection(c *gin.Context) {
	if _, ok := h.getUserID(c); !ok {
		return
	}

	var req contentapp.DailyReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.content.DailyReflection(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
