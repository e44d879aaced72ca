package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	boardapp "github.com/sidequest/backend/internal/application/board"
	"go.uber.org/zap"
)

// BoardHandler serves the live map projection of the quest board
type BoardHandler struct {
	BaseHandler
	markers *boardapp.MarkerService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(markers *boardapp.MarkerService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		BaseHandler: NewBaseHandler(logger),
		markers:     markers,
	}
}

// Markers returns map markers (or clusters, at low zoom) for the
// viewer's filtered board
// GET /board/markers?zoom=12&category=food&date=2026-09-01&start_after=12:00&end_before=14:00
func (h *BoardHandler) Markers(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var filter boardapp.FilterState
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	zoom := 0
	if raw := c.Query("zoom"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
		zoom = parsed
	}

	resp, err := h.markers.Markers(c.Request.Context(), userID, filter, zoom)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Camera returns the initial map viewport
// GET /board/camera
func (h *BoardHandler) Camera(c *gin.Context) {
	if _, ok := h.getUserID(c); !ok {
		return
	}
	h.Success(c, h.markers.DefaultCamera())
}
