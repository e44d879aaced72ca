package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sidequest/backend/internal/infrastructure/geocode"
	"github.com/sidequest/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// GeocodeHandler serves typed-text location suggestions
type GeocodeHandler struct {
	BaseHandler
	sequencer *geocode.Sequencer
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(sequencer *geocode.Sequencer, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		BaseHandler: NewBaseHandler(logger),
		sequencer:   sequencer,
	}
}

// autocompleteResponse carries suggestions plus whether they are the
// freshest result for the typing session
type autocompleteResponse struct {
	Suggestions []geocode.Suggestion `json:"suggestions"`
	Stale       bool                 `json:"stale"`
}

// Autocomplete returns suggestions for partially typed location text.
// A response superseded by a newer lookup from the same caller and
// device comes back empty and marked stale so the client discards it.
// GET /geocode/autocomplete?q=north+spine
func (h *GeocodeHandler) Autocomplete(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	// one typing session per (user, device)
	session := userID.String() + ":" + middleware.GetDeviceID(c)
	suggestions, fresh := h.sequencer.Autocomplete(c.Request.Context(), session, c.Query("q"))
	if !fresh {
		h.Success(c, autocompleteResponse{Suggestions: []geocode.Suggestion{}, Stale: true})
		return
	}
	h.Success(c, autocompleteResponse{Suggestions: suggestions})
}
