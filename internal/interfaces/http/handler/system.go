package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidequest/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// DatabaseChecker reports database reachability and pool state
type DatabaseChecker interface {
	Ping() error
	Stats() (persistence.PoolStats, error)
}

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db        DatabaseChecker
	startedAt time.Time
	version   string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(version string, db DatabaseChecker, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
		startedAt:   time.Now(),
		version:     version,
	}
}

// Health reports service liveness
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready reports whether the service can serve traffic, checking the
// database connection
// GET /ready
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}

	if err := h.db.Ping(); err != nil {
		h.logger.Error("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	body := gin.H{"status": "ready"}
	if stats, err := h.db.Stats(); err == nil {
		body["database"] = stats
	}
	c.JSON(http.StatusOK, body)
}
