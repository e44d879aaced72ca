package handler

import (
	"github.com/gin-gonic/gin"
	boardapp "github.com/sidequest/backend/internal/application/board"
	questapp "github.com/sidequest/backend/internal/application/quest"
	"github.com/sidequest/backend/internal/infrastructure/config"
	"github.com/sidequest/backend/internal/infrastructure/realtime"
	"github.com/sidequest/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// StreamHandler serves the per-quest websocket change feed. Each
// connection is backed by a board session focused on the quest's chat.
type StreamHandler struct {
	BaseHandler
	chat   *questapp.ChatService
	feed   *realtime.FeedBus
	camera boardapp.Camera
	cfg    config.RealtimeConfig
	logger *zap.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(chat *questapp.ChatService, feed *realtime.FeedBus, camera boardapp.Camera, cfg config.RealtimeConfig, logger *zap.Logger) *StreamHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamHandler{
		BaseHandler: NewBaseHandler(logger),
		chat:        chat,
		feed:        feed,
		camera:      camera,
		cfg:         cfg,
		logger:      logger,
	}
}

// Stream upgrades to a websocket and pumps message and read-receipt
// events for one quest until the client disconnects. Members only.
// Opening the stream opens the quest's chat, so everything unread is
// marked read and this device's watermark advances.
// GET /quests/:id/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	questID, ok := h.pathID(c)
	if !ok {
		return
	}

	// OpenChat gates on membership, marks the backlog read, and
	// subscribes before the upgrade so no event published during the
	// handshake is missed
	session := boardapp.NewSession(userID, middleware.GetDeviceID(c), h.chat, h.feed, h.camera)
	if err := session.OpenChat(c.Request.Context(), questID); err != nil {
		h.HandleError(c, err)
		return
	}

	conn, err := realtime.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		session.Close()
		h.logger.Warn("websocket upgrade failed",
			zap.String("quest_id", questID.String()),
			zap.Error(err))
		return
	}

	client := realtime.NewClient(conn, session.Subscriptions(), h.cfg.WriteTimeout, h.cfg.PingInterval, h.logger)
	client.Run()
	session.Close()
}
