package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/core"
	"go.uber.org/zap"
)

type StandupHandler struct {
	core   *core.Service
	logger *zap.Logger
}

func NewStandupHandler(core *core.Service, logger *zap.Logger) *StandupHandler {
	return &StandupHandler{core: core, logger: logger}
}

type standupStartRequest struct {
	Token     string `json:"token"`
	ChannelID int    `json:"channel_id"`
	Length    int    `json:"length"`
}

type standupSendRequest struct {
	Token     string `json:"token"`
	ChannelID int    `json:"channel_id"`
	Message   string `json:"message"`
}

// Start handles POST /standup/start/v1
func (h *StandupHandler) Start(c *gin.Context) {
	var req standupStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	finish, err := h.core.StandupStart(req.Token, req.ChannelID, req.Length)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_finish": finish})
}

// Active handles GET /standup/active/v1?token&channel_id
func (h *StandupHandler) Active(c *gin.Context) {
	result, err := h.core.StandupActive(c.Query("token"), intQuery(c, "channel_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Send handles POST /standup/send/v1
func (h *StandupHandler) Send(c *gin.Context) {
	var req standupSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.StandupSend(req.Token, req.ChannelID, req.Message); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
