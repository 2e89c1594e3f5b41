package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/core"
	"go.uber.org/zap"
)

type MessageHandler struct {
	core   *core.Service
	logger *zap.Logger
}

func NewMessageHandler(core *core.Service, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{core: core, logger: logger}
}

type sendRequest struct {
	Token     string `json:"token"`
	ChannelID int    `json:"channel_id"`
	Message   string `json:"message"`
}

type sendDMRequest struct {
	Token   string `json:"token"`
	DmID    int    `json:"dm_id"`
	Message string `json:"message"`
}

type editRequest struct {
	Token     string `json:"token"`
	MessageID int    `json:"message_id"`
	Message   string `json:"message"`
}

type messageRequest struct {
	Token     string `json:"token"`
	MessageID int    `json:"message_id"`
}

type shareRequest struct {
	Token       string `json:"token"`
	OgMessageID int    `json:"og_message_id"`
	Message     string `json:"message"`
	ChannelID   int    `json:"channel_id"`
	DmID        int    `json:"dm_id"`
}

type sendLaterRequest struct {
	Token     string `json:"token"`
	ChannelID int    `json:"channel_id"`
	Message   string `json:"message"`
	TimeSent  int64  `json:"time_sent"`
}

type sendLaterDMRequest struct {
	Token    string `json:"token"`
	DmID     int    `json:"dm_id"`
	Message  string `json:"message"`
	TimeSent int64  `json:"time_sent"`
}

type reactRequest struct {
	Token     string `json:"token"`
	MessageID int    `json:"message_id"`
	ReactID   int    `json:"react_id"`
}

// Send handles POST /message/send/v2
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.core.Send(req.Token, req.ChannelID, req.Message)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": id})
}

// SendDM handles POST /message/senddm/v1
func (h *MessageHandler) SendDM(c *gin.Context) {
	var req sendDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.core.SendDM(req.Token, req.DmID, req.Message)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": id})
}

// Edit handles PUT /message/edit/v2
func (h *MessageHandler) Edit(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.Edit(req.Token, req.MessageID, req.Message); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Remove handles DELETE /message/remove/v1
func (h *MessageHandler) Remove(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.Remove(req.Token, req.MessageID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Share handles POST /message/share/v1
func (h *MessageHandler) Share(c *gin.Context) {
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.core.Share(req.Token, req.OgMessageID, req.Message, req.ChannelID, req.DmID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shared_message_id": id})
}

// SendLater handles POST /message/sendlater/v1
func (h *MessageHandler) SendLater(c *gin.Context) {
	var req sendLaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.core.SendLater(req.Token, req.ChannelID, req.Message, req.TimeSent)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": id})
}

// SendLaterDM handles POST /message/sendlaterdm/v1
func (h *MessageHandler) SendLaterDM(c *gin.Context) {
	var req sendLaterDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.core.SendLaterDM(req.Token, req.DmID, req.Message, req.TimeSent)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": id})
}

// React handles POST /message/react/v1
func (h *MessageHandler) React(c *gin.Context) {
	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.React(req.Token, req.MessageID, req.ReactID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Unreact handles POST /message/unreact/v1
func (h *MessageHandler) Unreact(c *gin.Context) {
	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.Unreact(req.Token, req.MessageID, req.ReactID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Pin handles POST /message/pin/v1
func (h *MessageHandler) Pin(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.Pin(req.Token, req.MessageID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Unpin handles POST /message/unpin/v1
func (h *MessageHandler) Unpin(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.Unpin(req.Token, req.MessageID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
