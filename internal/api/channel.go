package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/core"
	"go.uber.org/zap"
)

type ChannelHandler struct {
	core   *core.Service
	logger *zap.Logger
}

func NewChannelHandler(core *core.Service, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{core: core, logger: logger}
}

type createChannelRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

type channelRequest struct {
	Token     string `json:"token"`
	ChannelID int    `json:"channel_id"`
}

type channelUserRequest struct {
	Token     string `json:"token"`
	ChannelID int    `json:"channel_id"`
	UID       int    `json:"u_id"`
}

// Create handles POST /channels/create/v2
func (h *ChannelHandler) Create(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.core.ChannelsCreate(req.Token, req.Name, req.IsPublic)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel_id": id})
}

// List handles GET /channels/list/v2?token
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.core.ChannelsList(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

// ListAll handles GET /channels/listall/v2?token
func (h *ChannelHandler) ListAll(c *gin.Context) {
	channels, err := h.core.ChannelsListAll(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

// Details handles GET /channel/details/v2?token&channel_id
func (h *ChannelHandler) Details(c *gin.Context) {
	details, err := h.core.ChannelDetails(c.Query("token"), intQuery(c, "channel_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Messages handles GET /channel/messages/v2?token&channel_id&start
func (h *ChannelHandler) Messages(c *gin.Context) {
	page, err := h.core.ChannelMessages(c.Query("token"), intQuery(c, "channel_id"), intQuery(c, "start"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Join handles POST /channel/join/v2
func (h *ChannelHandler) Join(c *gin.Context) {
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.ChannelJoin(req.Token, req.ChannelID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Invite handles POST /channel/invite/v2
func (h *ChannelHandler) Invite(c *gin.Context) {
	var req channelUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.ChannelInvite(req.Token, req.ChannelID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Leave handles POST /channel/leave/v1
func (h *ChannelHandler) Leave(c *gin.Context) {
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.ChannelLeave(req.Token, req.ChannelID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// AddOwner handles POST /channel/addowner/v1
func (h *ChannelHandler) AddOwner(c *gin.Context) {
	var req channelUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.ChannelAddOwner(req.Token, req.ChannelID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// RemoveOwner handles POST /channel/removeowner/v1
func (h *ChannelHandler) RemoveOwner(c *gin.Context) {
	var req channelUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.ChannelRemoveOwner(req.Token, req.ChannelID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
