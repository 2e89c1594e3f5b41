package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/core"
	"go.uber.org/zap"
)

type DMHandler struct {
	core   *core.Service
	logger *zap.Logger
}

func NewDMHandler(core *core.Service, logger *zap.Logger) *DMHandler {
	return &DMHandler{core: core, logger: logger}
}

type createDMRequest struct {
	Token string `json:"token"`
	UIDs  []int  `json:"u_ids"`
}

type dmRequest struct {
	Token string `json:"token"`
	DmID  int    `json:"dm_id"`
}

type dmUserRequest struct {
	Token string `json:"token"`
	DmID  int    `json:"dm_id"`
	UID   int    `json:"u_id"`
}

// Create handles POST /dm/create/v1
func (h *DMHandler) Create(c *gin.Context) {
	var req createDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.core.DMCreate(req.Token, req.UIDs)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List handles GET /dm/list/v1?token
func (h *DMHandler) List(c *gin.Context) {
	dms, err := h.core.DMList(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dms": dms})
}

// Details handles GET /dm/details/v1?token&dm_id
func (h *DMHandler) Details(c *gin.Context) {
	details, err := h.core.DMDetails(c.Query("token"), intQuery(c, "dm_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Messages handles GET /dm/messages/v1?token&dm_id&start
func (h *DMHandler) Messages(c *gin.Context) {
	page, err := h.core.DMMessages(c.Query("token"), intQuery(c, "dm_id"), intQuery(c, "start"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Invite handles POST /dm/invite/v1
func (h *DMHandler) Invite(c *gin.Context) {
	var req dmUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.DMInvite(req.Token, req.DmID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Leave handles POST /dm/leave/v1
func (h *DMHandler) Leave(c *gin.Context) {
	var req dmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.DMLeave(req.Token, req.DmID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Remove handles DELETE /dm/remove/v1
func (h *DMHandler) Remove(c *gin.Context) {
	var req dmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.DMRemove(req.Token, req.DmID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
