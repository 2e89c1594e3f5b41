package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/core"
	"go.uber.org/zap"
)

type UserHandler struct {
	core   *core.Service
	logger *zap.Logger
}

func NewUserHandler(core *core.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{core: core, logger: logger}
}

type setNameRequest struct {
	Token     string `json:"token"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
}

type setEmailRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type setHandleRequest struct {
	Token  string `json:"token"`
	Handle string `json:"handle_str"`
}

// Profile handles GET /user/profile/v2?token&u_id
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.core.Profile(c.Query("token"), intQuery(c, "u_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// SetName handles PUT /user/profile/setname/v2
func (h *UserHandler) SetName(c *gin.Context) {
	var req setNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.SetName(req.Token, req.NameFirst, req.NameLast); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// SetEmail handles PUT /user/profile/setemail/v2
func (h *UserHandler) SetEmail(c *gin.Context) {
	var req setEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.SetEmail(req.Token, req.Email); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// SetHandle handles PUT /user/profile/sethandle/v1
func (h *UserHandler) SetHandle(c *gin.Context) {
	var req setHandleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.SetHandle(req.Token, req.Handle); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// All handles GET /users/all/v1?token
func (h *UserHandler) All(c *gin.Context) {
	users, err := h.core.UsersAll(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Stats handles GET /user/stats/v1?token
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.core.Stats(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_stats": stats})
}

// WorkspaceStats handles GET /users/stats/v1?token
func (h *UserHandler) WorkspaceStats(c *gin.Context) {
	stats, err := h.core.WorkspaceStats(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspace_stats": stats})
}
