package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/core"
	"go.uber.org/zap"
)

// OtherHandler serves search, notifications, admin, and the test-harness
// clear endpoint.
type OtherHandler struct {
	core   *core.Service
	logger *zap.Logger
}

func NewOtherHandler(core *core.Service, logger *zap.Logger) *OtherHandler {
	return &OtherHandler{core: core, logger: logger}
}

type adminRemoveRequest struct {
	Token string `json:"token"`
	UID   int    `json:"u_id"`
}

// Search handles GET /search/v2?token&query_str
func (h *OtherHandler) Search(c *gin.Context) {
	messages, err := h.core.Search(c.Query("token"), c.Query("query_str"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Notifications handles GET /notifications/get/v1?token
func (h *OtherHandler) Notifications(c *gin.Context) {
	notifications, err := h.core.Notifications(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// AdminUserRemove handles DELETE /admin/user/remove/v1
func (h *OtherHandler) AdminUserRemove(c *gin.Context) {
	var req adminRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.core.AdminUserRemove(req.Token, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// AdminPermissionChange handles GET /admin/userpermission/change/v1
// (a GET with query parameters, mirroring the original wire contract).
func (h *OtherHandler) AdminPermissionChange(c *gin.Context) {
	err := h.core.AdminPermissionChange(
		c.Query("token"),
		intQuery(c, "u_id"),
		intQuery(c, "permission_id"),
	)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Clear handles DELETE /clear/v1, the full state reset.
func (h *OtherHandler) Clear(c *gin.Context) {
	h.core.Clear()
	c.JSON(http.StatusOK, gin.H{})
}
