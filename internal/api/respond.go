// Package api maps the HTTP wire contract onto core operations. Handlers
// are thin: decode the payload or query string, call the core, translate
// the error kind. The token travels inside each request (JSON body for
// mutations, query string for reads), so identity resolution happens in
// the core per call rather than in middleware.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/errs"
	"go.uber.org/zap"
)

// writeError maps the two core error kinds to their status codes.
// Anything else is an internal fault: logged, and surfaced as a 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errs.IsInput(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"name":    "InputError",
			"message": err.Error(),
		})
	case errs.IsAccess(err):
		c.JSON(http.StatusForbidden, gin.H{
			"code":    http.StatusForbidden,
			"name":    "AccessError",
			"message": err.Error(),
		})
	default:
		logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"name":    "SystemError",
			"message": "internal error",
		})
	}
}

// intQuery parses a required integer query parameter. A missing or
// malformed value reads as an out-of-range id and surfaces as InputError
// from the core, so handlers fall through with -1 rather than erroring
// here.
func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return -1
	}
	return v
}
