package handlers

import (
	"urbanset/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped logger set by RequestLogger, or the
// global logger when the middleware is not installed.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(utils.ContextLoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
