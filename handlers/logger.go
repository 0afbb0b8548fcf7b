package handlers

import (
	"flynext/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped logger set by middleware.RequestLogger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

func currentUserID(c *gin.Context) string {
	return c.GetString(utils.ContextUserID)
}

// fail answers with the status carried by err.
func fail(c *gin.Context, err error) {
	utils.RespondError(c, getLogger(c), err)
}
