package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// panicResponse mirrors the success/message/result envelope the handlers
// answer with, so a recovered panic looks like any other server error to
// the client.
type panicResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.FullPath()))

				c.AbortWithStatusJSON(http.StatusInternalServerError, panicResponse{
					Success: false,
					Message: "Internal server error",
					Result:  gin.H{},
				})
			}
		}()
		c.Next()
	}
}
