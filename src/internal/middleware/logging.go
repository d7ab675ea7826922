package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger emits one structured line per request. Contextual
// fields travel explicitly; there is no global request state.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		routeName, _ := c.Get("route_name")

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"route":    routeName,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	}
}
