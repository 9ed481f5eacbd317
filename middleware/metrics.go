package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	utils "github.com/isaacrobert33/outreach-logistics/utils"
)

// Metrics counts every served request by method, route template and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		utils.RequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
