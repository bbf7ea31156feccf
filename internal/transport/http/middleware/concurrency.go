package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/response"
)

// ConcurrencyLimit bounds in-flight requests to protect the database and the
// bcrypt hot path.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c, 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				response.Body{Success: false, Message: "server busy"})
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
