package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/response"
)

func SimpleRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					response.Body{Success: false, Message: "an unexpected error occurred"})
			}
		}()
		c.Next()
	}
}
