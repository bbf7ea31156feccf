package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rohityadav8366/service-provider-platform/internal/core/auth"
	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/response"
)

// Header names downstream services trust unconditionally. Only this filter
// may set them; client-supplied copies are stripped on every request.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserRole  = "X-User-Role"
	HeaderUserEmail = "X-User-Email"
)

// Perimeter is the trust boundary between clients and internal services: it
// validates the Bearer token purely cryptographically (no store lookup) and
// rewrites the request with the identity claims. isPublic exempts paths from
// the token requirement; identity headers are stripped there too.
func Perimeter(j *auth.JWTer, l *zap.Logger, isPublic func(r *http.Request) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Header.Del(HeaderUserID)
		c.Request.Header.Del(HeaderUserRole)
		c.Request.Header.Del(HeaderUserEmail)

		if isPublic != nil && isPublic(c.Request) {
			c.Next()
			return
		}

		ah := c.GetHeader("Authorization")
		if ah == "" {
			reject(c, "missing authorization header")
			return
		}
		if !strings.HasPrefix(ah, "Bearer ") {
			reject(c, "invalid authorization header")
			return
		}

		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			// no validation detail leaks past this message
			reject(c, "invalid or expired token")
			return
		}

		c.Request.Header.Set(HeaderUserID, strconv.FormatInt(claims.UserID, 10))
		c.Request.Header.Set(HeaderUserRole, claims.Role)
		c.Request.Header.Set(HeaderUserEmail, claims.Email)

		l.Debug("user authenticated",
			zap.Int64("user_id", claims.UserID),
			zap.String("role", claims.Role),
		)
		c.Next()
	}
}

func reject(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		response.Body{Success: false, Message: msg})
}
