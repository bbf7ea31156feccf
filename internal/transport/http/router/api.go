package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/handler"
	mdw "github.com/Rohityadav8366/service-provider-platform/internal/transport/http/middleware"
)

// NewAPIEngine wires the user-service HTTP surface. The service runs behind
// the gateway and trusts the X-User-* headers injected there; it does not
// re-validate tokens itself.
func NewAPIEngine(l *zap.Logger, userH *handler.UserHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	userH.Mount(api)

	return r
}
