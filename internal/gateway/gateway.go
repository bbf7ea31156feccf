package gateway

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Rohityadav8366/service-provider-platform/internal/core/auth"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/config"
	mdw "github.com/Rohityadav8366/service-provider-platform/internal/transport/http/middleware"
	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/response"
)

type route struct {
	prefix string
	public map[string]struct{}
	proxy  *httputil.ReverseProxy
}

// Gateway forwards requests to backend services by path prefix. Every request
// passes the perimeter auth filter first; backends are expected to be
// unreachable except through here.
type Gateway struct {
	routes []route
	log    *zap.Logger
}

func New(l *zap.Logger, routes []config.Route) (*Gateway, error) {
	g := &Gateway{log: l}
	for _, rc := range routes {
		target, err := url.Parse(rc.Target)
		if err != nil {
			return nil, err
		}
		p := httputil.NewSingleHostReverseProxy(target)
		p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			l.Error("proxy error", zap.String("path", r.URL.Path), zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"message":"upstream unavailable"}`))
		}

		pub := make(map[string]struct{}, len(rc.Public))
		for _, path := range rc.Public {
			pub[path] = struct{}{}
		}
		g.routes = append(g.routes, route{prefix: rc.Prefix, public: pub, proxy: p})
	}
	return g, nil
}

func (g *Gateway) match(path string) *route {
	for i := range g.routes {
		if strings.HasPrefix(path, g.routes[i].prefix) {
			return &g.routes[i]
		}
	}
	return nil
}

// IsPublic reports whether the request may pass without a token. Unrouted
// paths count as public so they fall through to a plain 404 instead of a 401.
func (g *Gateway) IsPublic(r *http.Request) bool {
	rt := g.match(r.URL.Path)
	if rt == nil {
		return true
	}
	_, ok := rt.public[r.URL.Path]
	return ok
}

func (g *Gateway) handle(c *gin.Context) {
	rt := g.match(c.Request.URL.Path)
	if rt == nil {
		c.JSON(http.StatusNotFound, response.Body{Success: false, Message: "no route"})
		return
	}
	rt.proxy.ServeHTTP(c.Writer, c.Request)
}

// NewEngine builds the gateway's gin engine: hygiene middlewares, the
// perimeter filter, then prefix-routed proxying for everything else.
func NewEngine(l *zap.Logger, j *auth.JWTer, routes []config.Route) (*gin.Engine, error) {
	g, err := New(l, routes)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		mdw.RequestID(),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(15*time.Second),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.Perimeter(j, l, g.IsPublic),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(g.handle)

	return r, nil
}
