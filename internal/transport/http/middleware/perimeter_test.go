package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rohityadav8366/service-provider-platform/internal/core/auth"
	mdw "github.com/Rohityadav8366/service-provider-platform/internal/transport/http/middleware"
)

func perimeterEngine(j *auth.JWTer, isPublic func(r *http.Request) bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mdw.Perimeter(j, zap.NewNop(), isPublic))
	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.Request.Header.Get(mdw.HeaderUserID),
			"role":   c.Request.Header.Get(mdw.HeaderUserRole),
			"email":  c.Request.Header.Get(mdw.HeaderUserEmail),
		})
	}
	r.GET("/api/bookings", echo)
	r.GET("/api/users/register", echo)
	return r
}

func publicRegister(r *http.Request) bool { return r.URL.Path == "/api/users/register" }

func TestPerimeterMissingHeader(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), TTL: time.Hour}
	r := perimeterEngine(j, publicRegister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestPerimeterMalformedScheme(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), TTL: time.Hour}
	r := perimeterEngine(j, publicRegister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization header")
}

func TestPerimeterInvalidToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), TTL: time.Hour}
	r := perimeterEngine(j, publicRegister)

	for _, tok := range []string{"garbage", "a.b.c"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		// one uniform message, no validation detail
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	}
}

func TestPerimeterExpiredToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), TTL: -time.Minute}
	tok, err := j.Issue(1, "a@b.c", "CUSTOMER")
	require.NoError(t, err)

	live := &auth.JWTer{Secret: []byte("s3cret"), TTL: time.Hour}
	r := perimeterEngine(live, publicRegister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestPerimeterInjectsAndOverridesHeaders(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), TTL: time.Hour}
	tok, err := j.Issue(42, "alice@example.com", "CUSTOMER")
	require.NoError(t, err)

	r := perimeterEngine(j, publicRegister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	// spoofing attempt: client supplies its own identity headers
	req.Header.Set(mdw.HeaderUserID, "1")
	req.Header.Set(mdw.HeaderUserRole, "ADMIN")
	req.Header.Set(mdw.HeaderUserEmail, "root@example.com")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"userId":"42"`)
	assert.Contains(t, body, `"role":"CUSTOMER"`)
	assert.Contains(t, body, `"email":"alice@example.com"`)
	assert.False(t, strings.Contains(body, "ADMIN"))
}

func TestPerimeterStripsHeadersOnPublicPaths(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), TTL: time.Hour}
	r := perimeterEngine(j, publicRegister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/register", nil)
	req.Header.Set(mdw.HeaderUserID, "1")
	req.Header.Set(mdw.HeaderUserRole, "ADMIN")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"userId":""`)
	assert.Contains(t, body, `"role":""`)
}
