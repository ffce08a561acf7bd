package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, []string{"/api/v1", "/api"}, r.basePaths)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithBasePaths("/v2"))
	assert.Equal(t, []string{"/v2"}, r.basePaths)
}

func TestRouterSetup_MountsUnderEveryBasePath(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("ping", "/ping").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	NewRouter(engine).Register(group).Setup()

	for _, path := range []string{"/api/v1/ping", "/api/ping"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "pong", w.Body.String())
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterUse_AppliesToMountedGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Guarded", "yes")
		c.Next()
	})
	r.Register(NewDomainGroup("x", "/x").GET("", func(c *gin.Context) { c.Status(http.StatusOK) }))
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Equal(t, "yes", w.Header().Get("X-Guarded"))
}

func TestDomainGroup(t *testing.T) {
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method+" "+c.FullPath()) }
	var order []string
	group := NewDomainGroup("orders", "/orders").
		Use(func(c *gin.Context) { order = append(order, "group"); c.Next() }).
		GET("", ok).
		POST("", ok).
		PUT("/:id", ok).
		DELETE("/:id", ok)

	assert.Equal(t, "orders", group.Name())
	assert.Equal(t, "/orders", group.Prefix())
	assert.Len(t, group.routes, 4)

	engine := gin.New()
	group.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/orders", "GET /api/v1/orders"},
		{http.MethodPost, "/api/v1/orders", "POST /api/v1/orders"},
		{http.MethodPut, "/api/v1/orders/1", "PUT /api/v1/orders/:id"},
		{http.MethodDelete, "/api/v1/orders/1", "DELETE /api/v1/orders/:id"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tt.want, w.Body.String())
	}
	assert.Len(t, order, 4)
}
