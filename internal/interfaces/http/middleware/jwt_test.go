package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/ledger/internal/infrastructure/auth"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-0123456789ab"

func signedToken(t *testing.T, subject string, expires time.Time) string {
	t.Helper()
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(expires),
	}}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newJWTRouter() (*gin.Engine, *string) {
	var subject string
	r := gin.New()
	r.Use(RequestID(), JWTAuth(DefaultJWTConfig(auth.NewVerifier(config.JWTConfig{Secret: testSecret}))))
	r.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/accounts", func(c *gin.Context) {
		subject = logger.GetSubject(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r, &subject
}

func TestJWTAuth(t *testing.T) {
	r, subject := newJWTRouter()

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantErr  string
	}{
		{"health skipped", "/api/v1/health", "", http.StatusOK, ""},
		{"missing header", "/api/v1/accounts", "", http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"not bearer", "/api/v1/accounts", "Basic abc", http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"garbage token", "/api/v1/accounts", "Bearer abc.def.ghi", http.StatusUnauthorized, "ERR_TOKEN_INVALID"},
		{"expired", "/api/v1/accounts", "Bearer " + signedToken(t, "clerk", time.Now().Add(-time.Hour)), http.StatusUnauthorized, "ERR_TOKEN_EXPIRED"},
		{"valid", "/api/v1/accounts", "Bearer " + signedToken(t, "clerk", time.Now().Add(time.Hour)), http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Contains(t, w.Body.String(), tt.wantErr)
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
	assert.Equal(t, "clerk", *subject)
}
