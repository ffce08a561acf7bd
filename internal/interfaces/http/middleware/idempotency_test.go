package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/erp/ledger/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}
func (failingStore) IsProcessed(context.Context, string) (bool, error) { return false, nil }
func (failingStore) Release(context.Context, string) error           { return nil }
func (failingStore) Close() error                                      { return nil }

func newIdempotentRouter(cfg IdempotencyConfig, status *int, calls *int) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.POST("/api/v1/payments", Idempotency(cfg), func(c *gin.Context) {
		*calls++
		c.JSON(*status, gin.H{"success": *status < 300})
	})
	return r
}

func post(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplayRejected(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Close()
	status, calls := http.StatusCreated, 0
	r := newIdempotentRouter(IdempotencyConfig{Store: store, TTL: time.Hour}, &status, &calls)

	assert.Equal(t, http.StatusCreated, post(r, "pay-1").Code)
	w := post(r, "pay-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_DUPLICATE_REQUEST")
	assert.Equal(t, 1, calls)

	claimed, err := store.IsProcessed(context.Background(), "POST:/api/v1/payments:pay-1")
	require.NoError(t, err)
	assert.True(t, claimed)

	assert.Equal(t, http.StatusCreated, post(r, "pay-2").Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotency_FailureReleasesKey(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Close()
	status, calls := http.StatusBadRequest, 0
	r := newIdempotentRouter(IdempotencyConfig{Store: store}, &status, &calls)

	assert.Equal(t, http.StatusBadRequest, post(r, "pay-1").Code)
	status = http.StatusCreated
	assert.Equal(t, http.StatusCreated, post(r, "pay-1").Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotency_PassThrough(t *testing.T) {
	status, calls := http.StatusCreated, 0

	t.Run("no header", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(time.Minute)
		defer store.Close()
		r := newIdempotentRouter(IdempotencyConfig{Store: store}, &status, &calls)
		post(r, "")
		post(r, "")
		assert.Equal(t, 2, calls)
		assert.Equal(t, 0, store.Size())
	})

	t.Run("store down fails open", func(t *testing.T) {
		calls = 0
		r := newIdempotentRouter(IdempotencyConfig{Store: failingStore{}}, &status, &calls)
		assert.Equal(t, http.StatusCreated, post(r, "pay-1").Code)
		assert.Equal(t, http.StatusCreated, post(r, "pay-1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("oversized key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(time.Minute)
		defer store.Close()
		calls = 0
		r := newIdempotentRouter(IdempotencyConfig{Store: store}, &status, &calls)
		assert.Equal(t, http.StatusBadRequest, post(r, strings.Repeat("k", 300)).Code)
		assert.Equal(t, 0, calls)
	})
}
