package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSubscriptionRouter() *gin.Engine {
	r := gin.Default()
	handler := NewHandler(nil, nil)
	r.PUT("/api/subscriptions", handler.PutSubscription)
	r.GET("/api/subscriptions", handler.GetSubscription)
	r.GET("/api/vapid_public_key", handler.GetVAPIDPublicKey)
	return r
}

func TestPutSubscription(t *testing.T) {
	router := setupSubscriptionRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"invalid request"`)
}

func TestGetSubscriptionRequiresEndpoint(t *testing.T) {
	router := setupSubscriptionRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"endpoint is required"}`, w.Body.String())
}

func TestGetVAPIDPublicKeyUnconfigured(t *testing.T) {
	router := setupSubscriptionRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/vapid_public_key", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRawQueryParam(t *testing.T) {
	v, ok := rawQueryParam("a=1&endpoint=https%3A%2F%2Fpush%2Fx", "endpoint")
	assert.True(t, ok)
	assert.Equal(t, "https%3A%2F%2Fpush%2Fx", v)

	_, ok = rawQueryParam("a=1", "endpoint")
	assert.False(t, ok)
}
