package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/internal/testutils"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(rl *RateLimiter, limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/activate", rl.Limit("activate", limit, window), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/activate", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLimit(t *testing.T) {
	client, mr := testutils.SetupTestRedis(t)
	r := newEngine(NewRateLimiter(client), 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1").Code, "request %d", i+1)
	}

	w := hit(r, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, response.TooManyRequests, body.Code)

	// other clients have their own window
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.2").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1").Code)
}

func TestLimit_PassThrough(t *testing.T) {
	r := newEngine(NewRateLimiter(nil), 1, time.Minute)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1").Code)
	}

	client, mr := testutils.SetupTestRedis(t)
	r = newEngine(NewRateLimiter(client), 1, time.Minute)
	mr.Close()
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1").Code)
}

func TestLimit_WindowExpiry(t *testing.T) {
	client, mr := testutils.SetupTestRedis(t)
	r := newEngine(NewRateLimiter(client), 3, time.Minute)
	k := key("activate", "10.0.0.3")

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.3").Code)
	assert.Equal(t, time.Minute, mr.TTL(k))

	// a counter left without expiry still gets a window instead of blocking forever
	require.NoError(t, mr.Set(k, "7"))
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.3").Code)
	assert.Equal(t, time.Minute, mr.TTL(k))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.3").Code)
}
