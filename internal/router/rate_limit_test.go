package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/maisdocacau/storefront/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"username":" Gerente "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	assert.Equal(t, "gerente|1.2.3.4", key)

	body, err := io.ReadAll(c.Request.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Gerente", "request body should be restored after reading field")
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1, BlockSeconds: 300}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	}
}

func TestLoginRateLimitRule(t *testing.T) {
	rule := loginRateLimitRule("mdc", "wallet_login", config.LoginRateLimitConfig{
		WindowSeconds: 300,
		MaxAttempts:   5,
		BlockSeconds:  900,
	})
	assert.Equal(t, "mdc:rate:wallet_login", rule.Prefix)
	assert.Equal(t, 300, rule.WindowSeconds)
	assert.Equal(t, 5, rule.MaxRequests)
	assert.Equal(t, 900, rule.BlockSeconds)
	assert.Equal(t, "error.too_many_requests", rule.MessageKey)
	assert.Equal(t, []interface{}{300, 5, 900}, rule.scriptArgs())
}

func TestRateLimitScriptArgsClampNegativeBlock(t *testing.T) {
	rule := RateLimitRule{WindowSeconds: 60, MaxRequests: 3, BlockSeconds: -10}
	assert.Equal(t, []interface{}{60, 3, 0}, rule.scriptArgs())
}

// newRedisTestClient 需要设置 TEST_REDIS_ADDR，否则跳过
func newRedisTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("skip redis rate limit test: TEST_REDIS_ADDR is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newRateLimitedEngine(client *redis.Client, rule RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/wallet/complete", RateLimitMiddleware(client, rule, KeyByIP), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	return r
}

func postWalletComplete(r *gin.Engine) string {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/wallet/complete", nil)
	req.RemoteAddr = "10.0.0.7:4000"
	r.ServeHTTP(w, req)
	return w.Body.String()
}

func TestRateLimitBlockWindowOutlastsWindow(t *testing.T) {
	client := newRedisTestClient(t)
	ctx := context.Background()
	prefix := "mdc-test:rate:" + time.Now().Format("150405.000000")
	key := prefix + ":10.0.0.7"
	t.Cleanup(func() { _ = client.Del(ctx, key).Err() })

	r := newRateLimitedEngine(client, RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: 1,
		MaxRequests:   2,
		BlockSeconds:  30,
	})

	assert.Contains(t, postWalletComplete(r), `"status_code":0`)
	assert.Contains(t, postWalletComplete(r), `"status_code":0`)
	assert.Contains(t, postWalletComplete(r), `"status_code":429`)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 5*time.Second)

	time.Sleep(1500 * time.Millisecond)
	assert.Contains(t, postWalletComplete(r), `"status_code":429`)
	ttl, err = client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 5*time.Second, "later requests must not shorten the block")
}

func TestRateLimitWithoutBlockWaitsForWindow(t *testing.T) {
	client := newRedisTestClient(t)
	ctx := context.Background()
	prefix := "mdc-test:rate-noblock:" + time.Now().Format("150405.000000")
	key := prefix + ":10.0.0.7"
	t.Cleanup(func() { _ = client.Del(ctx, key).Err() })

	r := newRateLimitedEngine(client, RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: 1,
		MaxRequests:   1,
	})

	assert.Contains(t, postWalletComplete(r), `"status_code":0`)
	assert.Contains(t, postWalletComplete(r), `"status_code":429`)

	time.Sleep(1500 * time.Millisecond)
	assert.Contains(t, postWalletComplete(r), `"status_code":0`)
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
