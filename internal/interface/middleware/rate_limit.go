package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/khalilbouhlel1/threadly-api/pkg/response"
)

// KeyFunc derives the bucket key for a request.
type KeyFunc func(c *gin.Context) string

// clientIP prefers the address resolved by the RealIP middleware so windows
// bucket by the originating client even behind an untrusted proxy.
func clientIP(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func KeyByIPAndPath(c *gin.Context) string {
	return clientIP(c) + ":" + c.FullPath()
}

func KeyByUserID(c *gin.Context) string {
	if uid := c.GetString(CtxUserIDKey); uid != "" {
		return uid
	}
	return clientIP(c)
}

// rateScript increments the counter and sets the window expiry atomically.
var rateScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RateLimit applies a fixed-window counter in Redis. The middleware fails
// open: with no Redis client, or when Redis errors, requests pass through.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	if keyFn == nil {
		keyFn = KeyByIPAndPath
	}
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", keyFn(c))
		res, err := rateScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}

		current, _ := res[0].(int64)
		ttl, _ := res[1].(int64)

		if !applyWindow(c, max, current, ttl) {
			return
		}
		c.Next()
	}
}

// applyWindow sets the rate headers and rejects the request once the counter
// has passed max. Returns false when the request was aborted.
func applyWindow(c *gin.Context, max int, current, ttl int64) bool {
	remaining := int64(max) - current
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(max))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

	if current > int64(max) {
		if ttl > 0 {
			c.Header("Retry-After", strconv.FormatInt((ttl+999)/1000, 10))
		}
		response.AbortFail(c, http.StatusTooManyRequests, "too many requests, please try again later", nil)
		return false
	}
	return true
}
