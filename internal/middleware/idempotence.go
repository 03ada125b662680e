package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brandhub/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotenceHeader = "X-Idempotence"
	idempotenceTTL    = 60 * time.Second
)

// Idempotence rejects a repeated POST (same session, path and body) while the
// first one is in flight or for 60s after it succeeded. Uploads are large and
// slow, so double submits are common.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return idempotence(rdb, resolveIdempotenceKey)
}

// IdempotenceByHeader only guards requests carrying an X-Idempotence key.
// Identical bodies without one always go through, so a user can regenerate
// the same post as often as they like.
func IdempotenceByHeader(rdb *redis.Client) gin.HandlerFunc {
	return idempotence(rdb, func(c *gin.Context) (string, error) {
		return c.GetHeader(idempotenceHeader), nil
	})
}

func idempotence(rdb *redis.Client, resolveKey func(*gin.Context) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key, err := resolveKey(c)
		if err != nil || key == "" {
			c.Next()
			return
		}

		redisKey := fmt.Sprintf("brandhub:idempotence:%s", key)
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, redisKey).Result()
		if err == nil {
			msg := "the same request can only be sent once within 60 seconds of succeeding"
			if val == "0" {
				msg = "the same request is still being processed"
			}
			response.Conflict(c, msg)
			return
		}
		if !errors.Is(err, redis.Nil) {
			c.Next()
			return
		}

		if setErr := rdb.Set(ctx, redisKey, "0", idempotenceTTL).Err(); setErr != nil {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			rdb.Set(ctx, redisKey, "1", redis.KeepTTL)
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

// resolveIdempotenceKey prefers the explicit header, else hashes the request.
func resolveIdempotenceKey(c *gin.Context) (string, error) {
	if hdr := c.GetHeader(idempotenceHeader); hdr != "" {
		return hdr, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	sid := ""
	if sess := CurrentSession(c); sess != nil {
		sid = sess.ID
	}
	if len(body) == 0 && sid == "" {
		return "", nil
	}

	raw := c.Request.Method + "|" + c.Request.URL.String() + "|" + string(body) + "|" + sid + "|" + c.ClientIP()
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:]), nil
}
