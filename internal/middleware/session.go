package middleware

import (
	"net/http"
	"strings"

	"github.com/brandhub/core/internal/pkg/response"
	"github.com/brandhub/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
)

const (
	ContextKeySession   = "session"
	SessionHeader       = "X-Session-Token"
	SessionCookie       = "brandhub_session"
	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// Session resolves the caller's session token (header, bearer or cookie). A
// missing or invalid token gets a fresh session, returned in the
// X-Session-Token header and cookie.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractSessionToken(c); token != "" {
			if sess, err := m.Resolve(token); err == nil {
				c.Set(ContextKeySession, sess)
				c.Next()
				return
			}
		}

		token, sess, err := m.Issue()
		if err != nil {
			response.InternalError(c, err)
			return
		}
		c.Header(SessionHeader, token)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, sessionCookieMaxAge, "/", "", false, true)
		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// CurrentSession returns the session resolved by Session, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

func extractSessionToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(SessionHeader)); token != "" {
		return token
	}
	if token := NormalizeToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if raw, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(raw)
	}
	return ""
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
