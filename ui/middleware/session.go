package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cookieName = "gbsaview_session"
	contextKey = "session_id"

	// Session cookies outlive the server-side TTL; the store recreates
	// expired entries with defaults on the next request.
	cookieMaxAge = 30 * 24 * 60 * 60
)

// EnsureSession assigns every request a session ID, minting a new cookie when
// none is present or the existing one does not parse.
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid uuid.UUID

		if raw, err := c.Cookie(cookieName); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				sid = parsed
			}
		}

		if sid == uuid.Nil {
			sid = uuid.New()
			log.Printf("[EnsureSession] New session %s", sid)
			c.SetCookie(cookieName, sid.String(), cookieMaxAge, "/", "", false, true)
		}

		c.Set(contextKey, sid)
		c.Next()
	}
}

// SessionID returns the session ID assigned by EnsureSession.
func SessionID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(contextKey); ok {
		if sid, ok := v.(uuid.UUID); ok {
			return sid
		}
	}
	return uuid.Nil
}
