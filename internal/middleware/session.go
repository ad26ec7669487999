package middleware

import (
	"equitie-backend/internal/application/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	sessionLocal         = "session"
	sessionRejectedLocal = "session_rejected"
)

// Session resolves the caller from an optional Bearer token signed with
// jwtSecret. It never rejects a request: a missing or bad token yields the
// anonymous session.
func Session(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := auth.SessionFromHeader(jwtSecret, c.Get(fiber.HeaderAuthorization))
		switch {
		case err == nil:
		case auth.IsInvalidToken(err):
			c.Locals(sessionRejectedLocal, true)
			log.Debug().Err(err).Str("trace_id", GetTraceID(c)).Msg("session: token rejected, continuing anonymously")
		default:
			log.Warn().Err(err).Str("trace_id", GetTraceID(c)).Msg("session: token not verified, continuing anonymously")
		}
		c.Locals(sessionLocal, s)
		return c.Next()
	}
}

// GetSession returns the request's session, anonymous when none was resolved.
func GetSession(c *fiber.Ctx) *auth.Session {
	if s, ok := c.Locals(sessionLocal).(*auth.Session); ok && s != nil {
		return s
	}
	return auth.AnonymousSession()
}

// SessionRejected reports whether the request carried a token that failed verification.
func SessionRejected(c *fiber.Ctx) bool {
	rejected, _ := c.Locals(sessionRejectedLocal).(bool)
	return rejected
}
