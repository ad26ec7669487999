package auth

import (
	"equitie-backend/internal/middleware"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct{}

// Session GET /api/v1/auth/session reports who the request was resolved as.
// Anonymous callers get 200 with anonymous=true; no route requires a session.
// metadata.token_rejected tells a bad token apart from a missing one.
func (h *Handlers) Session(c *fiber.Ctx) error {
	s := middleware.GetSession(c)
	rejected := middleware.SessionRejected(c)
	msg := "Session resolved"
	switch {
	case rejected:
		msg = "Session token rejected"
	case s.Anonymous:
		msg = "No active session"
	}
	return response.Success(c, msg, s, fiber.Map{"token_rejected": rejected})
}
