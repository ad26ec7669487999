package dashboard

import (
	dashsvc "equitie-backend/internal/application/dashboard"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *dashsvc.Service
}

// GET /api/v1/dashboard
func (h *Handlers) Stats(c *fiber.Ctx) error {
	st, err := h.Service.Stats(c.UserContext())
	if err != nil {
		return response.Internal(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard fetched successfully", st, nil)
}
