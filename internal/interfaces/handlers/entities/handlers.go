package entities

import (
	"errors"

	dashsvc "equitie-backend/internal/application/dashboard"
	entsvc "equitie-backend/internal/application/entities"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service   *entsvc.Service
	Dashboard *dashsvc.Service
}

// GET /api/v1/entities
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Entities fetched successfully", list, fiber.Map{"count": len(list)})
}

// GET /api/v1/entities/:entity_uuid
func (h *Handlers) Get(c *fiber.Ctx) error {
	e, err := h.Service.Get(c.UserContext(), c.Params("entity_uuid"))
	if errors.Is(err, entsvc.ErrEntityNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Entity fetched successfully", e, nil)
}

// POST /api/v1/entities
func (h *Handlers) Save(c *fiber.Ctx) error {
	var in entsvc.Input
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := in.Validate(); !errs.Valid() {
		return response.Invalid(c, errs)
	}
	e, err := h.Service.Save(c.UserContext(), in)
	if err != nil {
		return response.Internal(c, err.Error())
	}
	h.Dashboard.Invalidate(c.UserContext())
	return response.SuccessCreated(c, "Entity saved successfully", e, nil)
}

// DELETE /api/v1/entities/:entity_uuid
func (h *Handlers) Delete(c *fiber.Ctx) error {
	err := h.Service.Delete(c.UserContext(), c.Params("entity_uuid"))
	if errors.Is(err, entsvc.ErrEntityNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, err.Error())
	}
	h.Dashboard.Invalidate(c.UserContext())
	return response.Success(c, "Entity deleted successfully", nil, nil)
}
