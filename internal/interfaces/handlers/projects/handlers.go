package projects

import (
	"errors"

	dashsvc "equitie-backend/internal/application/dashboard"
	projsvc "equitie-backend/internal/application/projects"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service   *projsvc.Service
	Dashboard *dashsvc.Service
}

// GET /api/v1/projects
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Projects fetched successfully", list, fiber.Map{"count": len(list)})
}

// GET /api/v1/projects/:project_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	p, err := h.Service.Get(c.UserContext(), c.Params("project_id"))
	if errors.Is(err, projsvc.ErrProjectNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Project fetched successfully", p, nil)
}

// POST /api/v1/projects
func (h *Handlers) Save(c *fiber.Ctx) error {
	var in projsvc.Input
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := in.Validate(); !errs.Valid() {
		return response.Invalid(c, errs)
	}
	p, err := h.Service.Save(c.UserContext(), in)
	if err != nil {
		return response.Internal(c, err.Error())
	}
	h.Dashboard.Invalidate(c.UserContext())
	return response.SuccessCreated(c, "Project saved successfully", p, nil)
}

// DELETE /api/v1/projects/:project_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	err := h.Service.Delete(c.UserContext(), c.Params("project_id"))
	if errors.Is(err, projsvc.ErrProjectNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, err.Error())
	}
	h.Dashboard.Invalidate(c.UserContext())
	return response.Success(c, "Project deleted successfully", nil, nil)
}
