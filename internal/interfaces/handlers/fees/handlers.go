package fees

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	dashsvc "equitie-backend/internal/application/dashboard"
	feesvc "equitie-backend/internal/application/fees"
	"equitie-backend/internal/pkg/export"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service   *feesvc.Service
	Dashboard *dashsvc.Service
	Now       func() time.Time
}

func (h *Handlers) today() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// GET /api/v1/fees
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Fees fetched successfully", list, fiber.Map{"count": len(list)})
}

// POST /api/v1/fees
func (h *Handlers) Save(c *fiber.Ctx) error {
	var in feesvc.Input
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := in.Validate(h.today()); !errs.Valid() {
		return response.Invalid(c, errs)
	}
	f, err := h.Service.Save(c.UserContext(), in)
	if errors.Is(err, feesvc.ErrInvalidFee) {
		return response.BadRequest(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, err.Error())
	}
	h.Dashboard.Invalidate(c.UserContext())
	return response.SuccessCreated(c, "Fee saved successfully", f, nil)
}

// DELETE /api/v1/fees/:fee_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	err := h.Service.Delete(c.UserContext(), c.Params("fee_id"))
	if errors.Is(err, feesvc.ErrFeeNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		log.Error().Err(err).Str("fee_id", c.Params("fee_id")).Msg("delete fee")
		return response.Internal(c, "")
	}
	h.Dashboard.Invalidate(c.UserContext())
	return response.Success(c, "Fee deleted successfully", nil, nil)
}

// GET /api/v1/fees/export
func (h *Handlers) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Service.Export(c.UserContext(), &buf); err != nil {
		log.Error().Err(err).Msg("export fees")
		return response.Internal(c, "Failed to export fees")
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="fees-%s.xlsx"`, h.today().Format("20060102")))
	return c.Send(buf.Bytes())
}

// GET /api/v1/fee-types
func (h *Handlers) FeeTypes(c *fiber.Ctx) error {
	types, err := h.Service.FeeTypes(c.UserContext())
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Fee types fetched successfully", types, nil)
}
