package transactions

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	dashsvc "equitie-backend/internal/application/dashboard"
	txsvc "equitie-backend/internal/application/transactions"
	"equitie-backend/internal/middleware"
	"equitie-backend/internal/pkg/export"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service   *txsvc.Service
	Submitter *txsvc.Submitter
	Dashboard *dashsvc.Service
}

// GET /api/v1/transactions
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Transactions fetched successfully", list, fiber.Map{"count": len(list)})
}

// GET /api/v1/transactions/:transaction_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	t, err := h.Service.Get(c.UserContext(), c.Params("transaction_id"))
	if errors.Is(err, txsvc.ErrTransactionNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Transaction fetched successfully", t, nil)
}

// POST /api/v1/transactions
func (h *Handlers) Submit(c *fiber.Ctx) error {
	var in txsvc.SubmissionInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := in.Validate(); !errs.Valid() {
		return response.Invalid(c, errs)
	}

	res, err := h.Submitter.Submit(c.UserContext(), in)
	if res != nil && res.Transaction != nil {
		h.Dashboard.Invalidate(c.UserContext())
	}
	if err != nil {
		return submissionError(c, res, err)
	}
	return response.SuccessCreated(c, "Transaction saved successfully", res, nil)
}

func submissionError(c *fiber.Ctx, res *txsvc.SubmissionResult, err error) error {
	msg := "Failed to save transaction"
	details := fiber.Map{}
	var se *txsvc.SubmissionError
	if errors.As(err, &se) {
		msg = se.UserMessage()
		details["failed_in"] = se.State
	}
	if res != nil {
		details["state"] = res.State
		if res.Transaction != nil {
			details["transaction_id"] = res.Transaction.TransactionID
		}
	}
	code := fiber.StatusInternalServerError
	if errors.Is(err, txsvc.ErrInvalidSubmission) {
		code = fiber.StatusBadRequest
	}
	log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("submit transaction")
	return response.Error(c, msg, code, details)
}

type priceRequest struct {
	NetCapitalCommit decimal.Decimal `json:"net_capital_commit"`
	NoOfUnits        decimal.Decimal `json:"no_of_units"`
}

// POST /api/v1/transactions/price-per-unit
func (h *Handlers) PricePerUnit(c *fiber.Ctx) error {
	var req priceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	price := txsvc.PricePerUnit(req.NetCapitalCommit, req.NoOfUnits)
	return response.Success(c, "Price per unit calculated", fiber.Map{"price_per_unit_usd": price}, nil)
}

// DELETE /api/v1/transactions/:transaction_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	err := h.Service.Delete(c.UserContext(), c.Params("transaction_id"))
	if errors.Is(err, txsvc.ErrTransactionNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		log.Error().Err(err).Str("transaction_id", c.Params("transaction_id")).Msg("delete transaction")
		return response.Internal(c, "")
	}
	h.Dashboard.Invalidate(c.UserContext())
	return response.Success(c, "Transaction deleted successfully", nil, nil)
}

// GET /api/v1/transactions/export
func (h *Handlers) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Service.Export(c.UserContext(), &buf); err != nil {
		log.Error().Err(err).Msg("export transactions")
		return response.Internal(c, "Failed to export transactions")
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="transactions-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}

// GET /api/v1/transaction-types
func (h *Handlers) TransactionTypes(c *fiber.Ctx) error {
	types, err := h.Service.TransactionTypes(c.UserContext())
	if err != nil {
		return response.Internal(c, "Failed to load form options. Please try again.")
	}
	return response.Success(c, "Transaction types fetched successfully", types, nil)
}
