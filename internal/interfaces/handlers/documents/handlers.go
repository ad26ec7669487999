package documents

import (
	"errors"
	"strings"

	docsvc "equitie-backend/internal/application/documents"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *docsvc.Service
}

// GET /api/v1/documents
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Documents fetched successfully", list, fiber.Map{"count": len(list)})
}

// POST /api/v1/documents (multipart: file + metadata fields)
func (h *Handlers) Upload(c *fiber.Ctx) error {
	var in docsvc.Input
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	errs := in.Validate()
	fh, err := c.FormFile("file")
	if err != nil {
		errs.Add("file", "File is required")
	}
	if !errs.Valid() {
		return response.Invalid(c, errs)
	}

	f, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Str("file", fh.Filename).Msg("open uploaded file")
		return response.BadRequest(c, "Could not read uploaded file")
	}
	defer f.Close()

	doc, err := h.Service.Upload(c.UserContext(), in, docsvc.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if errors.Is(err, docsvc.ErrFileRequired) {
		return response.Invalid(c, map[string]string{"file": "File is required"})
	}
	if err != nil {
		return response.Internal(c, "Failed to upload document: "+err.Error())
	}
	return response.SuccessCreated(c, "Document uploaded successfully", doc, nil)
}

type uploadURLRequest struct {
	FileName string `json:"file_name"`
}

// POST /api/v1/documents/upload-url
func (h *Handlers) UploadURL(c *fiber.Ctx) error {
	var req uploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.FileName) == "" {
		return response.Invalid(c, map[string]string{"file_name": "File name is required"})
	}
	ticket, err := h.Service.SignedUpload(c.UserContext(), req.FileName)
	if err != nil {
		return response.Internal(c, "Failed to create upload URL: "+err.Error())
	}
	return response.Success(c, "Upload URL created", ticket, nil)
}

// GET /api/v1/documents/:document_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	doc, err := h.Service.Get(c.UserContext(), c.Params("document_id"))
	if errors.Is(err, docsvc.ErrDocumentNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, "")
	}
	return response.Success(c, "Document fetched successfully", doc, nil)
}

// DELETE /api/v1/documents/:document_id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	err := h.Service.Delete(c.UserContext(), c.Params("document_id"))
	if errors.Is(err, docsvc.ErrDocumentNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Internal(c, err.Error())
	}
	return response.Success(c, "Document deleted successfully", nil, nil)
}
