package entities

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	entsvc "equitie-backend/internal/application/entities"
	"equitie-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupEntitiesTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Entity{}))
	h := &Handlers{Service: &entsvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/entities", h.List)
	app.Get("/entities/:entity_uuid", h.Get)
	app.Post("/entities", h.Save)
	app.Delete("/entities/:entity_uuid", h.Delete)
	return app
}

func TestSave_InvalidEmail(t *testing.T) {
	app := setupEntitiesTest(t)
	req := httptest.NewRequest("POST", "/entities", strings.NewReader(`{"entity_legal_name":"Acme","entity_type":"Partner","email1":"acme.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "Invalid email format")
}

func TestSaveAndGet(t *testing.T) {
	app := setupEntitiesTest(t)
	req := httptest.NewRequest("POST", "/entities", strings.NewReader(`{"entity_uuid":"ENT-9","entity_legal_name":" Acme Ltd ","entity_type":"Company Investor","email1":"ops@acme.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/entities/ENT-9", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Acme Ltd", out["data"].(map[string]interface{})["entity_legal_name"])

	resp, err = app.Test(httptest.NewRequest("DELETE", "/entities/ENT-9", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	resp, err = app.Test(httptest.NewRequest("GET", "/entities/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
