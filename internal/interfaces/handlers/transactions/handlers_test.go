package transactions

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	txsvc "equitie-backend/internal/application/transactions"
	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/export"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTxTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.TransactionType{}, &domain.FeeType{}, &domain.Project{}, &domain.Entity{},
		&domain.Transaction{}, &domain.Fee{}, &domain.Document{},
	))
	for _, name := range domain.DefaultTransactionTypes {
		require.NoError(t, db.Create(&domain.TransactionType{TransactionTypeName: name}).Error)
	}
	for _, name := range domain.DefaultFeeTypes {
		require.NoError(t, db.Create(&domain.FeeType{FeeTypeName: name}).Error)
	}

	h := &Handlers{
		Service:   &txsvc.Service{DB: db},
		Submitter: &txsvc.Submitter{Store: &txsvc.GormStore{DB: db}},
	}
	app := fiber.New()
	app.Get("/transaction-types", h.TransactionTypes)
	app.Get("/transactions", h.List)
	app.Get("/transactions/export", h.Export)
	app.Post("/transactions/price-per-unit", h.PricePerUnit)
	app.Get("/transactions/:transaction_id", h.Get)
	app.Post("/transactions", h.Submit)
	app.Delete("/transactions/:transaction_id", h.Delete)
	return app, db
}

func typeID(t *testing.T, db *gorm.DB, name string) string {
	var tt domain.TransactionType
	require.NoError(t, db.Where("transaction_type_name = ?", name).First(&tt).Error)
	return tt.ID.String()
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestPricePerUnit(t *testing.T) {
	app, _ := setupTxTest(t)
	code, out := doJSON(t, app, "POST", "/transactions/price-per-unit", `{"net_capital_commit":1000,"no_of_units":8}`)
	assert.Equal(t, 200, code)
	assert.Equal(t, "125", out["data"].(map[string]interface{})["price_per_unit_usd"])

	_, out = doJSON(t, app, "POST", "/transactions/price-per-unit", `{"net_capital_commit":1000,"no_of_units":0}`)
	assert.Equal(t, "0", out["data"].(map[string]interface{})["price_per_unit_usd"])
}

func TestSubmit_ValidationErrors(t *testing.T) {
	app, _ := setupTxTest(t)
	code, out := doJSON(t, app, "POST", "/transactions", `{"no_of_units":0}`)
	assert.Equal(t, 400, code)
	details := out["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "Transaction date is required", details["transaction_date"])
	assert.Equal(t, "Transaction type is required", details["transaction_type_id"])
	assert.Equal(t, "Number of units must be positive", details["no_of_units"])
}

func TestSubmit_PrimaryInvestmentCreatesFees(t *testing.T) {
	app, db := setupTxTest(t)
	body := `{
		"transaction_id": "TXN-100",
		"transaction_date": "2025-03-01",
		"transaction_type_id": "` + typeID(t, db, domain.ClassificationPrimaryInvestment) + `",
		"no_of_units": 1000,
		"net_capital_commit": "50000",
		"performance_fee_agreed": 20,
		"annual_management_fee": 2,
		"upfront_structuring_fee": 0,
		"admin_fee_fixed": 0
	}`
	code, out := doJSON(t, app, "POST", "/transactions", body)
	require.Equal(t, 201, code, out)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "done", data["state"])
	assert.Len(t, data["fees"], 2)
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "TXN-100", txn["transaction_id"])
	assert.Equal(t, "50", txn["price_per_unit_usd"])

	code, out = doJSON(t, app, "GET", "/transactions/TXN-100", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, domain.ClassificationPrimaryInvestment,
		out["data"].(map[string]interface{})["transaction_type"].(map[string]interface{})["transaction_type_name"])
}

func TestSubmit_BlankFeeInputsAreZero(t *testing.T) {
	app, db := setupTxTest(t)
	body := `{
		"transaction_date": "2025-03-02",
		"transaction_type_id": "` + typeID(t, db, domain.ClassificationSecondaryPurchase) + `",
		"no_of_units": "10",
		"net_capital_commit": "1000",
		"underlying_valuation": "",
		"performance_fee_agreed": "15",
		"annual_management_fee": "",
		"upfront_structuring_fee": "",
		"admin_fee_fixed": ""
	}`
	code, out := doJSON(t, app, "POST", "/transactions", body)
	require.Equal(t, 201, code, out)
	data := out["data"].(map[string]interface{})
	assert.Len(t, data["fees"], 1)
	assert.Nil(t, data["transaction"].(map[string]interface{})["underlying_valuation"])
}

func TestSubmit_FeeFailureReturnsGenericMessage(t *testing.T) {
	app, db := setupTxTest(t)
	require.NoError(t, db.Where("fee_type_name = ?", domain.FeeTypeAdmin).Delete(&domain.FeeType{}).Error)
	body := `{
		"transaction_id": "TXN-200",
		"transaction_date": "2025-03-01",
		"transaction_type_id": "` + typeID(t, db, domain.ClassificationSecondaryPurchase) + `",
		"no_of_units": 10,
		"net_capital_commit": 100,
		"admin_fee_fixed": 500
	}`
	code, out := doJSON(t, app, "POST", "/transactions", body)
	assert.Equal(t, 500, code)
	e := out["error"].(map[string]interface{})
	assert.Equal(t, "Failed to save transaction", e["message"])
	details := e["details"].(map[string]interface{})
	assert.Equal(t, "TXN-200", details["transaction_id"])
	assert.Equal(t, "classifying", details["failed_in"])

	code, _ = doJSON(t, app, "GET", "/transactions/TXN-200", "")
	assert.Equal(t, 200, code)
}

func TestListGetDelete(t *testing.T) {
	app, db := setupTxTest(t)
	body := `{"transaction_id":"TXN-300","transaction_date":"2025-01-01","transaction_type_id":"` +
		typeID(t, db, "Distribution") + `","no_of_units":1,"net_capital_commit":1}`
	code, _ := doJSON(t, app, "POST", "/transactions", body)
	require.Equal(t, 201, code)

	code, out := doJSON(t, app, "GET", "/transactions", "")
	assert.Equal(t, 200, code)
	assert.Len(t, out["data"], 1)
	assert.Equal(t, float64(1), out["metadata"].(map[string]interface{})["count"])

	code, _ = doJSON(t, app, "DELETE", "/transactions/TXN-300", "")
	assert.Equal(t, 200, code)
	code, out = doJSON(t, app, "GET", "/transactions/TXN-300", "")
	assert.Equal(t, 404, code)
	assert.Equal(t, "Transaction not found", out["error"].(map[string]interface{})["message"])
	code, _ = doJSON(t, app, "DELETE", "/transactions/TXN-300", "")
	assert.Equal(t, 404, code)
}

func TestTransactionTypes(t *testing.T) {
	app, _ := setupTxTest(t)
	code, out := doJSON(t, app, "GET", "/transaction-types", "")
	assert.Equal(t, 200, code)
	assert.Len(t, out["data"], len(domain.DefaultTransactionTypes))
}

func TestExport(t *testing.T) {
	app, _ := setupTxTest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/transactions/export", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "transactions-")
}
