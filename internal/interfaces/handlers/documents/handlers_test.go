package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	docsvc "equitie-backend/internal/application/documents"
	"equitie-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Upload(_ context.Context, bucket, path, _ string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[bucket+"/"+path] = b
	return nil
}

func (m *memStorage) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func (m *memStorage) CreateSignedUploadURL(_ context.Context, bucket, path string) (string, error) {
	return "https://cdn.test/upload/" + bucket + "/" + path + "?token=t", nil
}

func (m *memStorage) Remove(_ context.Context, bucket, path string) error {
	delete(m.objects, bucket+"/"+path)
	return nil
}

func setupDocumentsTest(t *testing.T) (*fiber.App, *memStorage) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Project{}, &domain.Entity{}, &domain.TransactionType{}, &domain.Transaction{}, &domain.Document{}))

	store := &memStorage{objects: map[string][]byte{}}
	now := time.UnixMilli(1700000000000)
	h := &Handlers{Service: &docsvc.Service{DB: db, Storage: store, Bucket: "documents", Now: func() time.Time { return now }}}
	app := fiber.New()
	app.Get("/documents", h.List)
	app.Post("/documents", h.Upload)
	app.Post("/documents/upload-url", h.UploadURL)
	app.Get("/documents/:document_id", h.Get)
	app.Delete("/documents/:document_id", h.Delete)
	return app, store
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode(t *testing.T, r io.Reader) map[string]interface{} {
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestUpload_StoresObjectAndMetadata(t *testing.T) {
	app, store := setupDocumentsTest(t)
	body, ct := multipartBody(t, map[string]string{"document_id": "DOC-1", "document_type": "kyc"}, "Passport.PDF", []byte("%PDF"))
	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	data := decode(t, resp.Body)["data"].(map[string]interface{})
	assert.Equal(t, "Passport.PDF", data["document_name"])
	assert.Equal(t, "KYC", data["document_type"])
	assert.Equal(t, "https://cdn.test/documents/1700000000000.pdf", data["document_url"])
	assert.Equal(t, []byte("%PDF"), store.objects["documents/1700000000000.pdf"])

	resp, err = app.Test(httptest.NewRequest("GET", "/documents/DOC-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestUpload_MissingFile(t *testing.T) {
	app, _ := setupDocumentsTest(t)
	body, ct := multipartBody(t, map[string]string{"document_type": "OTHER"}, "", nil)
	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	details := decode(t, resp.Body)["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "File is required", details["file"])
}

func TestUploadURL(t *testing.T) {
	app, _ := setupDocumentsTest(t)
	req := httptest.NewRequest("POST", "/documents/upload-url", strings.NewReader(`{"file_name":"deck.pptx"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	data := decode(t, resp.Body)["data"].(map[string]interface{})
	assert.Equal(t, "1700000000000.pptx", data["path"])
	assert.Contains(t, data["uploadUrl"], "token=t")

	req = httptest.NewRequest("POST", "/documents/upload-url", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDelete_NotFound(t *testing.T) {
	app, _ := setupDocumentsTest(t)
	resp, err := app.Test(httptest.NewRequest("DELETE", "/documents/DOC-X", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
