package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dr-data/bolt-generated-invoice-app/internal/clock"
	"github.com/dr-data/bolt-generated-invoice-app/internal/config"
	invoicedomain "github.com/dr-data/bolt-generated-invoice-app/internal/invoice/domain"
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice/render"
	invoiceservice "github.com/dr-data/bolt-generated-invoice-app/internal/invoice/service"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&invoicedomain.InvoiceRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	svc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.Fixed{At: time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)},
		Renderer: render.NewRenderer(),
	})

	cfg := config.Config{
		Environment: "test",
		Export:      config.ExportConfig{MaxLogoBytes: 1 << 20},
	}
	engine := gin.New()
	srv := NewServer(ServerParam{
		Cfg:        cfg,
		Log:        zap.NewNop(),
		Engine:     engine,
		InvoiceSvc: svc,
	})
	srv.RegisterRoutes()
	return srv
}

func exportPayload() map[string]any {
	return map[string]any{
		"invoice": invoicedomain.InvoiceData{
			CompanyName:    "Acme Studio",
			CompanyAddress: "1 Main St",
			BillTo:         "Globex Corp",
			InvoiceNumber:  "INV-042",
			InvoiceDate:    invoicedomain.NewDate(2026, time.August, 1),
			PaymentTerms:   "Net 30",
			DueDate:        invoicedomain.NewDate(2026, time.August, 31),
			Items: []invoicedomain.LineItem{
				{Description: "Widget", Quantity: 2, Rate: 10},
			},
			Currency: invoicedomain.Currency{Code: "USD", Symbol: "$"},
		},
	}
}

func TestExportInvoiceJSON(t *testing.T) {
	srv := setupServer(t)

	body, _ := json.Marshal(exportPayload())
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/export", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=invoice_INV-042.pdf" {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF body")
	}
	if w.Header().Get("X-Invoice-Id") == "" {
		t.Fatalf("expected persisted record id header")
	}
}

func TestExportInvoiceValidationError(t *testing.T) {
	srv := setupServer(t)

	payload := exportPayload()
	inv := payload["invoice"].(invoicedomain.InvoiceData)
	inv.CompanyName = ""
	inv.InvoiceNumber = ""
	payload["invoice"] = inv

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/export", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Error  string                     `json:"error"`
		Fields []invoicedomain.FieldError `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "validation_failed" || len(resp.Fields) < 2 {
		t.Fatalf("expected per-field errors, got %+v", resp)
	}
}

func TestExportInvoiceMultipartWithLogo(t *testing.T) {
	srv := setupServer(t)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var logoBuf bytes.Buffer
	if err := png.Encode(&logoBuf, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}

	invJSON, _ := json.Marshal(exportPayload()["invoice"])
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("invoice", string(invJSON)); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("logo", "logo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(logoBuf.Bytes()); err != nil {
		t.Fatalf("write logo: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/export", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF body")
	}
}

func TestListInvoicesAfterExport(t *testing.T) {
	srv := setupServer(t)

	body, _ := json.Marshal(exportPayload())
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/export", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.engine.ServeHTTP(httptest.NewRecorder(), req)

	listReq := httptest.NewRequest(http.MethodGet, "/api/invoices?page=1&size=10", nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, listReq)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp invoicedomain.ListInvoicesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Invoices) != 1 {
		t.Fatalf("expected one stored invoice, got %+v", resp.PageInfo)
	}
	if resp.Invoices[0].InvoiceNumber != "INV-042" {
		t.Fatalf("unexpected record %+v", resp.Invoices[0])
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/987654", nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/invoices/nope", nil)
	w = httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestGetLabels(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/labels", nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var labels invoicedomain.LabelSet
	if err := json.Unmarshal(w.Body.Bytes(), &labels); err != nil {
		t.Fatalf("decode labels: %v", err)
	}
	if labels[invoicedomain.LabelTitle] != "INVOICE" {
		t.Fatalf("expected default title label, got %q", labels[invoicedomain.LabelTitle])
	}
}

func TestDeriveDueDate(t *testing.T) {
	srv := setupServer(t)

	body := `{"invoiceDate":"2026-08-01","paymentTerms":"Net 30"}`
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/due-date", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "2026-08-31") {
		t.Fatalf("expected derived due date, got %s", w.Body.String())
	}
}
