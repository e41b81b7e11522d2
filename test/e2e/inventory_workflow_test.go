//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sntracker/backend/internal/adapters/db"
	redis_a "github.com/sntracker/backend/internal/adapters/redis_adapter"
	"github.com/sntracker/backend/internal/core/services"
	"github.com/sntracker/backend/internal/handlers"
	"github.com/sntracker/backend/internal/handlers/middleware"
	"github.com/sntracker/backend/test/helpers"
)

type InventoryE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *InventoryE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *InventoryE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *InventoryE2ESuite) startTestServer() *httptest.Server {
	cfg := helpers.LoadTestConfig()
	slogger := helpers.TestLogger()

	cache := redis_a.NewCache(s.testRedis.Client, cfg.Redis.TTL, slogger)
	invalidator := redis_a.NewInvalidator(cache, slogger)

	stockRepo := db.NewStockRepository(s.testDB.Database, cfg.Inventory.WipePageSize, slogger)
	ledgerRepo := db.NewLedgerRepository(s.testDB.Database, cfg.Inventory.WipePageSize, slogger)
	importLogRepo := db.NewImportLogRepository(s.testDB.Database, cfg.Inventory.WipePageSize, slogger)

	ingestService := services.NewIngestService(stockRepo, importLogRepo, invalidator, cfg.Inventory.ImportChunkSize, slogger)
	checkoutService := services.NewCheckoutService(ledgerRepo, invalidator, slogger)
	maintenanceService := services.NewMaintenanceService(stockRepo, invalidator, slogger)
	adminService := services.NewAdminService(stockRepo, ledgerRepo, importLogRepo, invalidator, slogger)
	readService := services.NewInventoryService(stockRepo, ledgerRepo, importLogRepo, slogger)

	inventoryHandler := handlers.NewInventoryHandler(readService, maintenanceService, cache, slogger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, slogger)
	ingestHandler := handlers.NewIngestHandler(ingestService, slogger, int64(cfg.Inventory.ImportMaxSizeMB)*1024*1024)
	historyHandler := handlers.NewHistoryHandler(readService, cache, cfg.Inventory.ImportLogDisplay, slogger)
	adminHandler := handlers.NewAdminHandler(adminService, slogger)
	dashboardHandler := handlers.NewDashboardHandler(readService, cache, slogger)

	auth := middleware.BasicAuth(cfg.Security, slogger)
	authed := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	adminOnly := middleware.RequireRole(middleware.RoleAdmin)
	adminAuthed := func(h http.HandlerFunc) http.Handler {
		return auth(adminOnly(h))
	}
	pin := middleware.RequireAdminPIN(cfg.Security, slogger)
	pinAuthed := func(h http.HandlerFunc) http.Handler {
		return auth(adminOnly(pin(h)))
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/inventory", authed(inventoryHandler.ScanInventory))
	mux.Handle("GET /api/v1/inventory/{serial}", authed(inventoryHandler.GetItem))
	mux.Handle("PATCH /api/v1/inventory/{serial}/price", pinAuthed(inventoryHandler.UpdatePrice))
	mux.Handle("DELETE /api/v1/inventory/{serial}", pinAuthed(inventoryHandler.DeleteItem))
	mux.Handle("POST /api/v1/inventory/manual", adminAuthed(ingestHandler.IngestManual))
	mux.Handle("POST /api/v1/inventory/import", adminAuthed(ingestHandler.IngestSpreadsheet))
	mux.Handle("POST /api/v1/checkout", authed(checkoutHandler.Checkout))
	mux.Handle("GET /api/v1/transactions", authed(historyHandler.ListTransactions))
	mux.Handle("GET /api/v1/import-logs", authed(historyHandler.ListImportLogs))
	mux.Handle("GET /api/v1/dashboard/stock", authed(dashboardHandler.GetStockRecap))
	mux.Handle("GET /api/v1/dashboard/sales", authed(dashboardHandler.GetSalesRecap))

	mux.Handle("DELETE /api/v1/admin/collections/{name}",
		pinAuthed(adminHandler.WipeCollection))

	var handler http.Handler = mux
	handler = middleware.Recovery(slogger)(handler)
	handler = middleware.RequestID(handler)

	return httptest.NewServer(handler)
}

func (s *InventoryE2ESuite) request(method, path string, body interface{}, opts ...func(*http.Request)) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	s.Require().NoError(err)
	req.SetBasicAuth("kasir", "kasir123")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func asAdmin(req *http.Request) {
	req.SetBasicAuth("admin", "admin123")
	req.Header.Set("X-Admin-PIN", "123456")
}

func (s *InventoryE2ESuite) decode(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var body map[string]interface{}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (s *InventoryE2ESuite) TestCompleteInventoryWorkflow() {
	// 1. Ingest stock manually
	resp := s.request("POST", "/inventory/manual", map[string]interface{}{
		"brand":          "Acme",
		"sku":            "X100-BLK",
		"price":          150000,
		"serial_numbers": "E2E-SN-001\nE2E-SN-002\nE2E-SN-003",
	}, asAdmin)
	s.Equal(http.StatusCreated, resp.StatusCode)
	body := s.decode(resp)
	s.Equal(float64(3), body["count"])

	// 2. Scan shows three Ready units
	resp = s.request("GET", "/inventory?status=Ready", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	body = s.decode(resp)
	s.Equal(float64(3), body["count"])

	// 3. Fetch one unit by serial
	resp = s.request("GET", "/inventory/E2E-SN-001", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	body = s.decode(resp)
	s.Equal("E2E-SN-001", body["serial_number"])
	s.Equal("Ready", body["status"])

	// 4. Checkout two of them
	resp = s.request("POST", "/checkout", map[string]interface{}{
		"lines": []map[string]interface{}{
			{"serial_number": "E2E-SN-001", "brand": "Acme", "sku": "X100-BLK", "price": 150000},
			{"serial_number": "E2E-SN-002", "brand": "Acme", "sku": "X100-BLK", "price": 150000},
		},
	})
	s.Equal(http.StatusCreated, resp.StatusCode)
	body = s.decode(resp)
	s.Equal(float64(300000), body["total_bill"])
	s.NotEmpty(body["transaction_id"])

	// 5. The same serial cannot be sold twice
	resp = s.request("POST", "/checkout", map[string]interface{}{
		"lines": []map[string]interface{}{
			{"serial_number": "E2E-SN-001", "brand": "Acme", "sku": "X100-BLK", "price": 150000},
		},
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	body = s.decode(resp)
	s.Contains(body["stale_serials"], "E2E-SN-001")

	// 6. Ledger records the sale
	resp = s.request("GET", "/transactions", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	body = s.decode(resp)
	s.Equal(float64(1), body["count"])

	// 7. Ingestion was audited
	resp = s.request("GET", "/import-logs", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	body = s.decode(resp)
	s.Equal(float64(1), body["count"])

	// 8. Dashboard sees one remaining Ready unit
	resp = s.request("GET", "/dashboard/stock", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	body = s.decode(resp)
	summary := body["summary"].(map[string]interface{})
	s.Equal(float64(1), summary["total_units"])
}

func (s *InventoryE2ESuite) TestMaintenanceAndWipe() {
	// Cashier cannot ingest
	resp := s.request("POST", "/inventory/manual", map[string]interface{}{
		"brand":          "Bolt",
		"sku":            "B20-RED",
		"price":          90000,
		"serial_numbers": "E2E-SN-100",
	})
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Seed a unit to maintain
	resp = s.request("POST", "/inventory/manual", map[string]interface{}{
		"brand":          "Bolt",
		"sku":            "B20-RED",
		"price":          90000,
		"serial_numbers": "E2E-SN-100",
	}, asAdmin)
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Reprice it
	resp = s.request("PATCH", "/inventory/E2E-SN-100/price", map[string]interface{}{
		"price": 95000,
	}, asAdmin)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.request("GET", "/inventory/E2E-SN-100", nil)
	body := s.decode(resp)
	s.Equal(float64(95000), body["price"])

	// Cashier cannot wipe
	resp = s.request("DELETE", "/admin/collections/inventory", nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin without PIN cannot wipe
	resp = s.request("DELETE", "/admin/collections/inventory", nil, func(req *http.Request) {
		req.SetBasicAuth("admin", "admin123")
	})
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin with PIN wipes everything
	resp = s.request("DELETE", "/admin/collections/inventory", nil, asAdmin)
	s.Equal(http.StatusOK, resp.StatusCode)
	body = s.decode(resp)
	s.Equal("inventory", body["collection"])

	resp = s.request("GET", "/inventory/E2E-SN-100", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *InventoryE2ESuite) TestUnauthenticatedRequestsRejected() {
	req, err := http.NewRequest("GET", s.baseURL+"/inventory", nil)
	s.Require().NoError(err)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Contains(resp.Header.Get("WWW-Authenticate"), "Basic")
}

func TestInventoryE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e tests in short mode")
	}
	suite.Run(t, new(InventoryE2ESuite))
}
