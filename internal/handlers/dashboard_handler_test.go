package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/handlers"
	"github.com/sntracker/backend/test/helpers"
	"github.com/sntracker/backend/test/mocks"
)

func TestDashboardHandler_GetStockRecap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	read := mocks.NewMockInventoryReadService(ctrl)
	read.EXPECT().
		ScanInventory(gomock.Any(), ports.ScanFilter{Status: domain.StatusReady}).
		Return([]domain.StockItem{
			{SerialNumber: "SN-001", Brand: "Acme", SKU: "X100-BLK", Price: 150000, Status: domain.StatusReady},
			{SerialNumber: "SN-002", Brand: "Acme", SKU: "X100-BLK", Price: 150000, Status: domain.StatusReady},
			{SerialNumber: "SN-003", Brand: "Bolt", SKU: "B20-RED", Price: 90000, Status: domain.StatusReady},
		}, nil).
		Times(1)

	handler := handlers.NewDashboardHandler(read, newTestCache(t), helpers.TestLogger())

	req := httptest.NewRequest("GET", "/api/v1/dashboard/stock", nil)
	w := httptest.NewRecorder()
	handler.GetStockRecap(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var recap handlers.StockRecap
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recap))

	assert.Equal(t, 3, recap.Summary.TotalUnits)
	assert.Equal(t, 2, recap.Summary.ProductKinds)
	assert.Equal(t, "390000", recap.Summary.AssetValue.String())

	require.Len(t, recap.Groups, 2)
	// Sorted by brand then sku
	assert.Equal(t, "Acme", recap.Groups[0].Brand)
	assert.Equal(t, 2, recap.Groups[0].UnitCount)
	assert.Equal(t, "300000", recap.Groups[0].TotalValue.String())
	assert.Equal(t, "Bolt", recap.Groups[1].Brand)

	// Second request is served from cache
	w = httptest.NewRecorder()
	handler.GetStockRecap(w, httptest.NewRequest("GET", "/api/v1/dashboard/stock", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardHandler_GetSalesRecap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day1 := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	read := mocks.NewMockInventoryReadService(ctrl)
	read.EXPECT().
		ListTransactions(gomock.Any(), nil, nil).
		Return([]domain.Transaction{
			{TransactionID: "TRX-0001", Timestamp: day1, TotalBill: 150000, ItemsCount: 1},
			{TransactionID: "TRX-0002", Timestamp: day1, TotalBill: 300000, ItemsCount: 2},
			{TransactionID: "TRX-0003", Timestamp: day2, TotalBill: 90000, ItemsCount: 1},
		}, nil)

	handler := handlers.NewDashboardHandler(read, newTestCache(t), helpers.TestLogger())

	req := httptest.NewRequest("GET", "/api/v1/dashboard/sales", nil)
	w := httptest.NewRecorder()
	handler.GetSalesRecap(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var recap handlers.SalesRecap
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recap))

	assert.Equal(t, 3, recap.TransactionCount)
	assert.Equal(t, 4, recap.UnitsSold)
	assert.Equal(t, "540000", recap.Revenue.String())
	assert.Equal(t, "180000", recap.AveragePerSale.String())

	require.Len(t, recap.Daily, 2)
	assert.Equal(t, "2026-08-28", recap.Daily[0].Date)
	assert.Equal(t, 2, recap.Daily[0].TransactionCount)
	assert.Equal(t, "450000", recap.Daily[0].Revenue.String())
	assert.Equal(t, "2026-08-29", recap.Daily[1].Date)
	assert.Equal(t, "90000", recap.Daily[1].Revenue.String())
}

func TestDashboardHandler_GetSalesRecap_EmptyRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	read := mocks.NewMockInventoryReadService(ctrl)
	read.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.Transaction{}, nil)

	handler := handlers.NewDashboardHandler(read, newTestCache(t), helpers.TestLogger())

	req := httptest.NewRequest("GET", "/api/v1/dashboard/sales?from=2020-01-01&to=2020-01-02", nil)
	w := httptest.NewRecorder()
	handler.GetSalesRecap(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var recap handlers.SalesRecap
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recap))

	assert.Equal(t, 0, recap.TransactionCount)
	assert.Equal(t, "0", recap.Revenue.String())
	assert.Equal(t, "0", recap.AveragePerSale.String())
	assert.Empty(t, recap.Daily)
}
