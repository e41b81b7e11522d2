// internal/handlers/dashboard.go
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	redis_a "github.com/sntracker/backend/internal/adapters/redis_adapter"
	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// DashboardHandler serves aggregated views over stock and sales
type DashboardHandler struct {
	read   ports.InventoryReadService
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(read ports.InventoryReadService, cache ports.CacheRepository, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		read:   read,
		cache:  cache,
		logger: logger.With(slog.String("handler", "dashboard")),
	}
}

// StockRecap is the ready-stock dashboard payload
type StockRecap struct {
	Summary   StockSummary     `json:"summary"`
	Groups    []StockGroupRow  `json:"groups"`
	Timestamp time.Time        `json:"timestamp"`
}

// StockSummary totals the ready inventory
type StockSummary struct {
	TotalUnits   int             `json:"total_units"`
	ProductKinds int             `json:"product_kinds"`
	AssetValue   decimal.Decimal `json:"asset_value"`
}

// StockGroupRow is one brand/sku/price bucket of ready stock
type StockGroupRow struct {
	Brand      string          `json:"brand"`
	SKU        string          `json:"sku"`
	Price      int64           `json:"price"`
	UnitCount  int             `json:"unit_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// SalesRecap is the sales analytics payload
type SalesRecap struct {
	TransactionCount int              `json:"transaction_count"`
	UnitsSold        int              `json:"units_sold"`
	Revenue          decimal.Decimal  `json:"revenue"`
	AveragePerSale   decimal.Decimal  `json:"average_per_sale"`
	Daily            []DailyRevenue   `json:"daily"`
	Timestamp        time.Time        `json:"timestamp"`
}

// DailyRevenue is one day's revenue bucket
type DailyRevenue struct {
	Date             string          `json:"date"`
	TransactionCount int             `json:"transaction_count"`
	UnitsSold        int             `json:"units_sold"`
	Revenue          decimal.Decimal `json:"revenue"`
}

// GetStockRecap handles GET /api/v1/dashboard/stock
func (h *DashboardHandler) GetStockRecap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "stock")
	var recap StockRecap

	err := h.cache.GetOrSet(ctx, cacheKey, &recap, func() (interface{}, error) {
		return h.buildStockRecap(ctx)
	}, 5*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build stock recap", slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recap)
}

// GetSalesRecap handles GET /api/v1/dashboard/sales
func (h *DashboardHandler) GetSalesRecap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, err := parseTimeParam(r.URL.Query().Get("from"), false)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid from parameter: "+err.Error())
		return
	}
	to, err := parseTimeParam(r.URL.Query().Get("to"), true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid to parameter: "+err.Error())
		return
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "sales",
		fmt.Sprintf("%s|%s", r.URL.Query().Get("from"), r.URL.Query().Get("to")))
	var recap SalesRecap

	err = h.cache.GetOrSet(ctx, cacheKey, &recap, func() (interface{}, error) {
		return h.buildSalesRecap(ctx, from, to)
	}, 5*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build sales recap", slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recap)
}

func (h *DashboardHandler) buildStockRecap(ctx context.Context) (*StockRecap, error) {
	items, err := h.read.ScanInventory(ctx, ports.ScanFilter{Status: domain.StatusReady})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ready stock: %w", err)
	}

	type groupKey struct {
		brand string
		sku   string
		price int64
	}

	groups := make(map[groupKey]int)
	assetValue := decimal.Zero
	for _, item := range items {
		groups[groupKey{item.Brand, item.SKU, item.Price}]++
		assetValue = assetValue.Add(decimal.NewFromInt(item.Price))
	}

	recap := &StockRecap{
		Summary: StockSummary{
			TotalUnits:   len(items),
			ProductKinds: len(groups),
			AssetValue:   assetValue,
		},
		Groups:    make([]StockGroupRow, 0, len(groups)),
		Timestamp: time.Now(),
	}

	for key, count := range groups {
		recap.Groups = append(recap.Groups, StockGroupRow{
			Brand:      key.brand,
			SKU:        key.sku,
			Price:      key.price,
			UnitCount:  count,
			TotalValue: decimal.NewFromInt(key.price).Mul(decimal.NewFromInt(int64(count))),
		})
	}

	sort.Slice(recap.Groups, func(i, j int) bool {
		if recap.Groups[i].Brand != recap.Groups[j].Brand {
			return recap.Groups[i].Brand < recap.Groups[j].Brand
		}
		return recap.Groups[i].SKU < recap.Groups[j].SKU
	})

	return recap, nil
}

func (h *DashboardHandler) buildSalesRecap(ctx context.Context, from, to *time.Time) (*SalesRecap, error) {
	transactions, err := h.read.ListTransactions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	recap := &SalesRecap{
		TransactionCount: len(transactions),
		Revenue:          decimal.Zero,
		AveragePerSale:   decimal.Zero,
		Timestamp:        time.Now(),
	}

	daily := make(map[string]*DailyRevenue)
	for _, trx := range transactions {
		recap.UnitsSold += trx.ItemsCount
		recap.Revenue = recap.Revenue.Add(decimal.NewFromInt(trx.TotalBill))

		day := trx.Timestamp.Format("2006-01-02")
		bucket, ok := daily[day]
		if !ok {
			bucket = &DailyRevenue{Date: day, Revenue: decimal.Zero}
			daily[day] = bucket
		}
		bucket.TransactionCount++
		bucket.UnitsSold += trx.ItemsCount
		bucket.Revenue = bucket.Revenue.Add(decimal.NewFromInt(trx.TotalBill))
	}

	if len(transactions) > 0 {
		recap.AveragePerSale = recap.Revenue.
			Div(decimal.NewFromInt(int64(len(transactions)))).
			Round(2)
	}

	recap.Daily = make([]DailyRevenue, 0, len(daily))
	for _, bucket := range daily {
		recap.Daily = append(recap.Daily, *bucket)
	}
	sort.Slice(recap.Daily, func(i, j int) bool {
		return recap.Daily[i].Date < recap.Daily[j].Date
	})

	return recap, nil
}
