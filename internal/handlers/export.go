// internal/handlers/export.go
package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
)

// ExportHandler produces spreadsheet downloads of inventory and sales
type ExportHandler struct {
	read   ports.InventoryReadService
	logger *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(read ports.InventoryReadService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		read:   read,
		logger: logger.With(slog.String("handler", "export")),
	}
}

// ExportInventory handles GET /api/v1/export/inventory
func (h *ExportHandler) ExportInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := ports.ScanFilter{
		Brand:  r.URL.Query().Get("brand"),
		SKU:    r.URL.Query().Get("sku"),
		Status: domain.StockStatus(r.URL.Query().Get("status")),
	}

	items, err := h.read.ScanInventory(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load inventory for export", slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	data, err := buildInventoryWorkbook(items)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate inventory workbook", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	writeWorkbook(w, filename, data)

	h.logger.InfoContext(ctx, "inventory export completed",
		slog.Int("rows", len(items)),
		slog.String("filename", filename))
}

// ExportTransactions handles GET /api/v1/export/transactions
func (h *ExportHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
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

	transactions, err := h.read.ListTransactions(ctx, from, to)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load transactions for export", slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	data, err := buildTransactionsWorkbook(transactions)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate transactions workbook", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().Format("20060102_150405"))
	writeWorkbook(w, filename, data)

	h.logger.InfoContext(ctx, "transactions export completed",
		slog.Int("rows", len(transactions)),
		slog.String("filename", filename))
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Write(data)
}

func buildInventoryWorkbook(items []domain.StockItem) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range []string{"Serial Number", "Brand", "SKU", "Price", "Status", "Created At", "Sold At"} {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().Value = item.SerialNumber
		row.AddCell().Value = item.Brand
		row.AddCell().Value = item.SKU
		row.AddCell().SetInt64(item.Price)
		row.AddCell().Value = string(item.Status)
		row.AddCell().Value = item.CreatedAt.Format(time.RFC3339)
		if item.SoldAt != nil {
			row.AddCell().Value = item.SoldAt.Format(time.RFC3339)
		} else {
			row.AddCell().Value = ""
		}
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func buildTransactionsWorkbook(transactions []domain.Transaction) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Transactions")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range []string{"Transaction ID", "Timestamp", "Actor", "Items", "Serial Numbers", "Total Bill"} {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}

	for _, trx := range transactions {
		row := sheet.AddRow()
		row.AddCell().Value = trx.TransactionID
		row.AddCell().Value = trx.Timestamp.Format(time.RFC3339)
		row.AddCell().Value = trx.Actor
		row.AddCell().SetInt(trx.ItemsCount)
		row.AddCell().Value = strings.Join(trx.ItemSerialNumbers, ", ")
		row.AddCell().SetInt64(trx.TotalBill)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}
