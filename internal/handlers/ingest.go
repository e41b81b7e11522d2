// internal/handlers/ingest.go
package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/pkg/logger"
)

// IngestHandler handles bulk stock ingestion (manual input and spreadsheet
// upload)
type IngestHandler struct {
	ingest      ports.IngestService
	logger      *slog.Logger
	maxFileSize int64
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingest ports.IngestService, logger *slog.Logger, maxFileSize int64) *IngestHandler {
	return &IngestHandler{
		ingest:      ingest,
		logger:      logger.With(slog.String("handler", "ingest")),
		maxFileSize: maxFileSize,
	}
}

// ManualInputRequest carries units sharing one brand/sku/price, one serial
// number per line.
type ManualInputRequest struct {
	Brand         string `json:"brand"`
	SKU           string `json:"sku"`
	Price         int64  `json:"price"`
	SerialNumbers string `json:"serial_numbers"`
}

// IngestManual handles POST /api/v1/inventory/manual
func (h *IngestHandler) IngestManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ManualInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := logger.ActorFrom(ctx)

	count, err := h.ingest.IngestManual(ctx, actor, req.Brand, req.SKU, req.Price, splitLines(req.SerialNumbers))
	if err != nil {
		h.logger.ErrorContext(ctx, "manual ingestion failed",
			slog.String("actor", actor),
			slog.String("brand", req.Brand),
			slog.String("sku", req.SKU),
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "manual ingestion completed",
		slog.String("actor", actor),
		slog.Int("count", count))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"count":   count,
		"message": fmt.Sprintf("%d units added", count),
	})
}

// IngestSpreadsheet handles POST /api/v1/inventory/import. Accepts a
// multipart upload of one xlsx or csv file with brand, sku, price and sn
// columns.
func (h *IngestHandler) IngestSpreadsheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form data (file too large?)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read upload", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	var columns []string
	var rows []map[string]string

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		columns, rows, err = parseXLSX(data)
	case ".csv":
		columns, rows, err = parseCSV(data)
	default:
		respondError(w, http.StatusBadRequest, "Only .xlsx and .csv files are allowed")
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to parse spreadsheet",
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		respondError(w, http.StatusBadRequest, "Could not parse spreadsheet: "+err.Error())
		return
	}

	actor := logger.ActorFrom(ctx)

	progress := func(written, total int) {
		h.logger.InfoContext(ctx, "import progress",
			slog.String("actor", actor),
			slog.Int("written", written),
			slog.Int("total", total))
	}

	result, err := h.ingest.IngestRows(ctx, actor, columns, rows, progress)
	if err != nil {
		h.logger.ErrorContext(ctx, "spreadsheet ingestion failed",
			slog.String("actor", actor),
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		respondDomainError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "spreadsheet ingestion completed",
		slog.String("actor", actor),
		slog.String("filename", header.Filename),
		slog.Int("count", result.Count))

	respondJSON(w, http.StatusCreated, result)
}

// parseXLSX reads the first sheet; the first row is the header.
func parseXLSX(data []byte) ([]string, []map[string]string, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}

	if len(file.Sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := file.Sheets[0]

	var columns []string
	var rows []map[string]string
	rowIdx := 0

	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		var cells []string
		r.ForEachCell(func(c *xlsx.Cell) error {
			cells = append(cells, strings.TrimSpace(c.String()))
			return nil
		})

		if rowIdx == 0 {
			for _, c := range cells {
				columns = append(columns, strings.ToLower(c))
			}
		} else {
			row := make(map[string]string, len(columns))
			for i, name := range columns {
				if i < len(cells) {
					row[name] = cells[i]
				}
			}
			rows = append(rows, row)
		}
		rowIdx++
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("sheet has no header row")
	}
	return columns, rows, nil
}

// parseCSV reads a comma-separated file; the first record is the header.
func parseCSV(data []byte) ([]string, []map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.ToLower(strings.TrimSpace(c))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}
