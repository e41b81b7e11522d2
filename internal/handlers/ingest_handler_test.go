package handlers_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/handlers"
	"github.com/sntracker/backend/test/helpers"
	"github.com/sntracker/backend/test/mocks"
)

const testMaxUpload = 20 << 20

func TestIngestHandler_IngestManual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name           string
		body           string
		setupMock      func(ingest *mocks.MockIngestService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "adds_units",
			body: `{"brand":"Acme","sku":"X100-BLK","price":150000,"serial_numbers":"SN-001\nSN-002\n"}`,
			setupMock: func(ingest *mocks.MockIngestService) {
				ingest.EXPECT().
					IngestManual(gomock.Any(), gomock.Any(), "Acme", "X100-BLK", int64(150000), []string{"SN-001", "SN-002", ""}).
					Return(2, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"count":2`,
		},
		{
			name: "missing_brand_returns_400",
			body: `{"brand":"","sku":"X100-BLK","price":100,"serial_numbers":"SN-001"}`,
			setupMock: func(ingest *mocks.MockIngestService) {
				ingest.EXPECT().
					IngestManual(gomock.Any(), gomock.Any(), "", "X100-BLK", int64(100), gomock.Any()).
					Return(0, domain.NewValidationError("brand", "brand is required"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "brand is required",
		},
		{
			name: "audit_log_failure_still_reports_count",
			body: `{"brand":"Acme","sku":"X100-BLK","price":100,"serial_numbers":"SN-001\nSN-002"}`,
			setupMock: func(ingest *mocks.MockIngestService) {
				ingest.EXPECT().
					IngestManual(gomock.Any(), gomock.Any(), "Acme", "X100-BLK", int64(100), gomock.Any()).
					Return(2, &domain.AuditLogError{Committed: 2, Err: errors.New("db down")})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"committed":2`,
		},
		{
			name:           "malformed_body_returns_400",
			body:           `{"brand": `,
			setupMock:      func(ingest *mocks.MockIngestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingest := mocks.NewMockIngestService(ctrl)
			tt.setupMock(ingest)

			handler := handlers.NewIngestHandler(ingest, helpers.TestLogger(), testMaxUpload)

			req := httptest.NewRequest("POST", "/api/v1/inventory/manual", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.IngestManual(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/inventory/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestIngestHandler_IngestSpreadsheet_CSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ingest := mocks.NewMockIngestService(ctrl)
	ingest.EXPECT().
		IngestRows(gomock.Any(), gomock.Any(), []string{"brand", "sku", "price", "sn"}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, _ []string, rows []map[string]string, _ ports.ProgressFunc) (*ports.IngestResult, error) {
			require.Len(t, rows, 2)
			assert.Equal(t, "SN-001", rows[0]["sn"])
			assert.Equal(t, "150000", rows[0]["price"])
			return &ports.IngestResult{Count: 2, Message: "2 units imported"}, nil
		})

	handler := handlers.NewIngestHandler(ingest, helpers.TestLogger(), testMaxUpload)

	csvContent := "Brand,SKU,Price,SN\nAcme,X100-BLK,150000,SN-001\nAcme,X100-BLK,150000,SN-002\n"
	req := multipartUpload(t, "stock.csv", []byte(csvContent))
	w := httptest.NewRecorder()

	handler.IngestSpreadsheet(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestIngestHandler_IngestSpreadsheet_XLSX(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Build a small workbook in memory
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Stock")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, h := range []string{"brand", "sku", "price", "sn"} {
		header.AddCell().Value = h
	}
	row := sheet.AddRow()
	for _, v := range []string{"Acme", "X100-BLK", "150000", "SN-010"} {
		row.AddCell().Value = v
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	ingest := mocks.NewMockIngestService(ctrl)
	ingest.EXPECT().
		IngestRows(gomock.Any(), gomock.Any(), []string{"brand", "sku", "price", "sn"}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, _ []string, rows []map[string]string, _ ports.ProgressFunc) (*ports.IngestResult, error) {
			require.Len(t, rows, 1)
			assert.Equal(t, "SN-010", rows[0]["sn"])
			return &ports.IngestResult{Count: 1, Message: "1 unit imported"}, nil
		})

	handler := handlers.NewIngestHandler(ingest, helpers.TestLogger(), testMaxUpload)

	req := multipartUpload(t, "stock.xlsx", buf.Bytes())
	w := httptest.NewRecorder()

	handler.IngestSpreadsheet(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestIngestHandler_IngestSpreadsheet_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("unsupported_extension", func(t *testing.T) {
		ingest := mocks.NewMockIngestService(ctrl)
		handler := handlers.NewIngestHandler(ingest, helpers.TestLogger(), testMaxUpload)

		req := multipartUpload(t, "report.pdf", []byte("%PDF-1.4"))
		w := httptest.NewRecorder()

		handler.IngestSpreadsheet(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Only .xlsx and .csv")
	})

	t.Run("missing_column_fails_whole_import", func(t *testing.T) {
		ingest := mocks.NewMockIngestService(ctrl)
		ingest.EXPECT().
			IngestRows(gomock.Any(), gomock.Any(), []string{"brand", "sku", "price"}, gomock.Any(), gomock.Any()).
			Return(nil, domain.NewValidationError("columns", "missing required columns: sn"))

		handler := handlers.NewIngestHandler(ingest, helpers.TestLogger(), testMaxUpload)

		req := multipartUpload(t, "stock.csv", []byte("brand,sku,price\nAcme,X100-BLK,150000\n"))
		w := httptest.NewRecorder()

		handler.IngestSpreadsheet(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing required columns")
	})

	t.Run("missing_file", func(t *testing.T) {
		ingest := mocks.NewMockIngestService(ctrl)
		handler := handlers.NewIngestHandler(ingest, helpers.TestLogger(), testMaxUpload)

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/api/v1/inventory/import", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()

		handler.IngestSpreadsheet(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "File is required")
	})
}
