// internal/core/domain/stock_test.go
package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sntracker/backend/internal/core/domain"
)

func TestStockItem_Validate(t *testing.T) {
	tests := []struct {
		name          string
		item          domain.StockItem
		expectedError bool
		errorContains string
	}{
		{
			name: "valid_item",
			item: domain.StockItem{
				SerialNumber: "A001",
				Brand:        "Acme",
				SKU:          "Widget",
				Price:        100000,
			},
			expectedError: false,
		},
		{
			name: "missing_serial_number",
			item: domain.StockItem{
				Brand: "Acme",
				SKU:   "Widget",
				Price: 100000,
			},
			expectedError: true,
			errorContains: "serial_number is required",
		},
		{
			name: "missing_brand",
			item: domain.StockItem{
				SerialNumber: "A001",
				SKU:          "Widget",
			},
			expectedError: true,
			errorContains: "brand is required",
		},
		{
			name: "missing_sku",
			item: domain.StockItem{
				SerialNumber: "A001",
				Brand:        "Acme",
			},
			expectedError: true,
			errorContains: "sku is required",
		},
		{
			name: "negative_price",
			item: domain.StockItem{
				SerialNumber: "A001",
				Brand:        "Acme",
				SKU:          "Widget",
				Price:        -1,
			},
			expectedError: true,
			errorContains: "price cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.True(t, domain.IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStockItem_Validate_DefaultsStatus(t *testing.T) {
	item := domain.StockItem{
		SerialNumber: "A001",
		Brand:        "Acme",
		SKU:          "Widget",
		Price:        100000,
	}

	require.NoError(t, item.Validate())
	assert.Equal(t, domain.StatusReady, item.Status)
	assert.True(t, item.IsReady())
}

func TestStockItem_PrepareForStorage(t *testing.T) {
	item := domain.StockItem{
		SerialNumber: "  A001  ",
		Brand:        "Acme",
		SKU:          "Widget",
	}

	item.PrepareForStorage()

	assert.Equal(t, "A001", item.SerialNumber)
	assert.Equal(t, domain.StatusReady, item.Status)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestStockItem_PrepareForStorage_KeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	item := domain.StockItem{
		SerialNumber: "A001",
		Brand:        "Acme",
		SKU:          "Widget",
		CreatedAt:    created,
	}

	item.PrepareForStorage()

	assert.Equal(t, created, item.CreatedAt)
}

func TestCartLine_Snapshot(t *testing.T) {
	line := domain.CartLine{
		SerialNumber: "A001",
		Brand:        "Acme",
		SKU:          "Widget",
		Price:        100000,
	}

	snap := line.Snapshot()

	assert.Equal(t, "A001", snap.SerialNumber)
	assert.Equal(t, "Acme", snap.Brand)
	assert.Equal(t, "Widget", snap.SKU)
	assert.Equal(t, int64(100000), snap.Price)
}
