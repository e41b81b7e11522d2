// internal/core/services/maintenance_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/services"
	"github.com/sntracker/backend/test/helpers"
	"github.com/sntracker/backend/test/mocks"
)

func TestMaintenanceService_UpdatePrice(t *testing.T) {
	tests := []struct {
		name       string
		serial     string
		price      int64
		setupMocks func(stock *mocks.MockStockRepository, inv *mocks.MockInvalidator)
		wantErr    string
	}{
		{
			name:   "successful update",
			serial: "SN-001",
			price:  200000,
			setupMocks: func(stock *mocks.MockStockRepository, inv *mocks.MockInvalidator) {
				stock.EXPECT().UpdatePrice(gomock.Any(), "SN-001", int64(200000)).Return(nil)
				inv.EXPECT().InvalidateInventory(gomock.Any())
			},
		},
		{
			name:       "empty serial",
			serial:     "",
			price:      100,
			setupMocks: func(*mocks.MockStockRepository, *mocks.MockInvalidator) {},
			wantErr:    "serial_number is required",
		},
		{
			name:       "negative price",
			serial:     "SN-001",
			price:      -1,
			setupMocks: func(*mocks.MockStockRepository, *mocks.MockInvalidator) {},
			wantErr:    "price cannot be negative",
		},
		{
			name:   "unknown serial",
			serial: "SN-404",
			price:  100,
			setupMocks: func(stock *mocks.MockStockRepository, inv *mocks.MockInvalidator) {
				stock.EXPECT().UpdatePrice(gomock.Any(), "SN-404", int64(100)).Return(domain.ErrNotFound)
			},
			wantErr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			stock := mocks.NewMockStockRepository(ctrl)
			inv := mocks.NewMockInvalidator(ctrl)
			tt.setupMocks(stock, inv)

			svc := services.NewMaintenanceService(stock, inv, helpers.TestLogger())
			err := svc.UpdatePrice(context.Background(), tt.serial, tt.price)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMaintenanceService_DeleteItem(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stock := mocks.NewMockStockRepository(ctrl)
		inv := mocks.NewMockInvalidator(ctrl)
		stock.EXPECT().DeleteOne(gomock.Any(), "SN-001").Return(nil)
		inv.EXPECT().InvalidateInventory(gomock.Any())

		svc := services.NewMaintenanceService(stock, inv, helpers.TestLogger())
		require.NoError(t, svc.DeleteItem(context.Background(), "SN-001"))
	})

	t.Run("unknown serial surfaces not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		stock := mocks.NewMockStockRepository(ctrl)
		stock.EXPECT().DeleteOne(gomock.Any(), "SN-404").Return(domain.ErrNotFound)

		svc := services.NewMaintenanceService(stock, nil, helpers.TestLogger())
		err := svc.DeleteItem(context.Background(), "SN-404")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("empty serial rejected", func(t *testing.T) {
		svc := services.NewMaintenanceService(nil, nil, helpers.TestLogger())
		err := svc.DeleteItem(context.Background(), "")
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}
