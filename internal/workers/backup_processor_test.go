package workers_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/workers"
	"github.com/sntracker/backend/test/helpers"
	"github.com/sntracker/backend/test/mocks"
)

// memoryStorage is an in-memory StorageClient for worker tests
type memoryStorage struct {
	objects    map[string][]byte
	failUpload bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) Upload(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	if m.failUpload {
		return "", errors.New("bucket unreachable")
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.objects[key] = body
	return "memory://" + key, nil
}

func (m *memoryStorage) Download(_ context.Context, key string) ([]byte, error) {
	return m.objects[key], nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) DeleteMultiple(_ context.Context, keys []string) error {
	for _, key := range keys {
		delete(m.objects, key)
	}
	return nil
}

func (m *memoryStorage) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range m.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func TestBackupProcessor_ProcessSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sold := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	read := mocks.NewMockInventoryReadService(ctrl)
	read.EXPECT().
		ScanInventory(gomock.Any(), ports.ScanFilter{}).
		Return([]domain.StockItem{
			{SerialNumber: "SN-001", Brand: "Acme", SKU: "X100-BLK", Price: 150000, Status: domain.StatusReady, CreatedAt: sold},
			{SerialNumber: "SN-002", Brand: "Acme", SKU: "X100-BLK", Price: 150000, Status: domain.StatusSold, CreatedAt: sold, SoldAt: &sold},
		}, nil)
	read.EXPECT().
		ListTransactions(gomock.Any(), nil, nil).
		Return([]domain.Transaction{
			{TransactionID: "TRX-0001", Timestamp: sold, Actor: "kasir", ItemSerialNumbers: []string{"SN-002"}, ItemsCount: 1, TotalBill: 150000},
		}, nil)

	store := newMemoryStorage()
	tempDir := t.TempDir()
	processor := workers.NewBackupProcessor(read, store, tempDir, helpers.TestLogger())

	task, err := workers.NewBackupSnapshotTask("scheduler")
	require.NoError(t, err)

	require.NoError(t, processor.ProcessSnapshot(context.Background(), task))

	keys, err := store.List(context.Background(), "backups/")
	require.NoError(t, err)
	require.Len(t, keys, 1)

	staged, err := filepath.Glob(filepath.Join(tempDir, "snapshot-*.xlsx"))
	require.NoError(t, err)
	assert.Empty(t, staged, "staged file should be removed after a successful upload")

	file, err := xlsx.OpenBinary(store.objects[keys[0]])
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Equal(t, "Inventory", file.Sheets[0].Name)
	assert.Equal(t, "Transactions", file.Sheets[1].Name)

	row, err := file.Sheets[0].Row(1)
	require.NoError(t, err)
	assert.Equal(t, "SN-001", row.GetCell(0).String())

	row, err = file.Sheets[1].Row(1)
	require.NoError(t, err)
	assert.Equal(t, "TRX-0001", row.GetCell(0).String())
}

func TestBackupProcessor_UploadFailureKeepsStagedFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	read := mocks.NewMockInventoryReadService(ctrl)
	read.EXPECT().ScanInventory(gomock.Any(), ports.ScanFilter{}).Return([]domain.StockItem{}, nil)
	read.EXPECT().ListTransactions(gomock.Any(), nil, nil).Return([]domain.Transaction{}, nil)

	store := newMemoryStorage()
	store.failUpload = true
	tempDir := t.TempDir()
	processor := workers.NewBackupProcessor(read, store, tempDir, helpers.TestLogger())

	task, err := workers.NewBackupSnapshotTask("scheduler")
	require.NoError(t, err)

	err = processor.ProcessSnapshot(context.Background(), task)
	require.Error(t, err)

	staged, err := filepath.Glob(filepath.Join(tempDir, "snapshot-*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, staged, 1, "staged file should survive a failed upload for the cleanup sweep")
}

func TestCleanupProcessor_ProcessBackupRetention(t *testing.T) {
	store := newMemoryStorage()
	for _, key := range []string{
		"backups/inventory_20260825_020000.xlsx",
		"backups/inventory_20260826_020000.xlsx",
		"backups/inventory_20260827_020000.xlsx",
		"backups/inventory_20260828_020000.xlsx",
	} {
		store.objects[key] = []byte("snapshot")
	}

	processor := workers.NewCleanupProcessor(store, t.TempDir(), helpers.TestLogger())

	task, err := workers.NewCleanupBackupsTask(2)
	require.NoError(t, err)

	require.NoError(t, processor.ProcessBackupRetention(context.Background(), task))

	keys, err := store.List(context.Background(), "backups/")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.NotContains(t, keys, "backups/inventory_20260825_020000.xlsx")
	assert.NotContains(t, keys, "backups/inventory_20260826_020000.xlsx")
}

func TestCleanupProcessor_ProcessTempFiles(t *testing.T) {
	tempDir := t.TempDir()

	stale := filepath.Join(tempDir, "export_old.xlsx")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(tempDir, "export_fresh.xlsx")
	require.NoError(t, os.WriteFile(fresh, []byte("fresh"), 0o644))

	processor := workers.NewCleanupProcessor(newMemoryStorage(), tempDir, helpers.TestLogger())

	require.NoError(t, processor.ProcessTempFiles(context.Background(), workers.NewCleanupTempFilesTask()))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
