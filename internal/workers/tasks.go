// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names registered with the asynq mux
const (
	TypeBackupSnapshot   = "backup:snapshot"
	TypeCleanupBackups   = "cleanup:backups"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// BackupPayload parametrizes a snapshot task
type BackupPayload struct {
	RequestedBy string `json:"requested_by"`
}

// CleanupPayload parametrizes a backup retention sweep
type CleanupPayload struct {
	KeepLast int `json:"keep_last"`
}

// NewBackupSnapshotTask builds a snapshot task
func NewBackupSnapshotTask(requestedBy string) (*asynq.Task, error) {
	payload, err := json.Marshal(BackupPayload{RequestedBy: requestedBy})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup payload: %w", err)
	}
	return asynq.NewTask(TypeBackupSnapshot, payload, asynq.MaxRetry(3)), nil
}

// NewCleanupBackupsTask builds a retention sweep task
func NewCleanupBackupsTask(keepLast int) (*asynq.Task, error) {
	payload, err := json.Marshal(CleanupPayload{KeepLast: keepLast})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeCleanupBackups, payload, asynq.MaxRetry(2)), nil
}

// NewCleanupTempFilesTask builds a temp directory sweep task
func NewCleanupTempFilesTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupTempFiles, nil)
}
