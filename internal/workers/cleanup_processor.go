// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sntracker/backend/internal/adapters/storage"
)

const defaultBackupRetention = 30

// CleanupProcessor prunes old backup objects and stale export temp files
type CleanupProcessor struct {
	storage storage.StorageClient
	tempDir string
	logger  *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(storage storage.StorageClient, tempDir string, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		storage: storage,
		tempDir: tempDir,
		logger:  logger.With(slog.String("processor", "cleanup")),
	}
}

// ProcessBackupRetention handles a cleanup:backups task. Snapshot keys embed
// their timestamp, so lexicographic order is chronological order.
func (p *CleanupProcessor) ProcessBackupRetention(ctx context.Context, t *asynq.Task) error {
	keepLast := defaultBackupRetention
	if len(t.Payload()) > 0 {
		var payload CleanupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal cleanup payload: %w", err)
		}
		if payload.KeepLast > 0 {
			keepLast = payload.KeepLast
		}
	}

	keys, err := p.storage.List(ctx, "backups/")
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(keys) <= keepLast {
		p.logger.InfoContext(ctx, "backup retention ok",
			slog.Int("backups", len(keys)),
			slog.Int("keep_last", keepLast))
		return nil
	}

	sort.Strings(keys)
	stale := keys[:len(keys)-keepLast]

	if err := p.storage.DeleteMultiple(ctx, stale); err != nil {
		return fmt.Errorf("failed to delete stale backups: %w", err)
	}

	p.logger.InfoContext(ctx, "stale backups pruned",
		slog.Int("deleted", len(stale)),
		slog.Int("kept", keepLast))

	return nil
}

// ProcessTempFiles handles a cleanup:temp_files task
func (p *CleanupProcessor) ProcessTempFiles(ctx context.Context, t *asynq.Task) error {
	maxAge := 24 * time.Hour

	var deleted int
	err := filepath.Walk(p.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				p.logger.WarnContext(ctx, "failed to delete temp file",
					slog.String("file", path),
					slog.Any("error", err))
			} else {
				deleted++
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk temp directory: %w", err)
	}

	p.logger.InfoContext(ctx, "temp files cleaned up",
		slog.Int("files_deleted", deleted))

	return nil
}
