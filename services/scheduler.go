package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// StartScheduler starts the periodic backup task.
func StartScheduler(c *Controller, backupDir string) {
	c.logger.Info("starting task scheduler")
	go runBackupScheduler(c, backupDir)
}

// runBackupScheduler writes a full-state backup once a day at midnight.
func runBackupScheduler(c *Controller, backupDir string) {
	for {
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		c.logger.Info("next backup scheduled", zap.Duration("in", midnight.Sub(now)))
		time.Sleep(midnight.Sub(now))

		if err := WriteBackup(c, backupDir); err != nil {
			c.logger.Error("scheduled backup failed", zap.Error(err))
		}

		// Avoid a double run when execution finishes within the same tick
		time.Sleep(time.Second)
	}
}

// WriteBackup dumps every collection to a timestamped JSON file.
func WriteBackup(c *Controller, backupDir string) error {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}
	state := c.Snapshot()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	path := filepath.Join(backupDir, fmt.Sprintf("trackhub-%s.json", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	c.logger.Info("backup written", zap.String("path", path))
	return nil
}
