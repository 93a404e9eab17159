// Package job contains the scheduled maintenance jobs of the condo panel.
package job

import (
	"os"
	"path/filepath"
	"time"

	"condo-panel/config"
	"condo-panel/logger"
	"condo-panel/web/service"
)

// Archives older than this are pruned after each backup run.
const backupRetention = 30 * 24 * time.Hour

type BackupJob struct {
	backupService service.BackupService
}

func NewBackupJob() *BackupJob {
	return new(BackupJob)
}

func (j *BackupJob) Run() {
	archivePath, err := j.backupService.Backup()
	if err != nil {
		logger.Warning("database backup failed:", err)
		return
	}
	logger.Info("database backup written to", archivePath)

	j.prune()
}

func (j *BackupJob) prune() {
	folder := config.GetBackupFolder()
	entries, err := os.ReadDir(folder)
	if err != nil {
		logger.Warning("read backup folder failed:", err)
		return
	}

	cutoff := time.Now().Add(-backupRetention)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".zip" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(folder, entry.Name())); err != nil {
				logger.Warning("prune old backup failed:", err)
			}
		}
	}
}
