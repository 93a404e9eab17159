package service

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"condo-panel/config"
	"condo-panel/database"
	"condo-panel/util/common"
)

// BackupService archives the sqlite database into the backup folder.
type BackupService struct{}

// Backup checkpoints the WAL, verifies the database file signature and
// writes a timestamped zip archive. Returns the archive path.
func (s *BackupService) Backup() (string, error) {
	if err := database.Checkpoint(); err != nil {
		return "", err
	}

	dbPath := config.GetDBPath()
	dbFile, err := os.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer dbFile.Close()

	ok, err := database.IsSQLiteDB(dbFile)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.NewError("database file is not a valid sqlite database:", dbPath)
	}

	folder := config.GetBackupFolder()
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.zip", config.GetName(), time.Now().Format("02-01-06_15-04-05"))
	archivePath := filepath.Join(folder, name)

	archive, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	zw := zip.NewWriter(archive)
	entry, err := zw.Create(filepath.Base(dbPath))
	if err != nil {
		zw.Close()
		return "", err
	}
	if _, err := dbFile.Seek(0, io.SeekStart); err != nil {
		zw.Close()
		return "", err
	}
	if _, err := io.Copy(entry, dbFile); err != nil {
		zw.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	return archivePath, nil
}
