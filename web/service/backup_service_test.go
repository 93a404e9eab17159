package service

import (
	"archive/zip"
	"testing"

	"condo-panel/config"
	"condo-panel/database"

	"github.com/stretchr/testify/assert"
)

func TestBackup(t *testing.T) {
	t.Setenv("CONDO_DB_FOLDER", t.TempDir())
	t.Setenv("CONDO_BACKUP_FOLDER", t.TempDir())

	assert.NoError(t, database.InitDB(config.GetDBPath()))
	defer func() {
		db, _ := database.GetDB().DB()
		db.Close()
	}()

	service := BackupService{}
	archivePath, err := service.Backup()
	assert.NoError(t, err)

	reader, err := zip.OpenReader(archivePath)
	assert.NoError(t, err)
	defer reader.Close()

	assert.Len(t, reader.File, 1)
	assert.Equal(t, config.GetName()+".db", reader.File[0].Name)
	assert.NotZero(t, reader.File[0].UncompressedSize64)
}
