// Package database manages the sqlite database lifecycle for the condo panel:
// initialization, auto-migration, bootstrap seeding and shutdown.
package database

import (
	"bytes"
	"io"
	"io/fs"
	"log"
	"os"
	"path"

	"condo-panel/config"
	"condo-panel/database/model"
	"condo-panel/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// Seed credentials for the first sindico. A known weak default: meant to be
// changed right after the first login.
const (
	defaultSindicoEmail    = "sindico@condominio.local"
	defaultSindicoPassword = "sindico"
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.ServiceType{},
		&model.Request{},
		&model.Setting{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initUser seeds the sindico account when no user currently holds the role,
// so the panel never starts without a manager.
func initUser() error {
	var count int64
	err := db.Model(&model.User{}).Where("role = ?", model.RoleSindico).Count(&count).Error
	if err != nil {
		log.Printf("Error counting sindico users: %v", err)
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPasswordAsBcrypt(defaultSindicoPassword)
	if err != nil {
		return err
	}
	user := &model.User{
		Email:        defaultSindicoEmail,
		PasswordHash: hash,
		Role:         model.RoleSindico,
		Name:         "Síndico",
	}
	return db.Create(user).Error
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA cache_size = -64000;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	if err := initUser(); err != nil {
		return err
	}

	return nil
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

// IsSQLiteDB checks the file header signature before the backup job archives it.
func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

func Checkpoint() error {
	// Update WAL
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
