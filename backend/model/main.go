package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the catalog database and migrates the schema.
func InitDB(path string) error {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	db = gdb
	return db.AutoMigrate(&User{}, &File{})
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DBAlive reports whether the catalog answers a ping. Used by /status.
func DBAlive(ctx context.Context) bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

// ErrMalformedID is returned for ids that are not decimal numbers. Malformed
// input never reaches the database driver.
var ErrMalformedID = errors.New("malformed id")

// ParseID is the single string-to-identifier boundary of the catalog.
func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrMalformedID
	}
	return id, nil
}
