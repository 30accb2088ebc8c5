package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// DefaultPath is used when no database path is configured.
const DefaultPath = "skillbanto.db"

// Init opens the SQLite database at databasePath, migrates the schema and
// stores the connection in DB. An empty path falls back to DefaultPath.
func Init(databasePath string) error {
	gdb, err := Open(databasePath, logger.Default.LogMode(logger.Warn))
	if err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open connects to databasePath and runs migrations without touching DB.
func Open(databasePath string, log logger.Interface) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = DefaultPath
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&Page{})
}

// Close releases the underlying sql.DB of gdb.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
