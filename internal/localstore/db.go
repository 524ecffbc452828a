package localstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InMemory opens a throwaway database, mostly for tests.
const InMemory = ":memory:"

// Open connects to the sqlite file at path, creating its directory when needed, and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	// sqlite has a single writer, and every :memory: connection is its own database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access local database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskRecord{}, &tagRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate local database: %w", err)
	}
	log.Debugf("local database ready at %s", path)
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
