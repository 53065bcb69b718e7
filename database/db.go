package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// Init opens the SQLite database at path, creating its directory when
// needed, and migrates the schema.
func Init(ctx context.Context, path string) error {
	logger := log.FromContext(ctx)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	conn, err := gorm.Open(GetDialect(path), &gorm.Config{
		Logger: glogger.New(logger, glogger.Config{
			Colorful:                  false,
			SlowThreshold:             time.Second * 5,
			LogLevel:                  glogger.Error,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}),
		PrepareStmt: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("Database connected", "path", path)
	if err := conn.AutoMigrate(&Bookmark{}, &SearchRecord{}); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	db = conn
	logger.Debug("Database migrated")
	return nil
}

func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func conn(ctx context.Context) (*gorm.DB, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	return db.WithContext(ctx), nil
}
