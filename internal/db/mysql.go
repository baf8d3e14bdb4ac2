package db

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/model"
)

// NewMySQL returns a connected GORM DB instance with query tracing.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("otelgorm plugin: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables the client needs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.StorageEntry{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
