// Package db wires the local sqlite store that keeps the history of
// exported invoices.
package db

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dr-data/bolt-generated-invoice-app/internal/config"
)

// Module provides the gorm connection to the rest of the app.
var Module = fx.Module("db",
	fx.Provide(Open),
)

// Open opens (and creates if needed) the sqlite database file.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Database.Path, err)
	}
	log.Named("db").Info("sqlite opened", zap.String("path", cfg.Database.Path))
	return conn, nil
}
