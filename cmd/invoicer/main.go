package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/dr-data/bolt-generated-invoice-app/internal/clock"
	"github.com/dr-data/bolt-generated-invoice-app/internal/config"
	"github.com/dr-data/bolt-generated-invoice-app/internal/invoice"
	invoicedomain "github.com/dr-data/bolt-generated-invoice-app/internal/invoice/domain"
	"github.com/dr-data/bolt-generated-invoice-app/internal/logger"
	"github.com/dr-data/bolt-generated-invoice-app/internal/observability/metrics"
	"github.com/dr-data/bolt-generated-invoice-app/internal/server"
	"github.com/dr-data/bolt-generated-invoice-app/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		metrics.Module,
		invoice.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			return conn.AutoMigrate(&invoicedomain.InvoiceRecord{})
		}),
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
