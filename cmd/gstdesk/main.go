package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/finhive/gstdesk/internal/clock"
	"github.com/finhive/gstdesk/internal/config"
	"github.com/finhive/gstdesk/internal/logger"
	"github.com/finhive/gstdesk/internal/migration"
	"github.com/finhive/gstdesk/internal/server"
	"github.com/finhive/gstdesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,
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
