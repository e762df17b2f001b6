package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/abhijitabd5/sti-academy/internal/clock"
	"github.com/abhijitabd5/sti-academy/internal/config"
	"github.com/abhijitabd5/sti-academy/internal/logger"
	"github.com/abhijitabd5/sti-academy/internal/migration"
	"github.com/abhijitabd5/sti-academy/internal/observability"
	"github.com/abhijitabd5/sti-academy/internal/server"
	"github.com/abhijitabd5/sti-academy/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Schema and seed data
		migration.Module,

		// HTTP surface and domain modules
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
