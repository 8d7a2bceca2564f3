package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/admin"
	"github.com/passgate/passgate/internal/auth"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/config"
	"github.com/passgate/passgate/internal/event"
	"github.com/passgate/passgate/internal/migration"
	"github.com/passgate/passgate/internal/observability"
	"github.com/passgate/passgate/internal/payment"
	"github.com/passgate/passgate/internal/providers"
	"github.com/passgate/passgate/internal/ratelimit"
	"github.com/passgate/passgate/internal/server"
	"github.com/passgate/passgate/internal/sitesettings"
	"github.com/passgate/passgate/internal/ticket"
	"github.com/passgate/passgate/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		ratelimit.Module,
		providers.Module,

		// Functional domains
		auth.Module,
		event.Module,
		payment.Module,
		ticket.Module,
		admin.Module,
		sitesettings.Module,

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
