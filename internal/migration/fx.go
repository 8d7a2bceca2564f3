package migration

import (
	"github.com/bwmarrin/snowflake"
	admindomain "github.com/passgate/passgate/internal/admin/domain"
	"github.com/passgate/passgate/internal/config"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
	paymentdomain "github.com/passgate/passgate/internal/payment/domain"
	"github.com/passgate/passgate/internal/seed"
	settingsdomain "github.com/passgate/passgate/internal/sitesettings/domain"
	ticketdomain "github.com/passgate/passgate/internal/ticket/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql/sqlite development databases take the schema from
			// the models directly.
			err := conn.AutoMigrate(
				&eventdomain.Event{},
				&paymentdomain.Payment{},
				&ticketdomain.Ticket{},
				&ticketdomain.CheckinLog{},
				&admindomain.Permission{},
				&admindomain.Admin{},
				&settingsdomain.SiteSettings{},
			)
			if err != nil {
				return err
			}
		}

		if err := seed.EnsurePermissions(conn, node); err != nil {
			return err
		}
		if err := seed.EnsureSuperAdmin(conn, node, cfg); err != nil {
			return err
		}
		return seed.EnsureSiteSettings(conn)
	}),
)
