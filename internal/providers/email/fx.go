package email

import (
	"github.com/passgate/passgate/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, holder *config.DeliveryConfigHolder, log *zap.Logger) Provider {
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
		log.Named("providers.email").Info("smtp not configured, email delivery disabled")
		return &NoOpProvider{}
	}
	return NewSMTP(Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: holder.Get().EmailFromName,
	})
}
