package payment

import (
	"github.com/passgate/passgate/internal/payment/repository"
	"github.com/passgate/passgate/internal/payment/service"
	"github.com/passgate/passgate/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(webhook.New),
)
