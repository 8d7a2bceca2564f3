package ticket

import (
	"github.com/passgate/passgate/internal/ticket/repository"
	"github.com/passgate/passgate/internal/ticket/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ticket",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
