package event

import (
	"github.com/passgate/passgate/internal/event/repository"
	"github.com/passgate/passgate/internal/event/service"
	"go.uber.org/fx"
)

var Module = fx.Module("event",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
