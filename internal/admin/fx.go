package admin

import (
	"github.com/passgate/passgate/internal/admin/repository"
	"github.com/passgate/passgate/internal/admin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("admin",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
