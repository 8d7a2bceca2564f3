package sitesettings

import (
	"github.com/passgate/passgate/internal/sitesettings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sitesettings",
	fx.Provide(service.New),
)
