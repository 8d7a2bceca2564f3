package auth

import (
	"github.com/passgate/passgate/internal/auth/service"
	"github.com/passgate/passgate/internal/auth/session"
	"github.com/passgate/passgate/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(token.NewSigner),
	fx.Provide(session.NewManager),
	fx.Provide(service.New),
)
