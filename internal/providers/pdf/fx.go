package pdf

import (
	"context"

	"github.com/passgate/passgate/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(NewFromConfig),
)

// Chain tries each strategy in order until one renders.
type Chain struct {
	log       *zap.Logger
	providers []Provider
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) RenderTicket(ctx context.Context, data TicketData) (RenderResult, error) {
	var lastErr error
	for _, p := range c.providers {
		result, err := p.RenderTicket(ctx, data)
		if err == nil {
			return result, nil
		}
		c.log.Warn("ticket render strategy failed",
			zap.String("strategy", p.Name()),
			zap.Error(err),
		)
		lastErr = err
	}
	return RenderResult{}, lastErr
}

// NewFromConfig probes for a browser at startup and builds the fallback
// chain: headless browser, programmatic PDF, raw HTML.
func NewFromConfig(cfg config.Config, log *zap.Logger) Provider {
	log = log.Named("providers.pdf")

	var providers []Provider
	if path, ok := FindChrome(cfg.ChromePath); ok {
		log.Info("headless browser available", zap.String("path", path))
		providers = append(providers, NewChrome(path))
	} else {
		log.Info("no headless browser found, using programmatic renderer")
	}
	providers = append(providers, NewMaroto(), &HTMLProvider{})

	return &Chain{log: log, providers: providers}
}
