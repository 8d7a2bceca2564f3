package providers

import (
	"github.com/passgate/passgate/internal/providers/email"
	"github.com/passgate/passgate/internal/providers/image"
	"github.com/passgate/passgate/internal/providers/paystack"
	"github.com/passgate/passgate/internal/providers/pdf"
	"github.com/passgate/passgate/internal/providers/sms"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	fx.Provide(paystack.New),
	email.Module,
	image.Module,
	sms.Module,
	pdf.Module,
)
