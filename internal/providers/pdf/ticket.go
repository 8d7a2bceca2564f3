package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/passgate/passgate/internal/providers/qr"
)

// MarotoProvider renders the ticket programmatically, no browser needed.
type MarotoProvider struct{}

func NewMaroto() *MarotoProvider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) Name() string { return "maroto" }

func (p *MarotoProvider) RenderTicket(ctx context.Context, data TicketData) (RenderResult, error) {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(16,
		text.NewCol(12, data.EventName, props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(10,
		text.NewCol(12, data.Venue+"  |  "+data.Date, props.Text{
			Size:  11,
			Align: align.Center,
		}),
	)

	if png, ok := qr.PNGBytes(data.QRDataURL); ok {
		m.AddRow(60,
			col.New(3),
			image.NewFromBytesCol(6, png, extension.Png, props.Rect{
				Center:  true,
				Percent: 90,
			}),
			col.New(3),
		)
	}

	m.AddRow(18,
		text.NewCol(12, data.TicketCode, props.Text{
			Size:  26,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Paid "+data.Amount, props.Text{
			Size:  10,
			Align: align.Center,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Present this code or QR at the entrance. Valid for one entry.", props.Text{
			Size:  8,
			Align: align.Center,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return RenderResult{}, err
	}
	return RenderResult{
		Data:        doc.GetBytes(),
		ContentType: "application/pdf",
		Filename:    "ticket-" + data.TicketCode + ".pdf",
	}, nil
}
