package pdf

import "context"

// TicketData carries everything the ticket document shows.
type TicketData struct {
	EventName  string
	Venue      string
	Date       string
	TicketCode string
	Amount     string
	Email      string
	QRDataURL  string
}

// RenderResult distinguishes real PDFs from the HTML passthrough fallback.
type RenderResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

type Provider interface {
	// Name identifies the active rendering strategy in logs.
	Name() string
	RenderTicket(ctx context.Context, data TicketData) (RenderResult, error)
}
