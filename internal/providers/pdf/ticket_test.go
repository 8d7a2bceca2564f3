package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/passgate/passgate/internal/providers/qr"
	"go.uber.org/zap"
)

func testTicketData(t *testing.T) TicketData {
	t.Helper()
	qrURL, err := qr.DataURL("AB12CD")
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	return TicketData{
		EventName:  "Summer Beach Fest",
		Venue:      "Pirates Beach",
		Date:       "Sat, 14 Jun 2025",
		TicketCode: "AB12CD",
		Amount:     "KES 1,500.00",
		Email:      "guest@example.com",
		QRDataURL:  qrURL,
	}
}

func TestMarotoRendersPDF(t *testing.T) {
	result, err := NewMaroto().RenderTicket(context.Background(), testTicketData(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.ContentType != "application/pdf" {
		t.Errorf("content type = %q", result.ContentType)
	}
	if !bytes.HasPrefix(result.Data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestHTMLFallbackContainsCode(t *testing.T) {
	result, err := (&HTMLProvider{}).RenderTicket(context.Background(), testTicketData(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.ContentType != "text/html" {
		t.Errorf("content type = %q", result.ContentType)
	}
	if !bytes.Contains(result.Data, []byte("AB12CD")) {
		t.Fatal("ticket code missing from HTML")
	}
}

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) RenderTicket(ctx context.Context, data TicketData) (RenderResult, error) {
	return RenderResult{}, context.DeadlineExceeded
}

func TestChainFallsThrough(t *testing.T) {
	chain := &Chain{
		log:       zap.NewNop(),
		providers: []Provider{failingProvider{}, &HTMLProvider{}},
	}
	result, err := chain.RenderTicket(context.Background(), testTicketData(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.ContentType != "text/html" {
		t.Fatalf("chain did not fall through, got %q", result.ContentType)
	}
}
