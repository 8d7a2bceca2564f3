package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/config"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
	eventrepo "github.com/passgate/passgate/internal/event/repository"
	paymentdomain "github.com/passgate/passgate/internal/payment/domain"
	paymentrepo "github.com/passgate/passgate/internal/payment/repository"
	"github.com/passgate/passgate/internal/providers/email"
	"github.com/passgate/passgate/internal/providers/pdf"
	"github.com/passgate/passgate/internal/providers/sms"
	ticketdomain "github.com/passgate/passgate/internal/ticket/domain"
	ticketrepo "github.com/passgate/passgate/internal/ticket/repository"
	ticketservice "github.com/passgate/passgate/internal/ticket/service"
	"github.com/passgate/passgate/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "sk_test_webhook_secret"

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestProcessor(t *testing.T) (*Processor, *gorm.DB, eventdomain.Event) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&eventdomain.Event{},
		&paymentdomain.Payment{},
		&ticketdomain.Ticket{},
		&ticketdomain.CheckinLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(4)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	event := eventdomain.Event{
		ID:        node.Generate(),
		Name:      "Summer Beach Fest",
		Slug:      "summer-beach-fest",
		Venue:     "Pirates Beach",
		StartDate: time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 14, 23, 0, 0, 0, time.UTC),
		Price:     decimal.NewFromInt(1500),
		Status:    eventdomain.StatusUpcoming,
	}
	if err := conn.Create(&event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	tickets := ticketservice.New(ticketservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  ticketrepo.Provide(),
	})

	processor := New(Params{
		Config:   config.Config{PaystackSecretKey: testSecret},
		Delivery: config.NewStaticDeliveryConfigHolder(config.DefaultDeliveryConfig()),
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clk,
		Payments: paymentrepo.Provide(),
		Events:   eventrepo.Provide(),
		Tickets:  tickets,
		PDF:      &pdf.HTMLProvider{},
		SMS:      &sms.NoOpProvider{},
		Email:    &email.NoOpProvider{},
	})
	return processor, conn, event
}

func chargeSuccessBody(eventID snowflake.ID, reference string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"charge.success","data":{"reference":%q,"amount":150000,"customer":{"email":"a@b.com"},"metadata":{"eventId":%q,"phone":"254700000001"},"authorization":{"channel":"mobile_money"}}}`,
		reference, eventID.String(),
	))
}

func TestVerifySignature(t *testing.T) {
	p, _, _ := newTestProcessor(t)
	body := []byte(`{"event":"charge.success"}`)

	if err := p.VerifySignature(body, ""); err != ErrMissingSignature {
		t.Errorf("empty header: got %v, want ErrMissingSignature", err)
	}
	if err := p.VerifySignature(body, "deadbeef"); err != ErrInvalidSignature {
		t.Errorf("bad signature: got %v, want ErrInvalidSignature", err)
	}
	if err := p.VerifySignature(body, sign(body)); err != nil {
		t.Errorf("valid signature rejected: %v", err)
	}
}

func TestProcessIssuesPaymentAndTicket(t *testing.T) {
	p, conn, event := newTestProcessor(t)

	result, err := p.Process(context.Background(), chargeSuccessBody(event.ID, "TX1"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Status != StatusProcessed {
		t.Fatalf("status = %q, want PROCESSED", result.Status)
	}
	if result.Ticket == nil || result.Ticket.EventID != event.ID {
		t.Fatalf("ticket = %+v", result.Ticket)
	}

	var payment paymentdomain.Payment
	if err := conn.First(&payment, "reference = ?", "TX1").Error; err != nil {
		t.Fatalf("payment row: %v", err)
	}
	if !payment.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("amount = %s, want 1500 (minor/100)", payment.Amount)
	}
	if payment.Method != paymentdomain.MethodPaystackMpesa {
		t.Errorf("method = %q, want PAYSTACK_MPESA for mobile_money", payment.Method)
	}
	if payment.Phone != "254700000001" {
		t.Errorf("phone = %q, want metadata phone", payment.Phone)
	}
	if payment.Email != "a@b.com" {
		t.Errorf("email = %q, want customer fallback", payment.Email)
	}

	// QR persisted post-commit.
	var ticket ticketdomain.Ticket
	if err := conn.First(&ticket, "id = ?", result.Ticket.ID).Error; err != nil {
		t.Fatalf("ticket row: %v", err)
	}
	if ticket.QRCodeURL == "" {
		t.Error("qr data-url not persisted")
	}
}

func TestProcessReplayIsIdempotent(t *testing.T) {
	p, conn, event := newTestProcessor(t)
	body := chargeSuccessBody(event.ID, "TX1")
	ctx := context.Background()

	if _, err := p.Process(ctx, body); err != nil {
		t.Fatalf("first process: %v", err)
	}
	for i := 0; i < 3; i++ {
		result, err := p.Process(ctx, body)
		if err != nil {
			t.Fatalf("replay %d: %v", i, err)
		}
		if result.Status != StatusDuplicate {
			t.Fatalf("replay %d status = %q, want DUPLICATE", i, result.Status)
		}
	}

	var payments, tickets int64
	conn.Model(&paymentdomain.Payment{}).Count(&payments)
	conn.Model(&ticketdomain.Ticket{}).Count(&tickets)
	if payments != 1 || tickets != 1 {
		t.Fatalf("rows: payments=%d tickets=%d, want exactly one of each", payments, tickets)
	}
}

func TestProcessIgnoresOtherEvents(t *testing.T) {
	p, conn, _ := newTestProcessor(t)

	result, err := p.Process(context.Background(), []byte(`{"event":"transfer.success","data":{}}`))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Status != StatusIgnored {
		t.Fatalf("status = %q, want IGNORED", result.Status)
	}

	var payments int64
	conn.Model(&paymentdomain.Payment{}).Count(&payments)
	if payments != 0 {
		t.Fatalf("payments = %d, want 0", payments)
	}
}

func TestProcessRejectsUnknownEvent(t *testing.T) {
	p, _, _ := newTestProcessor(t)

	_, err := p.Process(context.Background(), chargeSuccessBody(snowflake.ID(999999999), "TX2"))
	if err == nil {
		t.Fatal("expected error for unknown event id")
	}
}

func TestProcessRejectsMalformedPayload(t *testing.T) {
	p, _, event := newTestProcessor(t)

	cases := []string{
		`not json`,
		`{"event":"charge.success","data":{"amount":100,"metadata":{"eventId":"` + event.ID.String() + `"}}}`,
		`{"event":"charge.success","data":{"reference":"TX3","amount":100,"metadata":{"eventId":"abc"}}}`,
	}
	for i, body := range cases {
		if _, err := p.Process(context.Background(), []byte(body)); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
