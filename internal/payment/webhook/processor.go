package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/config"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
	paymentdomain "github.com/passgate/passgate/internal/payment/domain"
	"github.com/passgate/passgate/internal/providers/email"
	"github.com/passgate/passgate/internal/providers/pdf"
	"github.com/passgate/passgate/internal/providers/qr"
	"github.com/passgate/passgate/internal/providers/sms"
	ticketdomain "github.com/passgate/passgate/internal/ticket/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMalformedPayload = errors.New("malformed_webhook_payload")
	ErrUnknownEvent     = errors.New("webhook_event_not_found")

	errAlreadyProcessed = errors.New("reference already processed")
)

type Status string

const (
	StatusIgnored   Status = "IGNORED"
	StatusDuplicate Status = "DUPLICATE"
	StatusProcessed Status = "PROCESSED"
)

type Result struct {
	Status Status
	Ticket *ticketdomain.Ticket
	Event  *eventdomain.Event
}

type Params struct {
	fx.In

	Config   config.Config
	Delivery *config.DeliveryConfigHolder
	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock

	Payments paymentdomain.Repository
	Events   eventdomain.Repository
	Tickets  ticketdomain.Service

	PDF   pdf.Provider
	SMS   sms.Provider
	Email email.Provider
}

// Processor turns verified charge.success webhooks into payment+ticket
// rows and fires the delivery side effects.
type Processor struct {
	secret   string
	delivery *config.DeliveryConfigHolder
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock

	payments paymentdomain.Repository
	events   eventdomain.Repository
	tickets  ticketdomain.Service

	pdf   pdf.Provider
	sms   sms.Provider
	email email.Provider
}

func New(p Params) *Processor {
	return &Processor{
		secret:   p.Config.PaystackSecretKey,
		delivery: p.Delivery,
		db:       p.DB,
		log:      p.Log.Named("payment.webhook"),
		genID:    p.GenID,
		clock:    p.Clock,
		payments: p.Payments,
		events:   p.Events,
		tickets:  p.Tickets,
		pdf:      p.PDF,
		sms:      p.SMS,
		email:    p.Email,
	}
}

// VerifySignature authenticates the raw body against the provider secret.
func (p *Processor) VerifySignature(body []byte, signature string) error {
	return VerifySignature(p.secret, body, signature)
}

// Process handles an authenticated webhook body. A transactional failure
// is returned as an error so the provider retries; once the transaction
// has committed delivery failures are logged only.
func (p *Processor) Process(ctx context.Context, body []byte) (Result, error) {
	var evt payload
	if err := json.Unmarshal(body, &evt); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if evt.Event != ChargeSuccessEvent {
		p.log.Debug("webhook ignored", zap.String("event", evt.Event))
		return Result{Status: StatusIgnored}, nil
	}

	data := evt.Data
	if strings.TrimSpace(data.Reference) == "" {
		return Result{}, fmt.Errorf("%w: missing reference", ErrMalformedPayload)
	}
	eventID, err := snowflake.ParseString(strings.TrimSpace(data.Metadata.EventID))
	if err != nil || eventID == 0 {
		return Result{}, fmt.Errorf("%w: bad eventId %q", ErrMalformedPayload, data.Metadata.EventID)
	}
	phone, emailAddr := data.contactInfo()
	amount := decimal.NewFromInt(data.AmountMinor).Div(decimal.NewFromInt(100))

	var (
		ticket   ticketdomain.Ticket
		event    *eventdomain.Event
		txErr    error
		now      = p.clock.Now()
		txResult = StatusProcessed
	)
	txErr = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := p.payments.FindByReference(ctx, tx, data.Reference)
		if err != nil {
			return err
		}
		if existing != nil {
			return errAlreadyProcessed
		}

		event, err = p.events.FindByID(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
		}

		payment := paymentdomain.Payment{
			ID:        p.genID.Generate(),
			Reference: data.Reference,
			Amount:    amount,
			Method:    paymentdomain.MethodFromChannel(data.Authorization.Channel),
			Status:    paymentdomain.StatusSuccess,
			Email:     emailAddr,
			Phone:     phone,
			Metadata:  datatypes.JSON(data.Metadata.Raw),
			EventID:   eventID,
			CreatedAt: now,
		}
		if err := p.payments.Insert(ctx, tx, &payment); err != nil {
			return err
		}

		ticket, err = p.tickets.Issue(ctx, tx, ticketdomain.IssueRequest{
			EventID:   eventID,
			PaymentID: payment.ID,
			Email:     emailAddr,
			Phone:     phone,
		})
		return err
	})
	if txErr != nil {
		if errors.Is(txErr, errAlreadyProcessed) {
			p.log.Info("webhook replay ignored", zap.String("reference", data.Reference))
			return Result{Status: StatusDuplicate}, nil
		}
		return Result{}, txErr
	}

	p.log.Info("ticket issued",
		zap.String("reference", data.Reference),
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("event_id", eventID.String()),
	)

	p.deliver(ctx, &ticket, event, amount)

	return Result{Status: txResult, Ticket: &ticket, Event: event}, nil
}

// deliver runs the post-commit side effects. Each is best effort; a
// failure is logged and never propagated to the webhook response.
func (p *Processor) deliver(ctx context.Context, ticket *ticketdomain.Ticket, event *eventdomain.Event, amount decimal.Decimal) {
	log := p.log.With(zap.String("ticket_id", ticket.ID.String()))

	qrURL, err := qr.DataURL(ticket.TicketCode)
	if err != nil {
		log.Warn("qr generation failed", zap.Error(err))
	} else {
		if err := p.tickets.AttachQRCode(ctx, ticket.ID, qrURL); err != nil {
			log.Warn("qr persist failed", zap.Error(err))
		} else {
			ticket.QRCodeURL = qrURL
		}
	}

	delivery := p.delivery.Get()

	if ticket.Phone != "" {
		body := delivery.Render(delivery.SMSTemplate, event.Name, ticket.TicketCode)
		if err := p.sms.Send(ctx, ticket.Phone, body); err != nil {
			log.Warn("sms delivery failed", zap.Error(err))
		}
	}

	if ticket.Email == "" {
		return
	}

	rendered, err := p.pdf.RenderTicket(ctx, pdf.TicketData{
		EventName:  event.Name,
		Venue:      event.Venue,
		Date:       event.StartDate.Format("Mon, 2 Jan 2006 15:04"),
		TicketCode: ticket.TicketCode,
		Amount:     amount.StringFixed(2),
		Email:      ticket.Email,
		QRDataURL:  ticket.QRCodeURL,
	})
	if err != nil {
		log.Warn("ticket render failed", zap.Error(err))
	}

	subject := delivery.Render(delivery.EmailSubject, event.Name, ticket.TicketCode)
	htmlBody := fmt.Sprintf(
		"<p>Your ticket for <strong>%s</strong> is confirmed.</p><p>Ticket code: <strong>%s</strong></p>",
		event.Name, ticket.TicketCode,
	)
	if err != nil || len(rendered.Data) == 0 {
		if sendErr := p.email.Send(ctx, []string{ticket.Email}, subject, htmlBody); sendErr != nil {
			log.Warn("email delivery failed", zap.Error(sendErr))
		}
		return
	}
	sendErr := p.email.SendWithAttachment(ctx, []string{ticket.Email}, subject, htmlBody, email.Attachment{
		Filename:    rendered.Filename,
		ContentType: rendered.ContentType,
		Data:        rendered.Data,
	})
	if sendErr != nil {
		log.Warn("email delivery failed", zap.Error(sendErr))
	}
}
