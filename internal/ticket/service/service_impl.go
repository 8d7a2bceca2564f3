package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/ticket/domain"
	"github.com/passgate/passgate/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const codeRetryLimit = 5

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ticket.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Issue(ctx context.Context, tx *gorm.DB, req domain.IssueRequest) (domain.Ticket, error) {
	now := s.clock.Now()
	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		ticket := domain.Ticket{
			ID:         s.genID.Generate(),
			TicketCode: domain.NewTicketCode(),
			Email:      req.Email,
			Phone:      req.Phone,
			EventID:    req.EventID,
			PaymentID:  req.PaymentID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		err := s.repo.Insert(ctx, tx, &ticket)
		if err == nil {
			return ticket, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return domain.Ticket{}, err
		}
		s.log.Warn("ticket code collision, regenerating",
			zap.String("code", ticket.TicketCode),
			zap.Int("attempt", attempt+1),
		)
	}
	return domain.Ticket{}, domain.ErrCodeExhausted
}

func (s *Service) AttachQRCode(ctx context.Context, ticketID snowflake.ID, dataURL string) error {
	return s.repo.SetQRCodeURL(ctx, s.db, ticketID, dataURL)
}

func (s *Service) Validate(ctx context.Context, code string, adminID snowflake.ID) (domain.ValidationResult, error) {
	var result domain.ValidationResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.validateOne(ctx, tx, code, adminID)
		return err
	})
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return result, nil
}

// validateOne runs the single-code check-in inside the given transaction.
// Unknown codes write no log row.
func (s *Service) validateOne(ctx context.Context, tx *gorm.DB, code string, adminID snowflake.ID) (domain.ValidationResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	result := domain.ValidationResult{Code: code}

	ticket, err := s.repo.FindByCode(ctx, tx, code)
	if err != nil {
		return result, err
	}
	if ticket == nil {
		result.Status = domain.CheckinInvalidTicket
		return result, nil
	}

	won := false
	if !ticket.CheckedIn {
		won, err = s.repo.CheckIn(ctx, tx, ticket.ID)
		if err != nil {
			return result, err
		}
	}

	if won {
		ticket.CheckedIn = true
		result.Status = domain.CheckinSuccess
	} else {
		result.Status = domain.CheckinAlreadyChecked
	}
	result.Ticket = ticket

	logRow := domain.CheckinLog{
		ID:        s.genID.Generate(),
		Status:    result.Status,
		TicketID:  &ticket.ID,
		AdminID:   adminID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertLog(ctx, tx, &logRow); err != nil {
		return result, err
	}

	s.log.Info("ticket validated",
		zap.String("code", code),
		zap.String("status", string(result.Status)),
		zap.String("admin_id", adminID.String()),
	)
	return result, nil
}

func (s *Service) BulkValidate(ctx context.Context, codes []string, adminID snowflake.ID) (domain.BulkResult, error) {
	if len(codes) > domain.BulkMaxCodes {
		return domain.BulkResult{}, domain.ErrTooManyCodes
	}

	var result domain.BulkResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, raw := range codes {
			entry := s.bulkEntry(ctx, tx, raw, adminID)
			result.Results = append(result.Results, entry)

			result.Summary.Total++
			switch entry.Status {
			case domain.CheckinSuccess:
				result.Summary.Successful++
			case domain.CheckinAlreadyChecked:
				result.Summary.AlreadyUsed++
			case domain.CheckinInvalidTicket:
				result.Summary.Invalid++
			case domain.CheckinError:
				result.Summary.Failed++
			}
		}
		return nil
	})
	if err != nil {
		return domain.BulkResult{}, err
	}
	return result, nil
}

// bulkEntry isolates one code so a failure never aborts the rest of the
// batch.
func (s *Service) bulkEntry(ctx context.Context, tx *gorm.DB, raw string, adminID snowflake.ID) (entry domain.ValidationResult) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("bulk validation panicked", zap.String("code", code), zap.Any("panic", r))
			entry = domain.ValidationResult{Code: code, Status: domain.CheckinError}
		}
	}()

	entry, err := s.validateOne(ctx, tx, code, adminID)
	if err != nil {
		s.log.Error("bulk validation entry failed", zap.String("code", code), zap.Error(err))
		return domain.ValidationResult{Code: code, Status: domain.CheckinError}
	}
	return entry
}

func (s *Service) Lookup(ctx context.Context, code string) (domain.Ticket, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	ticket, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket == nil {
		return domain.Ticket{}, domain.ErrNotFound
	}
	return *ticket, nil
}

func (s *Service) ByPayment(ctx context.Context, paymentID snowflake.ID) (domain.Ticket, error) {
	ticket, err := s.repo.FindByPaymentID(ctx, s.db, paymentID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if ticket == nil {
		return domain.Ticket{}, domain.ErrNotFound
	}
	return *ticket, nil
}

func (s *Service) ScanStats(ctx context.Context, eventID string) (domain.ScanStats, error) {
	id, err := s.parseEventID(eventID)
	if err != nil {
		return domain.ScanStats{}, err
	}
	total, checkedIn, err := s.repo.StatsByEvent(ctx, s.db, id)
	if err != nil {
		return domain.ScanStats{}, err
	}
	return domain.ScanStats{
		Total:     total,
		CheckedIn: checkedIn,
		Remaining: total - checkedIn,
	}, nil
}

func (s *Service) CheckinList(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	id, err := s.parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, s.db, id, true)
}

func (s *Service) ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	id, err := s.parseEventID(eventID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, s.db, id, false)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, s.db)
}

func (s *Service) CheckedInCount(ctx context.Context) (int64, error) {
	return s.repo.CountCheckedIn(ctx, s.db)
}

func (s *Service) parseEventID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidEventID, value)
	}
	return id, nil
}
