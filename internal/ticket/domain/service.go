package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type IssueRequest struct {
	EventID   snowflake.ID
	PaymentID snowflake.ID
	Email     string
	Phone     string
}

// ValidationResult is the per-code outcome of a check-in attempt.
type ValidationResult struct {
	Code   string        `json:"code"`
	Status CheckinStatus `json:"status"`
	Ticket *Ticket       `json:"ticket,omitempty"`
}

type BulkSummary struct {
	Total       int `json:"total"`
	Successful  int `json:"successful"`
	Failed      int `json:"failed"`
	AlreadyUsed int `json:"alreadyUsed"`
	Invalid     int `json:"invalid"`
}

type BulkResult struct {
	Results []ValidationResult `json:"results"`
	Summary BulkSummary        `json:"summary"`
}

type ScanStats struct {
	Total     int64 `json:"total"`
	CheckedIn int64 `json:"checkedIn"`
	Remaining int64 `json:"remaining"`
}

const BulkMaxCodes = 50

type Service interface {
	// Issue creates the ticket inside the caller's transaction,
	// regenerating the code on a duplicate-key violation.
	Issue(ctx context.Context, tx *gorm.DB, req IssueRequest) (Ticket, error)

	// AttachQRCode persists the rendered QR data-URL after the issuing
	// transaction has committed.
	AttachQRCode(ctx context.Context, ticketID snowflake.ID, dataURL string) error

	Validate(ctx context.Context, code string, adminID snowflake.ID) (ValidationResult, error)
	BulkValidate(ctx context.Context, codes []string, adminID snowflake.ID) (BulkResult, error)

	Lookup(ctx context.Context, code string) (Ticket, error)

	// ByPayment resolves the ticket issued for a payment, event included.
	// ErrNotFound while the webhook transaction has not landed yet.
	ByPayment(ctx context.Context, paymentID snowflake.ID) (Ticket, error)
	ScanStats(ctx context.Context, eventID string) (ScanStats, error)
	CheckinList(ctx context.Context, eventID string) ([]Ticket, error)
	ListByEvent(ctx context.Context, eventID string) ([]Ticket, error)
	Count(ctx context.Context) (int64, error)
	CheckedInCount(ctx context.Context) (int64, error)
}

var (
	ErrNotFound         = errors.New("ticket_not_found")
	ErrAlreadyCheckedIn = errors.New("ticket_already_checked_in")
	ErrTooManyCodes     = errors.New("too_many_codes")
	ErrCodeExhausted    = errors.New("ticket_code_exhausted")
	ErrInvalidEventID   = errors.New("invalid_event_id")
)
