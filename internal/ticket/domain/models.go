package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
)

// Ticket is issued exactly once per payment. CheckedIn transitions
// false->true exactly once; there is no un-check-in path.
type Ticket struct {
	ID         snowflake.ID       `gorm:"primaryKey" json:"id"`
	TicketCode string             `gorm:"not null;uniqueIndex" json:"ticketCode"`
	QRCodeURL  string             `gorm:"column:qr_code_url" json:"qrCodeUrl,omitempty"`
	CheckedIn  bool               `gorm:"not null;default:false" json:"checkedIn"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	EventID    snowflake.ID       `gorm:"not null;index" json:"eventId"`
	Event      *eventdomain.Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	PaymentID  snowflake.ID       `gorm:"not null;uniqueIndex" json:"paymentId"`
	CreatedAt  time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

type CheckinStatus string

const (
	CheckinSuccess        CheckinStatus = "SUCCESS"
	CheckinAlreadyChecked CheckinStatus = "ALREADY_CHECKED_IN"
	CheckinInvalidTicket  CheckinStatus = "INVALID_TICKET"
	CheckinError          CheckinStatus = "ERROR"
)

// CheckinLog is an append-only audit trail of validation attempts.
// TicketID is nil for attempts against unknown codes.
type CheckinLog struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	Status    CheckinStatus `gorm:"not null" json:"status"`
	TicketID  *snowflake.ID `gorm:"index" json:"ticketId,omitempty"`
	AdminID   snowflake.ID  `gorm:"not null;index" json:"adminId"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}
