package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Method string

const (
	MethodPaystackMpesa Method = "PAYSTACK_MPESA"
	MethodPaystackCard  Method = "PAYSTACK_CARD"
)

// MethodFromChannel classifies the provider's authorization channel.
func MethodFromChannel(channel string) Method {
	if channel == "mobile_money" {
		return MethodPaystackMpesa
	}
	return MethodPaystackCard
}

type Status string

const (
	StatusSuccess Status = "SUCCESS"
)

// Payment records one settled provider transaction. Reference is the
// idempotency key for webhook processing. Amount is stored in major
// currency units.
type Payment struct {
	ID        snowflake.ID       `gorm:"primaryKey" json:"id"`
	Reference string             `gorm:"not null;uniqueIndex" json:"reference"`
	Amount    decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    Method             `gorm:"not null" json:"method"`
	Status    Status             `gorm:"not null" json:"status"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone,omitempty"`
	Metadata  datatypes.JSON     `json:"metadata,omitempty"`
	EventID   snowflake.ID       `gorm:"not null;index" json:"eventId"`
	Event     *eventdomain.Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	CreatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}
