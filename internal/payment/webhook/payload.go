package webhook

import (
	"encoding/json"
	"strings"
)

// ChargeSuccessEvent is the provider event type that issues a ticket.
const ChargeSuccessEvent = "charge.success"

type payload struct {
	Event string      `json:"event"`
	Data  payloadData `json:"data"`
}

type payloadData struct {
	Reference     string        `json:"reference"`
	AmountMinor   int64         `json:"amount"`
	Customer      customer      `json:"customer"`
	Metadata      metadata      `json:"metadata"`
	Authorization authorization `json:"authorization"`
}

type customer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// metadata tolerates both string and numeric eventId encodings. Raw keeps
// the original object for the payment audit column.
type metadata struct {
	EventID string `json:"eventId"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Raw     json.RawMessage
}

func (m *metadata) UnmarshalJSON(data []byte) error {
	var raw struct {
		EventID json.Number `json:"eventId"`
		Phone   string      `json:"phone"`
		Email   string      `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.EventID = raw.EventID.String()
	m.Phone = raw.Phone
	m.Email = raw.Email
	m.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type authorization struct {
	Channel string `json:"channel"`
}

// contactInfo resolves phone and email metadata-first with the customer
// object as fallback. Either may come back empty.
func (d payloadData) contactInfo() (phone, email string) {
	phone = strings.TrimSpace(d.Metadata.Phone)
	if phone == "" {
		phone = strings.TrimSpace(d.Customer.Phone)
	}
	email = strings.TrimSpace(d.Metadata.Email)
	if email == "" {
		email = strings.TrimSpace(d.Customer.Email)
	}
	return phone, email
}
