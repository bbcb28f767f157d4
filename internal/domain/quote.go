package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// QuoteStatus represents the lifecycle state of a provider quote
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// Quote is a provider's priced offer for a custom service request.
// Accepting a quote starts a booking wizard with the slot and price pre-filled
type Quote struct {
	ID         int64
	ClientID   int64
	ProviderID int64
	ServiceID  int64

	BasePrice float64
	TravelFee float64

	ProposedDate  time.Time
	ProposedTime  types.TimeString
	DurationHours int

	Status    QuoteStatus
	ExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAcceptable returns true if the quote can still be accepted by the client
func (q *Quote) IsAcceptable(now time.Time) bool {
	if q.Status != QuoteStatusPending {
		return false
	}
	if q.ExpiresAt != nil && now.After(*q.ExpiresAt) {
		return false
	}
	return true
}
