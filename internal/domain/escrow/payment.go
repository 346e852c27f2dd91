package escrow

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAuthorized Status = "authorized"
	// StatusReleasing marks a record claimed by the one caller allowed to
	// contact the gateway.
	StatusReleasing Status = "releasing"
	StatusCaptured  Status = "captured"
	StatusRefunded  Status = "refunded"
)

const DefaultCurrency = "BRL"

type Payment struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	AmountCents       int64
	Currency          string
	Status            Status
	ProviderReference *string
	CapturedAt        *time.Time
	LastError         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *Payment) IsCaptured() bool {
	return p.Status == StatusCaptured
}

func (p *Payment) IsAuthorized() bool {
	return p.Status == StatusAuthorized
}

func (p *Payment) IsReleasing() bool {
	return p.Status == StatusReleasing
}

// FormatAmount renders the amount as Brazilian currency, e.g. "R$ 150,00".
func (p *Payment) FormatAmount() string {
	return FormatBRL(p.AmountCents)
}
