package queries

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	DisplayName string     `json:"display_name"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

type ServiceRequestView struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type EscrowView struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	LastError   *string   `json:"last_error,omitempty"`
}

type ConfirmationView struct {
	OrderID           uuid.UUID   `json:"order_id"`
	PaymentStatus     string      `json:"payment_status"`
	State             string      `json:"state"`
	AwaitingParty     *string     `json:"awaiting_party,omitempty"`
	ActorParty        *string     `json:"actor_party,omitempty"`
	ActorConfirmed    bool        `json:"actor_confirmed"`
	ClientConfirmed   bool        `json:"client_confirmed"`
	ProviderConfirmed bool        `json:"provider_confirmed"`
	ReleasedAt        *time.Time  `json:"released_at,omitempty"`
	Escrow            *EscrowView `json:"escrow,omitempty"`
}
