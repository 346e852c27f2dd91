package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotOrderParty        = errors.New("actor is neither the client nor the provider of the order")
	ErrNotApplicable        = errors.New("order payment is not held in escrow")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInconsistentOrder    = errors.New("order released without both confirmations")
	ErrSameParty            = errors.New("client and provider must differ")
)

// Order is the subset of a service order the confirmation workflow needs.
// Confirmation flags only ever go from false to true.
type Order struct {
	id                uuid.UUID
	clientID          uuid.UUID
	providerID        uuid.UUID
	paymentStatus     PaymentStatus
	clientConfirmed   bool
	providerConfirmed bool
	releasedAt        *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewOrder(clientID, providerID uuid.UUID, status PaymentStatus, now time.Time) (*Order, error) {
	if clientID == providerID {
		return nil, ErrSameParty
	}
	if !status.IsValid() || status == PaymentReleased {
		return nil, ErrInvalidPaymentStatus
	}
	return &Order{
		id:            uuid.New(),
		clientID:      clientID,
		providerID:    providerID,
		paymentStatus: status,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructOrder rejects combinations the workflow can never produce.
func ReconstructOrder(
	id, clientID, providerID uuid.UUID,
	status PaymentStatus,
	clientConfirmed, providerConfirmed bool,
	releasedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidPaymentStatus
	}
	if status == PaymentReleased && !(clientConfirmed && providerConfirmed) {
		return nil, ErrInconsistentOrder
	}
	return &Order{
		id:                id,
		clientID:          clientID,
		providerID:        providerID,
		paymentStatus:     status,
		clientConfirmed:   clientConfirmed,
		providerConfirmed: providerConfirmed,
		releasedAt:        releasedAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) ClientID() uuid.UUID          { return o.clientID }
func (o *Order) ProviderID() uuid.UUID        { return o.providerID }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) ClientConfirmed() bool        { return o.clientConfirmed }
func (o *Order) ProviderConfirmed() bool      { return o.providerConfirmed }
func (o *Order) ReleasedAt() *time.Time       { return o.releasedAt }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }

func (o *Order) PartyOf(actorID uuid.UUID) (Party, error) {
	switch actorID {
	case o.clientID:
		return PartyClient, nil
	case o.providerID:
		return PartyProvider, nil
	default:
		return "", ErrNotOrderParty
	}
}

func (o *Order) ConfirmedBy(p Party) bool {
	if p == PartyClient {
		return o.clientConfirmed
	}
	return o.providerConfirmed
}

func (o *Order) BothConfirmed() bool {
	return o.clientConfirmed && o.providerConfirmed
}

func (o *Order) IsReleased() bool {
	return o.paymentStatus == PaymentReleased
}

// CanConfirm reports whether a confirmation may still change anything.
func (o *Order) CanConfirm() error {
	if o.paymentStatus != PaymentHeldInEscrow {
		return ErrNotApplicable
	}
	return nil
}

// Confirm sets the flag for p. Repeating it is a no-op.
func (o *Order) Confirm(p Party, now time.Time) error {
	if err := o.CanConfirm(); err != nil {
		return err
	}
	if o.ConfirmedBy(p) {
		return nil
	}
	if p == PartyClient {
		o.clientConfirmed = true
	} else {
		o.providerConfirmed = true
	}
	o.updatedAt = now
	return nil
}

func (o *Order) MarkReleased(now time.Time) error {
	if err := o.CanConfirm(); err != nil {
		return err
	}
	if !o.BothConfirmed() {
		return ErrInconsistentOrder
	}
	o.paymentStatus = PaymentReleased
	at := now
	o.releasedAt = &at
	o.updatedAt = now
	return nil
}

func (o *Order) State() ConfirmationState {
	switch o.paymentStatus {
	case PaymentReleased:
		return ConfirmationState{Kind: StateReleased}
	case PaymentHeldInEscrow:
		switch {
		case o.clientConfirmed && o.providerConfirmed:
			return ConfirmationState{Kind: StateReleasePending}
		case o.clientConfirmed:
			return ConfirmationState{Kind: StateAwaitingOne, Awaiting: PartyProvider}
		case o.providerConfirmed:
			return ConfirmationState{Kind: StateAwaitingOne, Awaiting: PartyClient}
		default:
			return ConfirmationState{Kind: StateAwaitingBoth}
		}
	default:
		return ConfirmationState{Kind: StateNotApplicable}
	}
}
