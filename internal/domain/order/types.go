package order

type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "pending"
	PaymentHeldInEscrow PaymentStatus = "held_in_escrow"
	PaymentReleased     PaymentStatus = "released"
	PaymentRefunded     PaymentStatus = "refunded"
	PaymentCancelled    PaymentStatus = "cancelled"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentHeldInEscrow, PaymentReleased, PaymentRefunded, PaymentCancelled:
		return true
	default:
		return false
	}
}

// Party is the side of the order an actor confirms for.
type Party string

const (
	PartyClient   Party = "client"
	PartyProvider Party = "provider"
)

func (p Party) Other() Party {
	if p == PartyClient {
		return PartyProvider
	}
	return PartyClient
}

type StateKind string

const (
	StateNotApplicable  StateKind = "not_applicable"
	StateAwaitingBoth   StateKind = "awaiting_both"
	StateAwaitingOne    StateKind = "awaiting_one"
	StateReleasePending StateKind = "release_pending"
	StateReleased       StateKind = "released"
)

// ConfirmationState is derived from an order. Awaiting names the party whose
// confirmation is still missing and is only set for StateAwaitingOne.
type ConfirmationState struct {
	Kind     StateKind
	Awaiting Party
}

func (s ConfirmationState) IsTerminal() bool {
	return s.Kind == StateReleased
}

func (s ConfirmationState) String() string {
	if s.Kind == StateAwaitingOne {
		return string(s.Kind) + "(" + string(s.Awaiting) + ")"
	}
	return string(s.Kind)
}
