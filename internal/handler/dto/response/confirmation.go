package response

import (
	"zurbo/internal/usecase/commands"
)

const releasePendingMessage = "Confirmado. A liberação do pagamento está pendente."

type ConfirmResponse struct {
	OrderID         string  `json:"order_id"`
	State           string  `json:"state"`
	AwaitingParty   *string `json:"awaiting_party,omitempty"`
	Released        bool    `json:"released"`
	ReleasePending  bool    `json:"release_pending"`
	EscrowPaymentID *string `json:"escrow_payment_id,omitempty"`
	Message         string  `json:"message,omitempty"`
}

func FromConfirmResult(r *commands.ConfirmResult) *ConfirmResponse {
	res := &ConfirmResponse{
		OrderID:        r.OrderID.String(),
		State:          string(r.State.Kind),
		Released:       r.Released,
		ReleasePending: r.ReleasePending,
	}
	if r.State.Awaiting != "" {
		awaiting := string(r.State.Awaiting)
		res.AwaitingParty = &awaiting
	}
	if r.EscrowPaymentID != nil {
		id := r.EscrowPaymentID.String()
		res.EscrowPaymentID = &id
	}
	if r.ReleasePending {
		res.Message = releasePendingMessage
	}
	return res
}
