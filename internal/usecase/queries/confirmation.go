package queries

//go:generate mockgen -source=confirmation.go -destination=../../../tests/mock/queries/confirmation_mock.go -package=queriesmock

import (
	"context"

	"zurbo/internal/domain/escrow"
	"zurbo/internal/domain/order"
	"zurbo/internal/domain/user"
	"zurbo/internal/infra"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.ErrOrderNotFound

type ConfirmationQueries interface {
	Status(ctx context.Context, orderID, actorID uuid.UUID, actorRole user.Role) (*ConfirmationView, error)
}

type confirmationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewConfirmationQueries(uow shared.UnitOfWork) ConfirmationQueries {
	return &confirmationQueriesImpl{uow: uow}
}

func (q *confirmationQueriesImpl) Status(ctx context.Context, orderID, actorID uuid.UUID, actorRole user.Role) (*ConfirmationView, error) {
	var (
		o       *order.Order
		payment *escrow.Payment
	)
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if err != nil {
			return err
		}
		payment, err = tx.Escrows().CurrentByOrderID(ctx, tx.DB(), orderID)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	party, partyErr := o.PartyOf(actorID)
	if partyErr != nil && actorRole != user.RoleAdmin {
		return nil, partyErr
	}

	state := o.State()
	view := &ConfirmationView{
		OrderID:           o.ID(),
		PaymentStatus:     string(o.PaymentStatus()),
		State:             string(state.Kind),
		ClientConfirmed:   o.ClientConfirmed(),
		ProviderConfirmed: o.ProviderConfirmed(),
		ReleasedAt:        o.ReleasedAt(),
	}
	if state.Kind == order.StateAwaitingOne {
		awaiting := string(state.Awaiting)
		view.AwaitingParty = &awaiting
	}
	if partyErr == nil {
		p := string(party)
		view.ActorParty = &p
		view.ActorConfirmed = o.ConfirmedBy(party)
	}
	if payment != nil {
		view.Escrow = &EscrowView{
			ID:          payment.ID,
			AmountCents: payment.AmountCents,
			Currency:    payment.Currency,
			Amount:      payment.FormatAmount(),
			Status:      string(payment.Status),
			LastError:   payment.LastError,
		}
	}
	return view, nil
}
