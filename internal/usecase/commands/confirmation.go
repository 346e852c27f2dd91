package commands

//go:generate mockgen -source=confirmation.go -destination=../../../tests/mock/commands/confirmation_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"zurbo/internal/domain/escrow"
	"zurbo/internal/domain/order"
	"zurbo/internal/infra"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/pkg/metrics"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotOrderParty = order.ErrNotOrderParty
	ErrNotApplicable = order.ErrNotApplicable
)

// ConfirmResult reports where the order ended up. ReleaseErr is set when both
// parties confirmed but the payment could not be released; the confirmation
// itself is kept.
type ConfirmResult struct {
	OrderID         uuid.UUID
	State           order.ConfirmationState
	Released        bool
	ReleasePending  bool
	EscrowPaymentID *uuid.UUID
	ReleaseErr      error
}

type ConfirmationCommands interface {
	Confirm(ctx context.Context, orderID, actorID uuid.UUID) (*ConfirmResult, error)
	// RetryRelease re-attempts the release of a fully confirmed order. It also
	// takes over a payment left in releasing by an interrupted attempt.
	RetryRelease(ctx context.Context, orderID uuid.UUID) (*ConfirmResult, error)
}

type confirmationCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway shared.PaymentGateway
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewConfirmationCommands(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	clk clock.Clock,
	m *metrics.Metrics,
) ConfirmationCommands {
	return &confirmationCommandsImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clk,
		metrics: m,
	}
}

func (c *confirmationCommandsImpl) Confirm(ctx context.Context, orderID, actorID uuid.UUID) (*ConfirmResult, error) {
	o, err := c.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	party, err := o.PartyOf(actorID)
	if err != nil {
		return nil, ErrNotOrderParty
	}

	if o.IsReleased() {
		return releasedResult(o), nil
	}
	if err := o.CanConfirm(); err != nil {
		return nil, ErrNotApplicable
	}
	if o.ConfirmedBy(party) {
		// repeat confirmations never re-run a stalled release; that is RetryRelease
		return stateResult(o), nil
	}

	var updated *order.Order
	err = c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		updated, err = tx.Orders().SetConfirmation(ctx, tx.DB(), orderID, party, c.clock.Now())
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// payment status moved between the read and the update
			return c.afterStatusChange(ctx, orderID)
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to record confirmation"), errs.ErrDatabaseOperationFailed)
	}

	slog.InfoContext(ctx, "order confirmed",
		"order_id", orderID,
		"party", string(party),
		"state", updated.State().String())

	if !updated.BothConfirmed() {
		return &ConfirmResult{OrderID: orderID, State: updated.State()}, nil
	}

	return c.release(ctx, updated, false), nil
}

func (c *confirmationCommandsImpl) RetryRelease(ctx context.Context, orderID uuid.UUID) (*ConfirmResult, error) {
	o, err := c.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsReleased() {
		return releasedResult(o), nil
	}
	if o.State().Kind != order.StateReleasePending {
		return nil, ErrNotApplicable
	}

	slog.InfoContext(ctx, "retrying escrow release", "order_id", orderID)
	return c.release(ctx, o, true), nil
}

// release claims the order's authorized payment so that exactly one caller
// contacts the gateway. Failures leave the order releasable again.
func (c *confirmationCommandsImpl) release(ctx context.Context, o *order.Order, takeOver bool) *ConfirmResult {
	pending := &ConfirmResult{OrderID: o.ID(), State: o.State(), ReleasePending: true}

	payment, err := c.claim(ctx, o.ID())
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			c.metrics.ObserveEscrowRelease(metrics.ReleaseInProgress)
			return pending
		}
		pending.ReleaseErr = errs.Mark(errs.Wrap(err, "failed to claim escrow payment"), errs.ErrReleaseFailed)
		return pending
	}

	if payment == nil {
		current, err := c.currentEscrow(ctx, o.ID())
		if err != nil {
			pending.ReleaseErr = errs.Mark(errs.Wrap(err, "failed to load escrow payment"), errs.ErrReleaseFailed)
			return pending
		}
		switch {
		case current != nil && current.IsCaptured():
			// captured upstream earlier but the order was never marked
			return c.finalize(ctx, o, current, current.ProviderReference, pending)
		case current != nil && current.IsReleasing() && takeOver:
			payment = current
		case current != nil && (current.IsReleasing() || current.IsAuthorized()):
			// an authorized row here is locked by a claim that has not committed yet
			c.metrics.ObserveEscrowRelease(metrics.ReleaseInProgress)
			pending.EscrowPaymentID = &current.ID
			return pending
		default:
			c.metrics.ObserveEscrowRelease(metrics.ReleaseNoEscrow)
			slog.ErrorContext(ctx, "confirmed order has no authorized escrow payment",
				"order_id", o.ID(),
				"error", errs.ErrEscrowNotFound.Error())
			pending.ReleaseErr = errs.ErrEscrowNotFound
			return pending
		}
	}

	pending.EscrowPaymentID = &payment.ID

	receipt, gwErr := c.gateway.Release(ctx, payment.ID)
	if gwErr != nil {
		c.metrics.ObserveEscrowRelease(metrics.ReleaseFailed)
		slog.ErrorContext(ctx, "escrow release failed",
			"order_id", o.ID(),
			"escrow_payment_id", payment.ID,
			"error", gwErr.Error())

		// the claim must be undone even if the caller went away
		revertCtx := context.WithoutCancel(ctx)
		revertErr := c.uow.WithDB(revertCtx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Escrows().RevertClaim(ctx, tx.DB(), payment.ID, gwErr.Error(), c.clock.Now())
		})
		if revertErr != nil {
			slog.ErrorContext(ctx, "failed to revert escrow claim",
				"escrow_payment_id", payment.ID,
				"error", revertErr.Error())
		}

		pending.ReleaseErr = errs.Mark(gwErr, errs.ErrReleaseFailed)
		return pending
	}

	var ref *string
	if receipt != nil {
		ref = receipt.ProviderReference
	}
	return c.finalize(ctx, o, payment, ref, pending)
}

func (c *confirmationCommandsImpl) finalize(ctx context.Context, o *order.Order, payment *escrow.Payment, ref *string, pending *ConfirmResult) *ConfirmResult {
	now := c.clock.Now()
	err := c.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		if !payment.IsCaptured() {
			if err := tx.Escrows().MarkCaptured(ctx, tx.DB(), payment.ID, ref, now); err != nil {
				return err
			}
		}
		_, err := tx.Orders().MarkReleased(ctx, tx.DB(), o.ID(), now)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "escrow released upstream but not recorded",
			"order_id", o.ID(),
			"escrow_payment_id", payment.ID,
			"error", err.Error())
		pending.EscrowPaymentID = &payment.ID
		pending.ReleaseErr = errs.Mark(errs.Wrap(err, "failed to record escrow release"), errs.ErrReleaseFailed)
		return pending
	}

	c.metrics.ObserveEscrowRelease(metrics.ReleaseSucceeded)
	slog.InfoContext(ctx, "escrow released",
		"order_id", o.ID(),
		"escrow_payment_id", payment.ID)

	_ = o.MarkReleased(now)
	id := payment.ID
	return &ConfirmResult{
		OrderID:         o.ID(),
		State:           o.State(),
		Released:        true,
		EscrowPaymentID: &id,
	}
}

func (c *confirmationCommandsImpl) afterStatusChange(ctx context.Context, orderID uuid.UUID) (*ConfirmResult, error) {
	o, err := c.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsReleased() {
		return releasedResult(o), nil
	}
	return nil, ErrNotApplicable
}

func (c *confirmationCommandsImpl) loadOrder(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	var o *order.Order
	err := c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = tx.Orders().FindByID(ctx, tx.DB(), orderID)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to load order"), errs.ErrDatabaseOperationFailed)
	}
	return o, nil
}

func (c *confirmationCommandsImpl) claim(ctx context.Context, orderID uuid.UUID) (*escrow.Payment, error) {
	var p *escrow.Payment
	err := c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		p, err = tx.Escrows().ClaimAuthorized(ctx, tx.DB(), orderID, c.clock.Now())
		return err
	})
	return p, err
}

func (c *confirmationCommandsImpl) currentEscrow(ctx context.Context, orderID uuid.UUID) (*escrow.Payment, error) {
	var p *escrow.Payment
	err := c.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		p, err = tx.Escrows().CurrentByOrderID(ctx, tx.DB(), orderID)
		return err
	})
	return p, err
}

func releasedResult(o *order.Order) *ConfirmResult {
	return &ConfirmResult{OrderID: o.ID(), State: o.State(), Released: true}
}

func stateResult(o *order.Order) *ConfirmResult {
	state := o.State()
	return &ConfirmResult{
		OrderID:        o.ID(),
		State:          state,
		ReleasePending: state.Kind == order.StateReleasePending,
	}
}
