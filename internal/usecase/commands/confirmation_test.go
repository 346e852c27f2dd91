//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"zurbo/internal/domain/escrow"
	"zurbo/internal/domain/order"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/commands"
	"zurbo/tests/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type ConfirmationCommandsTestSuite struct {
	suite.Suite
	uow     *fake.UoW
	gateway *fake.Gateway
	cmds    commands.ConfirmationCommands

	orderID    uuid.UUID
	clientID   uuid.UUID
	providerID uuid.UUID
	paymentID  uuid.UUID
}

func (s *ConfirmationCommandsTestSuite) SetupTest() {
	s.uow = fake.NewUoW()
	s.gateway = &fake.Gateway{}
	s.cmds = commands.NewConfirmationCommands(s.uow, s.gateway, clock.NewMockClock(baseTime), nil)

	s.orderID, s.clientID, s.providerID, s.paymentID = uuid.New(), uuid.New(), uuid.New(), uuid.New()
	s.uow.Orders[s.orderID] = &fake.OrderRow{
		ID:            s.orderID,
		ClientID:      s.clientID,
		ProviderID:    s.providerID,
		PaymentStatus: order.PaymentHeldInEscrow,
	}
	s.uow.Escrows[s.paymentID] = &escrow.Payment{
		ID:          s.paymentID,
		OrderID:     s.orderID,
		AmountCents: 15000,
		Currency:    escrow.DefaultCurrency,
		Status:      escrow.StatusAuthorized,
	}
}

func TestConfirmationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ConfirmationCommandsTestSuite))
}

func (s *ConfirmationCommandsTestSuite) confirmBoth() *commands.ConfirmResult {
	ctx := context.Background()
	_, err := s.cmds.Confirm(ctx, s.orderID, s.clientID)
	s.Require().NoError(err)
	res, err := s.cmds.Confirm(ctx, s.orderID, s.providerID)
	s.Require().NoError(err)
	return res
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_MutualConfirmationReleasesOnce() {
	ctx := context.Background()

	res, err := s.cmds.Confirm(ctx, s.orderID, s.clientID)
	s.Require().NoError(err)
	s.Equal(order.StateAwaitingOne, res.State.Kind)
	s.Equal(order.PartyProvider, res.State.Awaiting)
	s.False(res.Released)
	s.Zero(s.gateway.CallCount())

	res, err = s.cmds.Confirm(ctx, s.orderID, s.providerID)
	s.Require().NoError(err)
	s.True(res.Released)
	s.Equal(order.StateReleased, res.State.Kind)
	s.Require().NotNil(res.EscrowPaymentID)
	s.Equal(s.paymentID, *res.EscrowPaymentID)
	s.NoError(res.ReleaseErr)

	s.Equal([]uuid.UUID{s.paymentID}, s.gateway.Calls)
	s.Equal(escrow.StatusCaptured, s.uow.Escrows[s.paymentID].Status)
	s.Equal(order.PaymentReleased, s.uow.Orders[s.orderID].PaymentStatus)
	s.Require().NotNil(s.uow.Orders[s.orderID].ReleasedAt)

	s.Run("confirming a released order is a no-op", func() {
		res, err := s.cmds.Confirm(ctx, s.orderID, s.clientID)
		s.Require().NoError(err)
		s.True(res.Released)
		s.Equal(1, s.gateway.CallCount())
	})
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_Idempotent() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := s.cmds.Confirm(ctx, s.orderID, s.clientID)
		s.Require().NoError(err)
		s.Equal(order.StateAwaitingOne, res.State.Kind)
	}
	s.True(s.uow.Orders[s.orderID].ClientConfirmed)
	s.False(s.uow.Orders[s.orderID].ProviderConfirmed)
	s.Zero(s.gateway.CallCount())
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_EitherOrder() {
	res, err := s.cmds.Confirm(context.Background(), s.orderID, s.providerID)
	s.Require().NoError(err)
	s.Equal(order.PartyClient, res.State.Awaiting)

	res, err = s.cmds.Confirm(context.Background(), s.orderID, s.clientID)
	s.Require().NoError(err)
	s.True(res.Released)
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_Errors() {
	ctx := context.Background()

	s.Run("order not found", func() {
		_, err := s.cmds.Confirm(ctx, uuid.New(), s.clientID)
		s.True(errs.Is(err, errs.ErrOrderNotFound))
	})

	s.Run("actor is not a party", func() {
		_, err := s.cmds.Confirm(ctx, s.orderID, uuid.New())
		s.ErrorIs(err, commands.ErrNotOrderParty)
		s.False(s.uow.Orders[s.orderID].ClientConfirmed)
	})

	s.Run("payment not held in escrow", func() {
		s.uow.Orders[s.orderID].PaymentStatus = order.PaymentPending
		defer func() { s.uow.Orders[s.orderID].PaymentStatus = order.PaymentHeldInEscrow }()

		_, err := s.cmds.Confirm(ctx, s.orderID, s.clientID)
		s.ErrorIs(err, commands.ErrNotApplicable)
	})

	s.Run("database failure on confirmation", func() {
		s.uow.Fail["SetConfirmation"] = errors.New("connection reset")
		defer delete(s.uow.Fail, "SetConfirmation")

		_, err := s.cmds.Confirm(ctx, s.orderID, s.clientID)
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_GatewayFailureKeepsConfirmations() {
	ctx := context.Background()
	s.gateway.Err = errors.New("gateway timeout")

	res := s.confirmBoth()
	s.False(res.Released)
	s.True(res.ReleasePending)
	s.Equal(order.StateReleasePending, res.State.Kind)
	s.True(errs.Is(res.ReleaseErr, errs.ErrReleaseFailed))

	// claim was reverted so a later attempt can retry
	p := s.uow.Escrows[s.paymentID]
	s.Equal(escrow.StatusAuthorized, p.Status)
	s.Require().NotNil(p.LastError)
	s.Equal("gateway timeout", *p.LastError)
	s.Equal(order.PaymentHeldInEscrow, s.uow.Orders[s.orderID].PaymentStatus)
	s.True(s.uow.Orders[s.orderID].ClientConfirmed)
	s.True(s.uow.Orders[s.orderID].ProviderConfirmed)

	s.gateway.Err = nil
	retry, err := s.cmds.RetryRelease(ctx, s.orderID)
	s.Require().NoError(err)
	s.True(retry.Released)
	s.Equal(2, s.gateway.CallCount())
	s.Equal(escrow.StatusCaptured, s.uow.Escrows[s.paymentID].Status)
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_RepeatAfterFailedReleaseDoesNotRetry() {
	ctx := context.Background()
	s.gateway.Err = errors.New("gateway timeout")
	s.confirmBoth()
	s.Require().Equal(1, s.gateway.CallCount())
	s.gateway.Err = nil

	for _, actor := range []uuid.UUID{s.clientID, s.providerID} {
		res, err := s.cmds.Confirm(ctx, s.orderID, actor)
		s.Require().NoError(err)
		s.False(res.Released)
		s.True(res.ReleasePending)
		s.NoError(res.ReleaseErr)
		s.Equal(order.StateReleasePending, res.State.Kind)
	}
	s.Equal(1, s.gateway.CallCount())
	s.Equal(2, s.uow.Calls["SetConfirmation"], "repeat confirmations must not write")
	s.Equal(escrow.StatusAuthorized, s.uow.Escrows[s.paymentID].Status)
	s.Equal(order.PaymentHeldInEscrow, s.uow.Orders[s.orderID].PaymentStatus)
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_AuthorizedRowLockedByAnotherClaim() {
	s.uow.ClaimLocked = true

	res := s.confirmBoth()
	s.True(res.ReleasePending)
	s.NoError(res.ReleaseErr)
	s.Require().NotNil(res.EscrowPaymentID)
	s.Equal(s.paymentID, *res.EscrowPaymentID)
	s.Zero(s.gateway.CallCount())
	s.Equal(escrow.StatusAuthorized, s.uow.Escrows[s.paymentID].Status)
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_NoAuthorizedEscrow() {
	delete(s.uow.Escrows, s.paymentID)

	res := s.confirmBoth()
	s.True(res.ReleasePending)
	s.True(errs.Is(res.ReleaseErr, errs.ErrEscrowNotFound))
	s.Zero(s.gateway.CallCount())
	s.Equal(order.PaymentHeldInEscrow, s.uow.Orders[s.orderID].PaymentStatus)
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_ClaimHeldByAnotherCaller() {
	s.uow.Escrows[s.paymentID].Status = escrow.StatusReleasing

	res := s.confirmBoth()
	s.True(res.ReleasePending)
	s.NoError(res.ReleaseErr)
	s.Require().NotNil(res.EscrowPaymentID)
	s.Equal(s.paymentID, *res.EscrowPaymentID)
	s.Zero(s.gateway.CallCount())
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_CapturedButOrderNotMarked() {
	s.uow.Escrows[s.paymentID].Status = escrow.StatusCaptured

	res := s.confirmBoth()
	s.True(res.Released)
	s.Zero(s.gateway.CallCount())
	s.Equal(order.PaymentReleased, s.uow.Orders[s.orderID].PaymentStatus)
}

func (s *ConfirmationCommandsTestSuite) TestConfirm_ReleaseNotRecorded() {
	s.uow.Fail["MarkReleased"] = errors.New("connection reset")

	res := s.confirmBoth()
	s.False(res.Released)
	s.True(res.ReleasePending)
	s.True(errs.Is(res.ReleaseErr, errs.ErrReleaseFailed))
	s.Equal(1, s.gateway.CallCount())
}

func (s *ConfirmationCommandsTestSuite) TestRetryRelease() {
	ctx := context.Background()

	s.Run("not applicable while a confirmation is missing", func() {
		_, err := s.cmds.RetryRelease(ctx, s.orderID)
		s.ErrorIs(err, commands.ErrNotApplicable)
	})

	s.Run("takes over a stuck releasing claim", func() {
		row := s.uow.Orders[s.orderID]
		row.ClientConfirmed, row.ProviderConfirmed = true, true
		s.uow.Escrows[s.paymentID].Status = escrow.StatusReleasing

		res, err := s.cmds.RetryRelease(ctx, s.orderID)
		s.Require().NoError(err)
		s.True(res.Released)
		s.Equal([]uuid.UUID{s.paymentID}, s.gateway.Calls)
	})

	s.Run("released order returns released", func() {
		res, err := s.cmds.RetryRelease(ctx, s.orderID)
		s.Require().NoError(err)
		s.True(res.Released)
		s.Equal(1, s.gateway.CallCount())
	})
}

func TestConfirm_ConcurrentConfirmationsReleaseExactlyOnce(t *testing.T) {
	for range 20 {
		uow := fake.NewUoW()
		gateway := &fake.Gateway{}
		cmds := commands.NewConfirmationCommands(uow, gateway, clock.NewMockClock(baseTime), nil)

		orderID, clientID, providerID := uuid.New(), uuid.New(), uuid.New()
		uow.Orders[orderID] = &fake.OrderRow{
			ID: orderID, ClientID: clientID, ProviderID: providerID,
			PaymentStatus: order.PaymentHeldInEscrow,
		}
		paymentID := uuid.New()
		uow.Escrows[paymentID] = &escrow.Payment{ID: paymentID, OrderID: orderID, Status: escrow.StatusAuthorized}

		var wg sync.WaitGroup
		results := make([]*commands.ConfirmResult, 4)
		actors := []uuid.UUID{clientID, providerID, clientID, providerID}
		for i, actor := range actors {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := cmds.Confirm(context.Background(), orderID, actor)
				if err != nil {
					t.Errorf("confirm: %v", err)
					return
				}
				results[i] = res
			}()
		}
		wg.Wait()

		for i, res := range results {
			if res == nil || res.ReleaseErr != nil {
				t.Fatalf("result %d = %+v", i, res)
			}
		}
		if n := gateway.CallCount(); n != 1 {
			t.Fatalf("gateway called %d times, want 1", n)
		}
		uow.Lock()
		status := uow.Orders[orderID].PaymentStatus
		uow.Unlock()
		if status != order.PaymentReleased {
			t.Fatalf("payment status = %s, want released", status)
		}
	}
}
