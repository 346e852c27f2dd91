//go:build unit

package order_test

import (
	"testing"
	"time"

	"zurbo/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func heldOrder(t *testing.T, clientConfirmed, providerConfirmed bool) *order.Order {
	t.Helper()
	o, err := order.ReconstructOrder(uuid.New(), uuid.New(), uuid.New(),
		order.PaymentHeldInEscrow, clientConfirmed, providerConfirmed, nil, now, now)
	require.NoError(t, err)
	return o
}

func TestOrder_State(t *testing.T) {
	cases := []struct {
		name     string
		status   order.PaymentStatus
		client   bool
		provider bool
		want     order.ConfirmationState
	}{
		{"nobody confirmed", order.PaymentHeldInEscrow, false, false, order.ConfirmationState{Kind: order.StateAwaitingBoth}},
		{"client confirmed", order.PaymentHeldInEscrow, true, false, order.ConfirmationState{Kind: order.StateAwaitingOne, Awaiting: order.PartyProvider}},
		{"provider confirmed", order.PaymentHeldInEscrow, false, true, order.ConfirmationState{Kind: order.StateAwaitingOne, Awaiting: order.PartyClient}},
		{"both confirmed but not released", order.PaymentHeldInEscrow, true, true, order.ConfirmationState{Kind: order.StateReleasePending}},
		{"released", order.PaymentReleased, true, true, order.ConfirmationState{Kind: order.StateReleased}},
		{"pending payment", order.PaymentPending, false, false, order.ConfirmationState{Kind: order.StateNotApplicable}},
		{"refunded", order.PaymentRefunded, true, false, order.ConfirmationState{Kind: order.StateNotApplicable}},
		{"cancelled", order.PaymentCancelled, false, false, order.ConfirmationState{Kind: order.StateNotApplicable}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o, err := order.ReconstructOrder(uuid.New(), uuid.New(), uuid.New(), c.status, c.client, c.provider, nil, now, now)
			require.NoError(t, err)
			assert.Equal(t, c.want, o.State())
		})
	}
}

func TestReconstructOrder_RejectsIllegalStates(t *testing.T) {
	_, err := order.ReconstructOrder(uuid.New(), uuid.New(), uuid.New(), order.PaymentReleased, true, false, nil, now, now)
	require.ErrorIs(t, err, order.ErrInconsistentOrder)

	_, err = order.ReconstructOrder(uuid.New(), uuid.New(), uuid.New(), "paid", false, false, nil, now, now)
	require.ErrorIs(t, err, order.ErrInvalidPaymentStatus)
}

func TestOrder_PartyOf(t *testing.T) {
	o := heldOrder(t, false, false)

	p, err := o.PartyOf(o.ClientID())
	require.NoError(t, err)
	assert.Equal(t, order.PartyClient, p)

	p, err = o.PartyOf(o.ProviderID())
	require.NoError(t, err)
	assert.Equal(t, order.PartyProvider, p)

	_, err = o.PartyOf(uuid.New())
	require.ErrorIs(t, err, order.ErrNotOrderParty)
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("flags are monotonic and idempotent", func(t *testing.T) {
		o := heldOrder(t, false, false)

		require.NoError(t, o.Confirm(order.PartyClient, now))
		require.NoError(t, o.Confirm(order.PartyClient, now))
		assert.True(t, o.ClientConfirmed())
		assert.False(t, o.ProviderConfirmed())

		require.NoError(t, o.Confirm(order.PartyProvider, now))
		assert.True(t, o.BothConfirmed())
	})

	t.Run("not applicable outside escrow", func(t *testing.T) {
		o, err := order.ReconstructOrder(uuid.New(), uuid.New(), uuid.New(), order.PaymentPending, false, false, nil, now, now)
		require.NoError(t, err)

		require.ErrorIs(t, o.Confirm(order.PartyClient, now), order.ErrNotApplicable)
		assert.False(t, o.ClientConfirmed())
	})
}

func TestOrder_MarkReleased(t *testing.T) {
	o := heldOrder(t, true, false)
	require.ErrorIs(t, o.MarkReleased(now), order.ErrInconsistentOrder)

	o = heldOrder(t, true, true)
	require.NoError(t, o.MarkReleased(now))
	assert.True(t, o.IsReleased())
	require.NotNil(t, o.ReleasedAt())
	assert.Equal(t, now, *o.ReleasedAt())
	assert.Equal(t, order.StateReleased, o.State().Kind)

	require.ErrorIs(t, o.MarkReleased(now), order.ErrNotApplicable)
}

func TestNewOrder(t *testing.T) {
	id := uuid.New()
	_, err := order.NewOrder(id, id, order.PaymentHeldInEscrow, now)
	require.ErrorIs(t, err, order.ErrSameParty)

	_, err = order.NewOrder(uuid.New(), uuid.New(), order.PaymentReleased, now)
	require.ErrorIs(t, err, order.ErrInvalidPaymentStatus)

	o, err := order.NewOrder(uuid.New(), uuid.New(), order.PaymentHeldInEscrow, now)
	require.NoError(t, err)
	assert.Equal(t, order.StateAwaitingBoth, o.State().Kind)
}

func TestConfirmationState_String(t *testing.T) {
	s := order.ConfirmationState{Kind: order.StateAwaitingOne, Awaiting: order.PartyClient}
	assert.Equal(t, "awaiting_one(client)", s.String())
	assert.Equal(t, order.PartyProvider, order.PartyClient.Other())
}
