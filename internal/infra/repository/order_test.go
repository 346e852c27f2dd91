//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"zurbo/internal/domain/order"
	"zurbo/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderRow(id, clientID, providerID uuid.UUID, status order.PaymentStatus, client, provider bool, at time.Time) stubRow {
	return stubRow{values: []any{
		id, clientID, providerID, string(status), client, provider, (*time.Time)(nil), at, at,
	}}
}

func TestSetConfirmation(t *testing.T) {
	id, clientID, providerID := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		party    order.Party
		wantArgs []interface{}
		row      stubRow
		wantKind infra.RepositoryErrorKind
		wantBoth bool
	}{
		{
			name:     "client confirms first",
			party:    order.PartyClient,
			wantArgs: []interface{}{id, true, false, at},
			row:      orderRow(id, clientID, providerID, order.PaymentHeldInEscrow, true, false, at),
		},
		{
			name:     "provider completes the pair",
			party:    order.PartyProvider,
			wantArgs: []interface{}{id, false, true, at},
			row:      orderRow(id, clientID, providerID, order.PaymentHeldInEscrow, true, true, at),
			wantBoth: true,
		},
		{
			name:     "order not held in escrow",
			party:    order.PartyClient,
			wantArgs: []interface{}{id, true, false, at},
			row:      stubRow{err: pgx.ErrNoRows},
			wantKind: infra.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := new(MockDBTX)
			mockDB.On("QueryRow", mock.Anything, setConfirmationSQL, tt.wantArgs).Return(tt.row)

			o, err := NewOrderRepository().SetConfirmation(context.Background(), mockDB, id, tt.party, at)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBoth, o.BothConfirmed())
			mockDB.AssertExpectations(t)
		})
	}
}

func TestMarkReleased(t *testing.T) {
	id := uuid.New()
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tag       string
		mockError error
		want      bool
		wantError bool
	}{
		{name: "released", tag: "UPDATE 1", want: true},
		{name: "already released or unconfirmed", tag: "UPDATE 0"},
		{name: "database error", mockError: assert.AnError, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := new(MockDBTX)
			mockDB.On("Exec", mock.Anything, markOrderReleasedSQL, []interface{}{id, at}).
				Return(pgconn.NewCommandTag(tt.tag), tt.mockError)

			ok, err := NewOrderRepository().MarkReleased(context.Background(), mockDB, id, at)

			if tt.wantError {
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
