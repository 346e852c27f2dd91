package repository

import (
	"context"
	"time"

	"zurbo/internal/domain/order"
	"zurbo/internal/infra"
	"zurbo/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, client_id, provider_id, payment_status, client_confirmed, provider_confirmed, released_at, created_at, updated_at`

const (
	findOrderSQL = `SELECT ` + orderColumns + ` FROM service_orders WHERE id = $1`

	// Both flags come back from the same row version the update wrote.
	setConfirmationSQL = `
UPDATE service_orders
SET client_confirmed   = client_confirmed OR $2,
    provider_confirmed = provider_confirmed OR $3,
    updated_at         = $4
WHERE id = $1 AND payment_status = 'held_in_escrow'
RETURNING ` + orderColumns

	markOrderReleasedSQL = `
UPDATE service_orders
SET payment_status = 'released', released_at = $2, updated_at = $2
WHERE id = $1
  AND payment_status = 'held_in_escrow'
  AND client_confirmed AND provider_confirmed`
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	o, err := scanOrder(tx.QueryRow(ctx, findOrderSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return o, nil
}

func (r *OrderRepository) SetConfirmation(ctx context.Context, tx db.DBTX, id uuid.UUID, party order.Party, at time.Time) (*order.Order, error) {
	o, err := scanOrder(tx.QueryRow(ctx, setConfirmationSQL,
		id, party == order.PartyClient, party == order.PartyProvider, at))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to set order confirmation", err)
	}
	return o, nil
}

func (r *OrderRepository) MarkReleased(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, markOrderReleasedSQL, id, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark order released", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		id, clientID, providerID           uuid.UUID
		status                             string
		clientConfirmed, providerConfirmed bool
		releasedAt                         *time.Time
		createdAt, updatedAt               time.Time
	)
	err := row.Scan(&id, &clientID, &providerID, &status,
		&clientConfirmed, &providerConfirmed, &releasedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return order.ReconstructOrder(id, clientID, providerID, order.PaymentStatus(status),
		clientConfirmed, providerConfirmed, releasedAt, createdAt, updatedAt)
}
