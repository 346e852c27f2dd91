package repository

import (
	"context"
	"time"

	"zurbo/internal/domain/escrow"
	"zurbo/internal/infra"
	"zurbo/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const escrowColumns = `id, order_id, amount_cents, currency, status, provider_reference, captured_at, last_error, created_at, updated_at`

const (
	// Claims nothing once any payment of the order is releasing or captured.
	claimEscrowSQL = `
UPDATE escrow_payments
SET status = 'releasing', updated_at = $2
WHERE id = (
    SELECT e.id FROM escrow_payments e
    WHERE e.order_id = $1
      AND e.status = 'authorized'
      AND NOT EXISTS (
          SELECT 1 FROM escrow_payments o
          WHERE o.order_id = $1 AND o.status IN ('releasing', 'captured')
      )
    ORDER BY e.created_at
    LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING ` + escrowColumns

	currentEscrowSQL = `
SELECT ` + escrowColumns + ` FROM escrow_payments
WHERE order_id = $1
ORDER BY CASE status WHEN 'captured' THEN 0 WHEN 'releasing' THEN 1 WHEN 'authorized' THEN 2 ELSE 3 END,
         created_at DESC
LIMIT 1`

	markEscrowCapturedSQL = `
UPDATE escrow_payments
SET status = 'captured',
    provider_reference = COALESCE($2, provider_reference),
    captured_at = $3,
    last_error = NULL,
    updated_at = $3
WHERE id = $1 AND status = 'releasing'`

	revertEscrowClaimSQL = `
UPDATE escrow_payments
SET status = 'authorized', last_error = $2, updated_at = $3
WHERE id = $1 AND status = 'releasing'`
)

type EscrowRepository struct{}

func NewEscrowRepository() *EscrowRepository {
	return &EscrowRepository{}
}

func (r *EscrowRepository) ClaimAuthorized(ctx context.Context, tx db.DBTX, orderID uuid.UUID, at time.Time) (*escrow.Payment, error) {
	p, err := scanEscrow(tx.QueryRow(ctx, claimEscrowSQL, orderID, at))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		// uq_escrow_payments_releasing: a concurrent caller claimed first
		return nil, infra.WrapRepoErr("failed to claim escrow payment", err)
	}
	return p, nil
}

func (r *EscrowRepository) CurrentByOrderID(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*escrow.Payment, error) {
	p, err := scanEscrow(tx.QueryRow(ctx, currentEscrowSQL, orderID))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find escrow payment", err)
	}
	return p, nil
}

func (r *EscrowRepository) MarkCaptured(ctx context.Context, tx db.DBTX, id uuid.UUID, providerRef *string, at time.Time) error {
	tag, err := tx.Exec(ctx, markEscrowCapturedSQL, id, providerRef, at)
	if err != nil {
		return infra.WrapRepoErr("failed to mark escrow captured", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("escrow payment is not releasing", nil, infra.KindConflict)
	}
	return nil
}

func (r *EscrowRepository) RevertClaim(ctx context.Context, tx db.DBTX, id uuid.UUID, lastError string, at time.Time) error {
	tag, err := tx.Exec(ctx, revertEscrowClaimSQL, id, lastError, at)
	if err != nil {
		return infra.WrapRepoErr("failed to revert escrow claim", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("escrow payment is not releasing", nil, infra.KindConflict)
	}
	return nil
}

func scanEscrow(row pgx.Row) (*escrow.Payment, error) {
	var (
		p      escrow.Payment
		status string
	)
	err := row.Scan(&p.ID, &p.OrderID, &p.AmountCents, &p.Currency, &status,
		&p.ProviderReference, &p.CapturedAt, &p.LastError, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = escrow.Status(status)
	return &p, nil
}
