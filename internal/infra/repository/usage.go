package repository

import (
	"context"
	"time"

	"zurbo/internal/domain/usage"
	"zurbo/internal/infra"
	"zurbo/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const usageColumns = `user_id, requests_this_hour, requests_this_day, active_request_count, last_request_at, blocked_until, updated_at`

const (
	ensureUsageSQL = `
INSERT INTO usage_limits (user_id) VALUES ($1)
ON CONFLICT (user_id) DO NOTHING`

	lockUsageSQL = `SELECT ` + usageColumns + ` FROM usage_limits WHERE user_id = $1 FOR UPDATE`

	findUsageSQL = `SELECT ` + usageColumns + ` FROM usage_limits WHERE user_id = $1`

	saveUsageSQL = `
INSERT INTO usage_limits (` + usageColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET
    requests_this_hour   = EXCLUDED.requests_this_hour,
    requests_this_day    = EXCLUDED.requests_this_day,
    active_request_count = EXCLUDED.active_request_count,
    last_request_at      = EXCLUDED.last_request_at,
    blocked_until        = EXCLUDED.blocked_until,
    updated_at           = EXCLUDED.updated_at`
)

type UsageRepository struct{}

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{}
}

func (r *UsageRepository) EnsureExists(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, ensureUsageSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to ensure usage record", err)
	}
	return nil
}

func (r *UsageRepository) LockByUserID(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*usage.Record, error) {
	rec, err := scanUsage(tx.QueryRow(ctx, lockUsageSQL, userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock usage record", err)
	}
	return rec, nil
}

func (r *UsageRepository) FindByUserID(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*usage.Record, error) {
	rec, err := scanUsage(tx.QueryRow(ctx, findUsageSQL, userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find usage record", err)
	}
	return rec, nil
}

func (r *UsageRepository) Save(ctx context.Context, tx db.DBTX, rec *usage.Record) error {
	_, err := tx.Exec(ctx, saveUsageSQL,
		rec.UserID(),
		rec.RequestsThisHour(),
		rec.RequestsThisDay(),
		rec.ActiveRequestCount(),
		rec.LastRequestAt(),
		rec.BlockedUntil(),
		rec.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save usage record", err)
	}
	return nil
}

func scanUsage(row pgx.Row) (*usage.Record, error) {
	var (
		userID             uuid.UUID
		hour, day, active  int
		lastAt, blockedTil *time.Time
		updatedAt          time.Time
	)
	if err := row.Scan(&userID, &hour, &day, &active, &lastAt, &blockedTil, &updatedAt); err != nil {
		return nil, err
	}
	return usage.ReconstructRecord(userID, hour, day, active, lastAt, blockedTil, updatedAt), nil
}
