package usagestore

import (
	"context"

	"zurbo/internal/domain/usage"
	"zurbo/internal/infra"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

// PostgresStore serializes writers with a row lock on usage_limits.
type PostgresStore struct {
	uow shared.UnitOfWork
}

func NewPostgresStore(uow shared.UnitOfWork) *PostgresStore {
	return &PostgresStore{uow: uow}
}

func (s *PostgresStore) Mutate(ctx context.Context, userID uuid.UUID, fn shared.MutateFunc) (*usage.Record, error) {
	var out *usage.Record
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Usage()
		if err := repo.EnsureExists(ctx, tx.DB(), userID); err != nil {
			return err
		}
		rec, err := repo.LockByUserID(ctx, tx.DB(), userID)
		if err != nil {
			return err
		}
		changed, err := fn(rec)
		if err != nil {
			return err
		}
		if changed {
			if err := repo.Save(ctx, tx.DB(), rec); err != nil {
				return err
			}
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID uuid.UUID) (*usage.Record, error) {
	var out *usage.Record
	err := s.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := tx.Usage().FindByUserID(ctx, tx.DB(), userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				out = usage.NewRecord(userID)
				return nil
			}
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
