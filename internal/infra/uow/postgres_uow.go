package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"zurbo/internal/infra/db"
	"zurbo/internal/infra/repository"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"

	defaultMaxRetries = 3
	defaultBaseDelay  = 50 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// Beginner is the part of *pgxpool.Pool the unit of work needs.
type Beginner interface {
	db.DBTX
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool       Beginner
	repos      *repositories
	maxRetries int
	baseDelay  time.Duration
}

type Option func(*PostgresUoW)

func WithMaxRetries(n int) Option {
	return func(u *PostgresUoW) {
		if n >= 0 {
			u.maxRetries = n
		}
	}
}

func WithBaseDelay(d time.Duration) Option {
	return func(u *PostgresUoW) { u.baseDelay = d }
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return New(pool)
}

func New(pool Beginner, opts ...Option) *PostgresUoW {
	u := &PostgresUoW{
		pool:       pool,
		repos:      newRepositories(),
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ReadCommitted is enough: every contended row is taken FOR UPDATE or
// changed by a conditional UPDATE.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &pgTx{dbtx: u.pool, repos: u.repos})
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx, repos: u.repos})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == u.maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := calculateBackoff(attempt, u.baseDelay)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}

// Repositories are stateless, so one set is shared by every transaction.
type repositories struct {
	users           *repository.UserRepository
	usage           *repository.UsageRepository
	orders          *repository.OrderRepository
	escrows         *repository.EscrowRepository
	serviceRequests *repository.ServiceRequestRepository
}

func newRepositories() *repositories {
	return &repositories{
		users:           repository.NewUserRepository(),
		usage:           repository.NewUsageRepository(),
		orders:          repository.NewOrderRepository(),
		escrows:         repository.NewEscrowRepository(),
		serviceRequests: repository.NewServiceRequestRepository(),
	}
}

type pgTx struct {
	dbtx  db.DBTX
	repos *repositories
}

func (t *pgTx) DB() db.DBTX                              { return t.dbtx }
func (t *pgTx) Users() shared.UserRepository             { return t.repos.users }
func (t *pgTx) Usage() shared.UsageRepository            { return t.repos.usage }
func (t *pgTx) Orders() shared.OrderRepository           { return t.repos.orders }
func (t *pgTx) Escrows() shared.EscrowRepository         { return t.repos.escrows }
func (t *pgTx) ServiceRequests() shared.ServiceRequestRepository {
	return t.repos.serviceRequests
}
