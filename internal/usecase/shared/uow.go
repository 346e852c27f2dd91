package shared

import (
	"context"
	"time"

	"zurbo/internal/domain/escrow"
	"zurbo/internal/domain/order"
	"zurbo/internal/domain/servicerequest"
	"zurbo/internal/domain/usage"
	"zurbo/internal/domain/user"
	"zurbo/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single statements on the pool, each in its own implicit transaction
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Users() UserRepository
	Usage() UsageRepository
	Orders() OrderRepository
	Escrows() EscrowRepository
	ServiceRequests() ServiceRequestRepository
	DB() db.DBTX
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error
}

type UsageRepository interface {
	// EnsureExists inserts the zero record if the user has none yet.
	EnsureExists(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	// LockByUserID returns the record holding a row lock until the transaction ends.
	LockByUserID(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*usage.Record, error)
	FindByUserID(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*usage.Record, error)
	Save(ctx context.Context, tx db.DBTX, rec *usage.Record) error
}

type OrderRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
	// SetConfirmation atomically sets the party's flag on an order still held in
	// escrow and returns the row as written. KindNotFound when no row matched.
	SetConfirmation(ctx context.Context, tx db.DBTX, id uuid.UUID, party order.Party, at time.Time) (*order.Order, error)
	// MarkReleased moves a fully confirmed escrow order to released. It reports
	// false when another caller already did.
	MarkReleased(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (bool, error)
}

type EscrowRepository interface {
	// ClaimAuthorized moves the order's authorized payment to releasing and
	// returns it, or nil when there is nothing left to claim.
	ClaimAuthorized(ctx context.Context, tx db.DBTX, orderID uuid.UUID, at time.Time) (*escrow.Payment, error)
	// CurrentByOrderID prefers captured, then releasing, then authorized payments.
	CurrentByOrderID(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*escrow.Payment, error)
	MarkCaptured(ctx context.Context, tx db.DBTX, id uuid.UUID, providerRef *string, at time.Time) error
	RevertClaim(ctx context.Context, tx db.DBTX, id uuid.UUID, lastError string, at time.Time) error
}

type ServiceRequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *servicerequest.ServiceRequest) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*servicerequest.ServiceRequest, error)
	// Close applies r's new status only if the row is still open. It reports
	// whether this call performed the transition.
	Close(ctx context.Context, tx db.DBTX, r *servicerequest.ServiceRequest) (bool, error)
}
