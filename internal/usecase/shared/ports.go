package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

import (
	"context"

	"zurbo/internal/domain/usage"

	"github.com/google/uuid"
)

// MutateFunc edits rec in place and reports whether it must be persisted.
type MutateFunc func(rec *usage.Record) (bool, error)

// UsageStore serializes all writers of one user's usage record.
type UsageStore interface {
	// Mutate runs fn against the current record under an exclusive hold on the
	// key. fn may run more than once when the backend retries, so it must not
	// have side effects outside rec.
	Mutate(ctx context.Context, userID uuid.UUID, fn MutateFunc) (*usage.Record, error)
	// Get returns the stored record, or the zero record if the user has none.
	Get(ctx context.Context, userID uuid.UUID) (*usage.Record, error)
}

// ReleaseReceipt is what the gateway returns on a successful release.
type ReleaseReceipt struct {
	ProviderReference *string
}

type PaymentGateway interface {
	Release(ctx context.Context, escrowPaymentID uuid.UUID) (*ReleaseReceipt, error)
}
