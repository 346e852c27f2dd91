//go:build unit || e2e

package fake

import (
	"context"
	"sync"

	"zurbo/internal/domain/usage"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

// UsageStore is a mutex-per-store UsageStore. Err, when set, fails every call.
type UsageStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*usage.Record
	Err     error
}

func NewUsageStore() *UsageStore {
	return &UsageStore{records: map[uuid.UUID]*usage.Record{}}
}

var _ shared.UsageStore = (*UsageStore)(nil)

func (s *UsageStore) Mutate(_ context.Context, userID uuid.UUID, fn shared.MutateFunc) (*usage.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	rec := s.copyOf(userID)
	changed, err := fn(rec)
	if err != nil {
		return nil, err
	}
	if changed {
		s.records[userID] = rec
	}
	out := *rec
	return &out, nil
}

func (s *UsageStore) Get(_ context.Context, userID uuid.UUID) (*usage.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.copyOf(userID), nil
}

// Put seeds a record.
func (s *UsageStore) Put(rec *usage.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[rec.UserID()] = &cp
}

func (s *UsageStore) copyOf(userID uuid.UUID) *usage.Record {
	if rec, ok := s.records[userID]; ok {
		cp := *rec
		return &cp
	}
	return usage.NewRecord(userID)
}

// Gateway records release calls and answers with Err or Receipt.
type Gateway struct {
	mu      sync.Mutex
	Calls   []uuid.UUID
	Err     error
	Receipt *shared.ReleaseReceipt
}

var _ shared.PaymentGateway = (*Gateway)(nil)

func (g *Gateway) Release(_ context.Context, escrowPaymentID uuid.UUID) (*shared.ReleaseReceipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, escrowPaymentID)
	if g.Err != nil {
		return nil, g.Err
	}
	if g.Receipt != nil {
		return g.Receipt, nil
	}
	return &shared.ReleaseReceipt{}, nil
}

func (g *Gateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Calls)
}

func (g *Gateway) SetErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Err = err
}

func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = nil
	g.Err = nil
	g.Receipt = nil
}
