//go:build unit || e2e

// Package fake holds in-memory stand-ins for the persistence ports. Rows are
// kept as plain structs so tests can seed and inspect them directly.
package fake

import (
	"context"
	"sync"
	"time"

	"zurbo/internal/domain/escrow"
	"zurbo/internal/domain/order"
	"zurbo/internal/domain/servicerequest"
	"zurbo/internal/domain/usage"
	"zurbo/internal/domain/user"
	"zurbo/internal/infra"
	"zurbo/internal/infra/db"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderRow struct {
	ID                uuid.UUID
	ClientID          uuid.UUID
	ProviderID        uuid.UUID
	PaymentStatus     order.PaymentStatus
	ClientConfirmed   bool
	ProviderConfirmed bool
	ReleasedAt        *time.Time
}

// UoW serializes every Within/WithDB call on one mutex, which is enough to
// model row locks and conditional updates for single-process tests.
type UoW struct {
	mu sync.Mutex

	Orders          map[uuid.UUID]*OrderRow
	Escrows         map[uuid.UUID]*escrow.Payment
	ServiceRequests map[uuid.UUID]*servicerequest.ServiceRequest
	Users           map[uuid.UUID]*user.User
	Usage           map[uuid.UUID]*usage.Record

	// Fail, when set, is returned by the named operation, e.g. "SetConfirmation".
	Fail map[string]error
	// Calls counts operations by name.
	Calls map[string]int
	// ClaimLocked makes ClaimAuthorized behave as if another transaction held
	// the authorized row, the way SKIP LOCKED does.
	ClaimLocked bool
}

func NewUoW() *UoW {
	return &UoW{
		Orders:          map[uuid.UUID]*OrderRow{},
		Escrows:         map[uuid.UUID]*escrow.Payment{},
		ServiceRequests: map[uuid.UUID]*servicerequest.ServiceRequest{},
		Users:           map[uuid.UUID]*user.User{},
		Usage:           map[uuid.UUID]*usage.Record{},
		Fail:            map[string]error{},
		Calls:           map[string]int{},
	}
}

var _ shared.UnitOfWork = (*UoW)(nil)

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &tx{u: u})
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Within(ctx, fn)
}

// Lock exposes the mutex so tests can read rows while other goroutines run.
func (u *UoW) Lock()   { u.mu.Lock() }
func (u *UoW) Unlock() { u.mu.Unlock() }

func (u *UoW) hit(op string) error {
	u.Calls[op]++
	return u.Fail[op]
}

type tx struct {
	u *UoW
}

func (t *tx) Users() shared.UserRepository                     { return (*users)(t.u) }
func (t *tx) Usage() shared.UsageRepository                    { return (*usageRepo)(t.u) }
func (t *tx) Orders() shared.OrderRepository                   { return (*orders)(t.u) }
func (t *tx) Escrows() shared.EscrowRepository                 { return (*escrows)(t.u) }
func (t *tx) ServiceRequests() shared.ServiceRequestRepository { return (*serviceRequests)(t.u) }
func (t *tx) DB() db.DBTX                                      { return nil }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// orders

type orders UoW

func (r *orders) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*order.Order, error) {
	u := (*UoW)(r)
	if err := u.hit("FindOrder"); err != nil {
		return nil, err
	}
	row, ok := u.Orders[id]
	if !ok {
		return nil, notFound("order not found")
	}
	return row.toDomain()
}

func (r *orders) SetConfirmation(_ context.Context, _ db.DBTX, id uuid.UUID, party order.Party, _ time.Time) (*order.Order, error) {
	u := (*UoW)(r)
	if err := u.hit("SetConfirmation"); err != nil {
		return nil, err
	}
	row, ok := u.Orders[id]
	if !ok || row.PaymentStatus != order.PaymentHeldInEscrow {
		return nil, notFound("order not held in escrow")
	}
	if party == order.PartyClient {
		row.ClientConfirmed = true
	} else {
		row.ProviderConfirmed = true
	}
	return row.toDomain()
}

func (r *orders) MarkReleased(_ context.Context, _ db.DBTX, id uuid.UUID, at time.Time) (bool, error) {
	u := (*UoW)(r)
	if err := u.hit("MarkReleased"); err != nil {
		return false, err
	}
	row, ok := u.Orders[id]
	if !ok || row.PaymentStatus != order.PaymentHeldInEscrow || !row.ClientConfirmed || !row.ProviderConfirmed {
		return false, nil
	}
	row.PaymentStatus = order.PaymentReleased
	row.ReleasedAt = &at
	return true, nil
}

func (row *OrderRow) toDomain() (*order.Order, error) {
	return order.ReconstructOrder(row.ID, row.ClientID, row.ProviderID, row.PaymentStatus,
		row.ClientConfirmed, row.ProviderConfirmed, row.ReleasedAt, time.Time{}, time.Time{})
}

// escrows

type escrows UoW

func (r *escrows) ClaimAuthorized(_ context.Context, _ db.DBTX, orderID uuid.UUID, at time.Time) (*escrow.Payment, error) {
	u := (*UoW)(r)
	if err := u.hit("ClaimAuthorized"); err != nil {
		return nil, err
	}
	if u.ClaimLocked {
		return nil, nil
	}
	var candidate *escrow.Payment
	for _, p := range u.Escrows {
		if p.OrderID != orderID {
			continue
		}
		switch p.Status {
		case escrow.StatusReleasing, escrow.StatusCaptured:
			return nil, nil
		case escrow.StatusAuthorized:
			candidate = p
		}
	}
	if candidate == nil {
		return nil, nil
	}
	candidate.Status = escrow.StatusReleasing
	candidate.UpdatedAt = at
	cp := *candidate
	return &cp, nil
}

func (r *escrows) CurrentByOrderID(_ context.Context, _ db.DBTX, orderID uuid.UUID) (*escrow.Payment, error) {
	u := (*UoW)(r)
	if err := u.hit("CurrentEscrow"); err != nil {
		return nil, err
	}
	rank := map[escrow.Status]int{escrow.StatusCaptured: 0, escrow.StatusReleasing: 1, escrow.StatusAuthorized: 2}
	var best *escrow.Payment
	for _, p := range u.Escrows {
		if p.OrderID != orderID {
			continue
		}
		r, ok := rank[p.Status]
		if !ok {
			continue
		}
		if best == nil || r < rank[best.Status] {
			best = p
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *escrows) MarkCaptured(_ context.Context, _ db.DBTX, id uuid.UUID, providerRef *string, at time.Time) error {
	u := (*UoW)(r)
	if err := u.hit("MarkCaptured"); err != nil {
		return err
	}
	p, ok := u.Escrows[id]
	if !ok || p.Status != escrow.StatusReleasing {
		return infra.WrapRepoErr("escrow payment is not releasing", nil, infra.KindConflict)
	}
	p.Status = escrow.StatusCaptured
	p.CapturedAt = &at
	p.LastError = nil
	if providerRef != nil {
		p.ProviderReference = providerRef
	}
	return nil
}

func (r *escrows) RevertClaim(_ context.Context, _ db.DBTX, id uuid.UUID, lastError string, _ time.Time) error {
	u := (*UoW)(r)
	if err := u.hit("RevertClaim"); err != nil {
		return err
	}
	p, ok := u.Escrows[id]
	if !ok || p.Status != escrow.StatusReleasing {
		return infra.WrapRepoErr("escrow payment is not releasing", nil, infra.KindConflict)
	}
	p.Status = escrow.StatusAuthorized
	p.LastError = &lastError
	return nil
}

// service requests

type serviceRequests UoW

func (r *serviceRequests) Create(_ context.Context, _ db.DBTX, sr *servicerequest.ServiceRequest) error {
	u := (*UoW)(r)
	if err := u.hit("CreateServiceRequest"); err != nil {
		return err
	}
	cp := *sr
	u.ServiceRequests[sr.ID()] = &cp
	return nil
}

func (r *serviceRequests) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*servicerequest.ServiceRequest, error) {
	u := (*UoW)(r)
	if err := u.hit("FindServiceRequest"); err != nil {
		return nil, err
	}
	sr, ok := u.ServiceRequests[id]
	if !ok {
		return nil, notFound("service request not found")
	}
	cp := *sr
	return &cp, nil
}

func (r *serviceRequests) Close(_ context.Context, _ db.DBTX, sr *servicerequest.ServiceRequest) (bool, error) {
	u := (*UoW)(r)
	if err := u.hit("CloseServiceRequest"); err != nil {
		return false, err
	}
	stored, ok := u.ServiceRequests[sr.ID()]
	if !ok || !stored.IsOpen() {
		return false, nil
	}
	cp := *sr
	u.ServiceRequests[sr.ID()] = &cp
	return true, nil
}

// users

type users UoW

func (r *users) Create(_ context.Context, _ db.DBTX, usr *user.User) error {
	u := (*UoW)(r)
	if err := u.hit("CreateUser"); err != nil {
		return err
	}
	for _, existing := range u.Users {
		if existing.Email() == usr.Email() {
			return infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	u.Users[usr.ID()] = usr
	return nil
}

func (r *users) UpdateLastLogin(_ context.Context, _ db.DBTX, userID uuid.UUID, _ time.Time) error {
	u := (*UoW)(r)
	if err := u.hit("UpdateLastLogin"); err != nil {
		return err
	}
	if _, ok := u.Users[userID]; !ok {
		return notFound("user not found")
	}
	return nil
}

// usage

type usageRepo UoW

func (r *usageRepo) EnsureExists(_ context.Context, _ db.DBTX, userID uuid.UUID) error {
	u := (*UoW)(r)
	if err := u.hit("EnsureUsage"); err != nil {
		return err
	}
	if _, ok := u.Usage[userID]; !ok {
		u.Usage[userID] = usage.NewRecord(userID)
	}
	return nil
}

func (r *usageRepo) LockByUserID(ctx context.Context, tx db.DBTX, userID uuid.UUID) (*usage.Record, error) {
	return r.FindByUserID(ctx, tx, userID)
}

func (r *usageRepo) FindByUserID(_ context.Context, _ db.DBTX, userID uuid.UUID) (*usage.Record, error) {
	u := (*UoW)(r)
	if err := u.hit("FindUsage"); err != nil {
		return nil, err
	}
	rec, ok := u.Usage[userID]
	if !ok {
		return nil, notFound("usage not found")
	}
	cp := *rec
	return &cp, nil
}

func (r *usageRepo) Save(_ context.Context, _ db.DBTX, rec *usage.Record) error {
	u := (*UoW)(r)
	if err := u.hit("SaveUsage"); err != nil {
		return err
	}
	cp := *rec
	u.Usage[rec.UserID()] = &cp
	return nil
}
