package servicerequest

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory     = errors.New("invalid service category")
	ErrDescriptionTooShort = errors.New("description is too short")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
	ErrNotOpen             = errors.New("service request is no longer open")
	ErrNotOwner            = errors.New("service request belongs to another client")
	ErrInvalidStatus       = errors.New("invalid service request status")
)

// ServiceRequest is a client's call for a provider. While open it occupies
// one active slot in the client's usage record, unless it was admitted while
// the usage store was unavailable.
type ServiceRequest struct {
	id          uuid.UUID
	clientID    uuid.UUID
	category    Category
	description Description
	status      Status
	holdsSlot   bool
	closedAt    *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewServiceRequest(clientID uuid.UUID, category Category, description Description, now time.Time) *ServiceRequest {
	return &ServiceRequest{
		id:          uuid.New(),
		clientID:    clientID,
		category:    category,
		description: description,
		status:      StatusOpen,
		holdsSlot:   true,
		createdAt:   now,
		updatedAt:   now,
	}
}

func ReconstructServiceRequest(
	id, clientID uuid.UUID,
	category Category,
	description string,
	status Status,
	holdsSlot bool,
	closedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*ServiceRequest, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &ServiceRequest{
		id:          id,
		clientID:    clientID,
		category:    category,
		description: Description{value: description},
		status:      status,
		holdsSlot:   holdsSlot,
		closedAt:    closedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *ServiceRequest) ID() uuid.UUID        { return r.id }
func (r *ServiceRequest) ClientID() uuid.UUID  { return r.clientID }
func (r *ServiceRequest) Category() Category   { return r.category }
func (r *ServiceRequest) Description() string  { return r.description.Value() }
func (r *ServiceRequest) Status() Status       { return r.status }
func (r *ServiceRequest) ClosedAt() *time.Time { return r.closedAt }
func (r *ServiceRequest) CreatedAt() time.Time { return r.createdAt }
func (r *ServiceRequest) UpdatedAt() time.Time { return r.updatedAt }
func (r *ServiceRequest) IsOpen() bool         { return r.status == StatusOpen }
func (r *ServiceRequest) HoldsSlot() bool      { return r.holdsSlot }

// Unmetered marks a request that was never counted against the active limit,
// so closing it must not free a slot.
func (r *ServiceRequest) Unmetered() {
	r.holdsSlot = false
}

func (r *ServiceRequest) EnsureOwner(actorID uuid.UUID) error {
	if r.clientID != actorID {
		return ErrNotOwner
	}
	return nil
}

func (r *ServiceRequest) Withdraw(now time.Time) error {
	return r.close(StatusWithdrawn, now)
}

func (r *ServiceRequest) Complete(now time.Time) error {
	return r.close(StatusCompleted, now)
}

func (r *ServiceRequest) close(to Status, now time.Time) error {
	if r.status != StatusOpen {
		return ErrNotOpen
	}
	r.status = to
	at := now
	r.closedAt = &at
	r.updatedAt = now
	return nil
}
