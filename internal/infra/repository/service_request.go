package repository

import (
	"context"
	"time"

	"zurbo/internal/domain/servicerequest"
	"zurbo/internal/infra"
	"zurbo/internal/infra/db"

	"github.com/google/uuid"
)

const (
	createServiceRequestSQL = `
INSERT INTO service_requests (id, client_id, category, description, status, holds_slot, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	findServiceRequestSQL = `
SELECT id, client_id, category, description, status, holds_slot, closed_at, created_at, updated_at
FROM service_requests WHERE id = $1`

	closeServiceRequestSQL = `
UPDATE service_requests
SET status = $2, closed_at = $3, updated_at = $3
WHERE id = $1 AND status = 'open'`
)

type ServiceRequestRepository struct{}

func NewServiceRequestRepository() *ServiceRequestRepository {
	return &ServiceRequestRepository{}
}

func (r *ServiceRequestRepository) Create(ctx context.Context, tx db.DBTX, sr *servicerequest.ServiceRequest) error {
	_, err := tx.Exec(ctx, createServiceRequestSQL,
		sr.ID(), sr.ClientID(), string(sr.Category()), sr.Description(),
		string(sr.Status()), sr.HoldsSlot(), sr.CreatedAt(), sr.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create service request", err)
	}
	return nil
}

func (r *ServiceRequestRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*servicerequest.ServiceRequest, error) {
	var (
		reqID, clientID       uuid.UUID
		category, desc, state string
		holdsSlot             bool
		closedAt              *time.Time
		createdAt, updatedAt  time.Time
	)
	err := tx.QueryRow(ctx, findServiceRequestSQL, id).
		Scan(&reqID, &clientID, &category, &desc, &state, &holdsSlot, &closedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find service request", err)
	}
	return servicerequest.ReconstructServiceRequest(reqID, clientID,
		servicerequest.Category(category), desc, servicerequest.Status(state),
		holdsSlot, closedAt, createdAt, updatedAt)
}

func (r *ServiceRequestRepository) Close(ctx context.Context, tx db.DBTX, sr *servicerequest.ServiceRequest) (bool, error) {
	tag, err := tx.Exec(ctx, closeServiceRequestSQL, sr.ID(), string(sr.Status()), sr.ClosedAt())
	if err != nil {
		return false, infra.WrapRepoErr("failed to close service request", err)
	}
	return tag.RowsAffected() == 1, nil
}
