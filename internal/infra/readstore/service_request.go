package readstore

import (
	"context"
	"time"

	"zurbo/internal/infra"
	"zurbo/internal/infra/db"
	"zurbo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const serviceRequestColumns = `id, client_id, category, description, status, closed_at, created_at, updated_at`

const (
	findServiceRequestViewSQL = `
SELECT ` + serviceRequestColumns + `
FROM service_requests WHERE id = $1`

	listServiceRequestsFirstPageSQL = `
SELECT ` + serviceRequestColumns + `
FROM service_requests
WHERE client_id = $1 AND ($2::text IS NULL OR status = $2)
ORDER BY created_at DESC, id DESC
LIMIT $3`

	listServiceRequestsKeysetSQL = `
SELECT ` + serviceRequestColumns + `
FROM service_requests
WHERE client_id = $1 AND ($2::text IS NULL OR status = $2)
  AND (created_at, id) < ($3, $4)
ORDER BY created_at DESC, id DESC
LIMIT $5`
)

type ServiceRequestReadStore struct {
	db db.DBTX
}

func NewServiceRequestReadStore(db db.DBTX) *ServiceRequestReadStore {
	return &ServiceRequestReadStore{
		db: db,
	}
}

func (r *ServiceRequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceRequestView, error) {
	v, err := scanServiceRequestView(r.db.QueryRow(ctx, findServiceRequestViewSQL, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get service request view", err)
	}
	return v, nil
}

func (r *ServiceRequestReadStore) FindByClientFirstPage(ctx context.Context, clientID uuid.UUID, status *string, limit int32) ([]*queries.ServiceRequestView, error) {
	rows, err := r.db.Query(ctx, listServiceRequestsFirstPageSQL, clientID, status, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list service requests", err)
	}
	return collectServiceRequestViews(rows)
}

func (r *ServiceRequestReadStore) FindByClientKeyset(ctx context.Context, clientID uuid.UUID, status *string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ServiceRequestView, error) {
	rows, err := r.db.Query(ctx, listServiceRequestsKeysetSQL, clientID, status, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list service requests after cursor", err)
	}
	return collectServiceRequestViews(rows)
}

func collectServiceRequestViews(rows pgx.Rows) ([]*queries.ServiceRequestView, error) {
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ServiceRequestView, error) {
		return scanServiceRequestView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan service requests", err)
	}
	return views, nil
}

func scanServiceRequestView(row pgx.Row) (*queries.ServiceRequestView, error) {
	var v queries.ServiceRequestView
	err := row.Scan(&v.ID, &v.ClientID, &v.Category, &v.Description, &v.Status, &v.ClosedAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
