package queries

//go:generate mockgen -source=service_request.go -destination=../../../tests/mock/queries/service_request_mock.go -package=queriesmock

import (
	"context"
	"time"

	"zurbo/internal/domain/user"
	"zurbo/internal/infra"
	"zurbo/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrServiceRequestNotFound = errs.ErrServiceRequestNotFound
	ErrServiceRequestAccess   = errs.New("service request access denied")
)

type ServiceRequestFilters struct {
	Status *string
}

type ServiceRequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceRequestView, error)
	FindByClientFirstPage(ctx context.Context, clientID uuid.UUID, status *string, limit int32) ([]*ServiceRequestView, error)
	FindByClientKeyset(ctx context.Context, clientID uuid.UUID, status *string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ServiceRequestView, error)
}

type ServiceRequestQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*ServiceRequestView, error)
	ListMine(ctx context.Context, clientID uuid.UUID, filters ServiceRequestFilters, cursor *Cursor, limit int) ([]*ServiceRequestView, *Cursor, error)
}

type serviceRequestQueriesImpl struct {
	readStore ServiceRequestReadStore
}

func NewServiceRequestQueries(readStore ServiceRequestReadStore) ServiceRequestQueries {
	return &serviceRequestQueriesImpl{readStore: readStore}
}

func (q *serviceRequestQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*ServiceRequestView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceRequestNotFound
		}
		return nil, err
	}

	if view.ClientID != actorID && actorRole != user.RoleAdmin {
		return nil, ErrServiceRequestAccess
	}

	return view, nil
}

// ListMine pages newest first. The returned cursor is nil on the last page.
func (q *serviceRequestQueriesImpl) ListMine(ctx context.Context, clientID uuid.UUID, filters ServiceRequestFilters, cursor *Cursor, limit int) ([]*ServiceRequestView, *Cursor, error) {
	limit = ValidateLimit(limit)
	// one extra row tells us whether another page exists
	fetch := int32(limit + 1) // #nosec G115 -- bounded by MaxListLimit

	var (
		items []*ServiceRequestView
		err   error
	)
	if cursor == nil || cursor.After == "" {
		items, err = q.readStore.FindByClientFirstPage(ctx, clientID, filters.Status, fetch)
	} else {
		lastCreatedAt, lastID, decErr := DecodeAfterCursor(cursor.After)
		if decErr != nil {
			return nil, nil, decErr
		}
		items, err = q.readStore.FindByClientKeyset(ctx, clientID, filters.Status, lastCreatedAt, lastID, fetch)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(items) <= limit {
		return items, nil, nil
	}

	items = items[:limit]
	last := items[len(items)-1]
	return items, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}
