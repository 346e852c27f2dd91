package commands

//go:generate mockgen -source=service_request.go -destination=../../../tests/mock/commands/service_request_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"zurbo/internal/domain/servicerequest"
	reqdto "zurbo/internal/handler/dto/request"
	"zurbo/internal/infra"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrServiceRequestNotOwner = servicerequest.ErrNotOwner
	ErrServiceRequestNotOpen  = servicerequest.ErrNotOpen
)

type ServiceRequestCommands interface {
	// Create returns a *usecase.RateLimitError when the client is over a limit.
	Create(ctx context.Context, clientID uuid.UUID, req reqdto.CreateServiceRequestRequest) (*servicerequest.ServiceRequest, error)
	Withdraw(ctx context.Context, id, actorID uuid.UUID) (*servicerequest.ServiceRequest, error)
	Complete(ctx context.Context, id, actorID uuid.UUID) (*servicerequest.ServiceRequest, error)
}

type serviceRequestCommandsImpl struct {
	uow   shared.UnitOfWork
	guard usecase.RateLimitGuard
	clock clock.Clock
}

func NewServiceRequestCommands(uow shared.UnitOfWork, guard usecase.RateLimitGuard, clk clock.Clock) ServiceRequestCommands {
	return &serviceRequestCommandsImpl{
		uow:   uow,
		guard: guard,
		clock: clk,
	}
}

func (s *serviceRequestCommandsImpl) Create(ctx context.Context, clientID uuid.UUID, req reqdto.CreateServiceRequestRequest) (*servicerequest.ServiceRequest, error) {
	category, description, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	decision, err := s.guard.Admit(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &usecase.RateLimitError{Decision: decision}
	}

	sr := servicerequest.NewServiceRequest(clientID, category, description, s.clock.Now())
	if decision.Degraded {
		sr.Unmetered()
	}
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.ServiceRequests().Create(ctx, tx.DB(), sr)
	})
	if err != nil {
		// a degraded admission never took a slot
		if !decision.Degraded {
			s.release(context.WithoutCancel(ctx), clientID, sr.ID())
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to create service request"), errs.ErrDatabaseOperationFailed)
	}

	slog.InfoContext(ctx, "service request created",
		"service_request_id", sr.ID(),
		"client_id", clientID,
		"category", string(category),
		"degraded", decision.Degraded)
	return sr, nil
}

func (s *serviceRequestCommandsImpl) Withdraw(ctx context.Context, id, actorID uuid.UUID) (*servicerequest.ServiceRequest, error) {
	return s.close(ctx, id, actorID, (*servicerequest.ServiceRequest).Withdraw)
}

func (s *serviceRequestCommandsImpl) Complete(ctx context.Context, id, actorID uuid.UUID) (*servicerequest.ServiceRequest, error) {
	return s.close(ctx, id, actorID, (*servicerequest.ServiceRequest).Complete)
}

func (s *serviceRequestCommandsImpl) close(
	ctx context.Context,
	id, actorID uuid.UUID,
	transition func(*servicerequest.ServiceRequest, time.Time) error,
) (*servicerequest.ServiceRequest, error) {
	var sr *servicerequest.ServiceRequest
	var closed bool

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		sr, err = tx.ServiceRequests().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if err := sr.EnsureOwner(actorID); err != nil {
			return err
		}
		if err := transition(sr, s.clock.Now()); err != nil {
			return err
		}
		closed, err = tx.ServiceRequests().Close(ctx, tx.DB(), sr)
		return err
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.ErrServiceRequestNotFound
		case errs.Is(err, servicerequest.ErrNotOwner), errs.Is(err, servicerequest.ErrNotOpen):
			return nil, err
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to close service request"), errs.ErrDatabaseOperationFailed)
	}

	if !closed {
		// someone else closed it between our read and the update
		return nil, ErrServiceRequestNotOpen
	}

	if sr.HoldsSlot() {
		s.release(ctx, actorID, sr.ID())
	}
	slog.InfoContext(ctx, "service request closed",
		"service_request_id", sr.ID(),
		"status", string(sr.Status()))
	return sr, nil
}

// release never fails the caller; a missed release only leaves the counter high
// until the next unblock.
func (s *serviceRequestCommandsImpl) release(ctx context.Context, clientID, requestID uuid.UUID) {
	if err := s.guard.ReleaseActiveRequest(ctx, clientID); err != nil {
		slog.ErrorContext(ctx, "failed to release active request slot",
			"client_id", clientID,
			"service_request_id", requestID,
			"error", err.Error())
	}
}
