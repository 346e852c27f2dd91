//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"zurbo/internal/domain/servicerequest"
	"zurbo/internal/domain/usage"
	reqdto "zurbo/internal/handler/dto/request"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase"
	"zurbo/internal/usecase/commands"
	"zurbo/tests/fake"
	usecasemock "zurbo/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceRequestCommandsTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockGuard *usecasemock.MockRateLimitGuard
	uow       *fake.UoW
	clock     *clock.MockClock
	cmds      commands.ServiceRequestCommands
	clientID  uuid.UUID
}

func (s *ServiceRequestCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGuard = usecasemock.NewMockRateLimitGuard(s.mockCtrl)
	s.uow = fake.NewUoW()
	s.clock = clock.NewMockClock(baseTime)
	s.cmds = commands.NewServiceRequestCommands(s.uow, s.mockGuard, s.clock)
	s.clientID = uuid.New()
}

func (s *ServiceRequestCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestServiceRequestCommandsSuite(t *testing.T) {
	suite.Run(t, new(ServiceRequestCommandsTestSuite))
}

func validCreateRequest() reqdto.CreateServiceRequestRequest {
	return reqdto.CreateServiceRequestRequest{
		Category:    "eletricista",
		Description: "Trocar a fiação da cozinha e instalar duas tomadas novas.",
	}
}

func (s *ServiceRequestCommandsTestSuite) seedOpen() *servicerequest.ServiceRequest {
	category, description, err := (&reqdto.CreateServiceRequestRequest{
		Category:    "pintor",
		Description: "Pintar a sala e o corredor do apartamento.",
	}).ToDomain()
	s.Require().NoError(err)
	sr := servicerequest.NewServiceRequest(s.clientID, category, description, baseTime)
	s.uow.ServiceRequests[sr.ID()] = sr
	return sr
}

func (s *ServiceRequestCommandsTestSuite) TestCreate() {
	ctx := context.Background()

	s.Run("success: admitted request is stored open", func() {
		s.mockGuard.EXPECT().Admit(gomock.Any(), s.clientID).Return(usage.Allow(), nil).Times(1)

		sr, err := s.cmds.Create(ctx, s.clientID, validCreateRequest())
		s.Require().NoError(err)
		s.Equal(servicerequest.StatusOpen, sr.Status())
		s.Equal(servicerequest.CategoryEletricista, sr.Category())
		s.Equal(baseTime, sr.CreatedAt())
		s.Contains(s.uow.ServiceRequests, sr.ID())
	})

	s.Run("error: invalid input never reaches the guard", func() {
		req := validCreateRequest()
		req.Category = "astronauta"

		_, err := s.cmds.Create(ctx, s.clientID, req)
		s.True(errs.Is(err, errs.ErrDomainValidation))
		s.ErrorIs(err, servicerequest.ErrInvalidCategory)

		req = validCreateRequest()
		req.Description = "curta"
		_, err = s.cmds.Create(ctx, s.clientID, req)
		s.ErrorIs(err, servicerequest.ErrDescriptionTooShort)
	})

	s.Run("error: rejected decision is returned as a rate limit error", func() {
		resume := baseTime.Add(6 * time.Hour)
		decision := usage.Decision{
			Reason:     usage.ReasonHourlyLimit,
			ResumeAt:   &resume,
			RetryAfter: 6 * time.Hour,
			Message:    "Limite de 3 solicitações por hora excedido.",
		}
		s.mockGuard.EXPECT().Admit(gomock.Any(), s.clientID).Return(decision, nil).Times(1)
		before := len(s.uow.ServiceRequests)

		_, err := s.cmds.Create(ctx, s.clientID, validCreateRequest())
		s.True(errs.Is(err, usecase.ErrRateLimited))
		var rlErr *usecase.RateLimitError
		s.Require().ErrorAs(err, &rlErr)
		s.Equal(decision, rlErr.Decision)
		s.Len(s.uow.ServiceRequests, before)
	})

	s.Run("error: failed insert gives the slot back", func() {
		s.uow.Fail["CreateServiceRequest"] = errors.New("connection reset")
		defer delete(s.uow.Fail, "CreateServiceRequest")

		gomock.InOrder(
			s.mockGuard.EXPECT().Admit(gomock.Any(), s.clientID).Return(usage.Allow(), nil),
			s.mockGuard.EXPECT().ReleaseActiveRequest(gomock.Any(), s.clientID).Return(nil),
		)

		_, err := s.cmds.Create(ctx, s.clientID, validCreateRequest())
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})

	s.Run("error: failed insert after a degraded admission releases nothing", func() {
		s.uow.Fail["CreateServiceRequest"] = errors.New("connection reset")
		defer delete(s.uow.Fail, "CreateServiceRequest")

		s.mockGuard.EXPECT().Admit(gomock.Any(), s.clientID).Return(usage.AllowDegraded(), nil).Times(1)
		s.mockGuard.EXPECT().ReleaseActiveRequest(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.cmds.Create(ctx, s.clientID, validCreateRequest())
		s.Error(err)
	})
}

func (s *ServiceRequestCommandsTestSuite) TestDegradedAdmissionNeverFreesASlot() {
	ctx := context.Background()
	s.mockGuard.EXPECT().Admit(gomock.Any(), s.clientID).Return(usage.AllowDegraded(), nil).Times(1)
	s.mockGuard.EXPECT().ReleaseActiveRequest(gomock.Any(), gomock.Any()).Times(0)

	sr, err := s.cmds.Create(ctx, s.clientID, validCreateRequest())
	s.Require().NoError(err)
	s.False(sr.HoldsSlot())
	s.False(s.uow.ServiceRequests[sr.ID()].HoldsSlot())

	closed, err := s.cmds.Withdraw(ctx, sr.ID(), s.clientID)
	s.Require().NoError(err)
	s.Equal(servicerequest.StatusWithdrawn, closed.Status())
}

func (s *ServiceRequestCommandsTestSuite) TestWithdrawAndComplete() {
	ctx := context.Background()

	cases := []struct {
		name   string
		run    func(id uuid.UUID) (*servicerequest.ServiceRequest, error)
		status servicerequest.Status
	}{
		{
			name:   "withdraw",
			run:    func(id uuid.UUID) (*servicerequest.ServiceRequest, error) { return s.cmds.Withdraw(ctx, id, s.clientID) },
			status: servicerequest.StatusWithdrawn,
		},
		{
			name:   "complete",
			run:    func(id uuid.UUID) (*servicerequest.ServiceRequest, error) { return s.cmds.Complete(ctx, id, s.clientID) },
			status: servicerequest.StatusCompleted,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name+": closes once and releases one slot", func() {
			sr := s.seedOpen()
			s.clock.Set(baseTime.Add(time.Hour))
			s.mockGuard.EXPECT().ReleaseActiveRequest(gomock.Any(), s.clientID).Return(nil).Times(1)

			closed, err := tc.run(sr.ID())
			s.Require().NoError(err)
			s.Equal(tc.status, closed.Status())
			s.Require().NotNil(closed.ClosedAt())
			s.Equal(baseTime.Add(time.Hour), *closed.ClosedAt())

			// the second close is rejected and releases nothing
			_, err = tc.run(sr.ID())
			s.ErrorIs(err, commands.ErrServiceRequestNotOpen)
		})
	}

	s.Run("release failure does not fail the close", func() {
		sr := s.seedOpen()
		s.mockGuard.EXPECT().ReleaseActiveRequest(gomock.Any(), s.clientID).
			Return(errs.ErrDatabaseOperationFailed).Times(1)

		closed, err := s.cmds.Withdraw(ctx, sr.ID(), s.clientID)
		s.Require().NoError(err)
		s.Equal(servicerequest.StatusWithdrawn, closed.Status())
	})

	s.Run("error: another client cannot close it", func() {
		sr := s.seedOpen()

		_, err := s.cmds.Withdraw(ctx, sr.ID(), uuid.New())
		s.ErrorIs(err, commands.ErrServiceRequestNotOwner)
		s.True(s.uow.ServiceRequests[sr.ID()].IsOpen())
	})

	s.Run("error: unknown request", func() {
		_, err := s.cmds.Complete(ctx, uuid.New(), s.clientID)
		s.True(errs.Is(err, errs.ErrServiceRequestNotFound))
	})
}
