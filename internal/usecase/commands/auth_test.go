//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"zurbo/internal/domain/user"
	reqdto "zurbo/internal/handler/dto/request"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/pkg/jwt"
	"zurbo/internal/pkg/password"
	"zurbo/internal/usecase/commands"
	"zurbo/internal/usecase/queries"
	"zurbo/tests/fake"
	queriesmock "zurbo/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockReadStore *queriesmock.MockUserReadStore
	uow           *fake.UoW
	jwtService    *jwt.Service
	cmds          commands.AuthCommands

	view *queries.AuthorizedUserView
	hash string
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockReadStore = queriesmock.NewMockUserReadStore(s.mockCtrl)
	s.uow = fake.NewUoW()
	clk := clock.NewMockClock(time.Now())
	s.jwtService = jwt.NewService("test-secret", time.Hour, "zurbo-test", clk)
	hasher := password.NewHasherWithCost(bcrypt.MinCost)
	s.cmds = commands.NewAuthCommands(s.uow, s.mockReadStore, s.jwtService, hasher, clk)

	hash, err := hasher.Hash("password123")
	s.Require().NoError(err)
	s.hash = hash
	s.view = &queries.AuthorizedUserView{
		ID:          uuid.New(),
		Email:       "cliente@example.com",
		Role:        string(user.RoleClient),
		DisplayName: "Cliente",
		IsActive:    true,
	}
	email, _ := user.NewEmail(s.view.Email)
	s.uow.Users[s.view.ID] = user.ReconstructUser(s.view.ID, email, hash, user.RoleClient, "Cliente", nil, true, time.Now(), time.Now())
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) TestLogin() {
	ctx := context.Background()

	s.Run("success: issues a token carrying the role", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), "cliente@example.com").
			Return(s.view, s.hash, nil).Times(1)

		res, err := s.cmds.Login(ctx, reqdto.LoginRequest{Email: "Cliente@Example.com", Password: "password123"})
		s.Require().NoError(err)
		s.Equal(s.view.ID, res.UserID)
		s.Equal(user.RoleClient, res.Role)
		s.Equal(time.Hour, res.ExpiresIn)

		claims, err := s.jwtService.ValidateToken(res.AccessToken)
		s.Require().NoError(err)
		s.Equal(s.view.ID, claims.UserID)
		s.Equal(1, s.uow.Calls["UpdateLastLogin"])
	})

	s.Run("success: last login failure does not fail the login", func() {
		s.uow.Fail["UpdateLastLogin"] = errors.New("connection reset")
		defer delete(s.uow.Fail, "UpdateLastLogin")
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(s.view, s.hash, nil).Times(1)

		_, err := s.cmds.Login(ctx, reqdto.LoginRequest{Email: s.view.Email, Password: "password123"})
		s.NoError(err)
	})

	s.Run("error: wrong password and unknown email look the same", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), s.view.Email).Return(s.view, s.hash, nil).Times(1)
		_, err := s.cmds.Login(ctx, reqdto.LoginRequest{Email: s.view.Email, Password: "wrong-password"})
		s.ErrorIs(err, commands.ErrInvalidCredentials)

		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), "ninguem@example.com").
			Return(nil, "", queries.ErrUserNotFound).Times(1)
		_, err = s.cmds.Login(ctx, reqdto.LoginRequest{Email: "ninguem@example.com", Password: "password123"})
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: inactive user", func() {
		inactive := *s.view
		inactive.IsActive = false
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(&inactive, s.hash, nil).Times(1)

		_, err := s.cmds.Login(ctx, reqdto.LoginRequest{Email: s.view.Email, Password: "password123"})
		s.ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("error: malformed credentials", func() {
		_, err := s.cmds.Login(ctx, reqdto.LoginRequest{Email: "not-an-email", Password: "password123"})
		s.True(errs.Is(err, commands.ErrAuthenticationFailed), "got %v", err)
		s.False(errs.Is(err, commands.ErrInvalidCredentials))
	})
}
