//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"zurbo/internal/domain/user"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/commands"
	"zurbo/tests/fake"
	commandsmock "zurbo/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserCommands_Create(t *testing.T) {
	valid := commands.CreateUserInput{
		Email:       "prestador@example.com",
		Password:    "password123",
		Role:        "provider",
		DisplayName: "Prestador",
	}

	tests := []struct {
		name    string
		mutate  func(in *commands.CreateUserInput)
		setup   func(uow *fake.UoW, hasher *commandsmock.MockPasswordHasher)
		wantErr error
	}{
		{
			name: "success",
			setup: func(_ *fake.UoW, hasher *commandsmock.MockPasswordHasher) {
				hasher.EXPECT().Hash("password123").Return("hashed", nil)
			},
		},
		{
			name:    "invalid email",
			mutate:  func(in *commands.CreateUserInput) { in.Email = "prestador" },
			wantErr: errs.ErrDomainValidation,
		},
		{
			name:    "short password",
			mutate:  func(in *commands.CreateUserInput) { in.Password = "short" },
			wantErr: errs.ErrDomainValidation,
		},
		{
			name:    "unknown role",
			mutate:  func(in *commands.CreateUserInput) { in.Role = "superuser" },
			wantErr: errs.ErrDomainValidation,
		},
		{
			name: "email already registered",
			setup: func(uow *fake.UoW, hasher *commandsmock.MockPasswordHasher) {
				email, _ := user.NewEmail("prestador@example.com")
				existing, _ := user.NewUser(email, "x", user.RoleClient, "", baseTime)
				uow.Users[existing.ID()] = existing
				hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
			},
			wantErr: commands.ErrEmailTaken,
		},
		{
			name: "database failure",
			setup: func(uow *fake.UoW, hasher *commandsmock.MockPasswordHasher) {
				uow.Fail["CreateUser"] = errors.New("connection reset")
				hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
			},
			wantErr: errs.ErrDatabaseOperationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			hasher := commandsmock.NewMockPasswordHasher(ctrl)
			uow := fake.NewUoW()
			if tt.setup != nil {
				tt.setup(uow, hasher)
			}
			in := valid
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			id, err := commands.NewUserCommands(uow, hasher, clock.NewMockClock(baseTime)).Create(context.Background(), in)

			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			stored := uow.Users[id]
			require.NotNil(t, stored)
			assert.Equal(t, "hashed", stored.PasswordHash())
			assert.Equal(t, user.RoleProvider, stored.Role())
			assert.True(t, stored.IsActive())
		})
	}
}
