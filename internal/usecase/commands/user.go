package commands

//go:generate mockgen -source=user.go -destination=../../../tests/mock/commands/user_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"zurbo/internal/domain/user"
	"zurbo/internal/infra"
	"zurbo/internal/pkg/clock"
	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrEmailTaken = errs.New("email already registered")

type CreateUserInput struct {
	Email       string
	Password    string
	Role        string
	DisplayName string
}

type UserCommands interface {
	Create(ctx context.Context, in CreateUserInput) (uuid.UUID, error)
}

// PasswordHasher is satisfied by *password.Hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type userCommandsImpl struct {
	uow    shared.UnitOfWork
	hasher PasswordHasher
	clock  clock.Clock
}

func NewUserCommands(uow shared.UnitOfWork, hasher PasswordHasher, clk clock.Clock) UserCommands {
	return &userCommandsImpl{
		uow:    uow,
		hasher: hasher,
		clock:  clk,
	}
}

func (u *userCommandsImpl) Create(ctx context.Context, in CreateUserInput) (uuid.UUID, error) {
	credentials, err := user.NewCredentials(in.Email, in.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	hash, err := u.hasher.Hash(credentials.Password().Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	newUser, err := user.NewUser(credentials.Email(), hash, role, in.DisplayName, u.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, tx.DB(), newUser)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, errs.Mark(errs.Wrap(err, "failed to create user"), errs.ErrDatabaseOperationFailed)
	}

	slog.InfoContext(ctx, "user created", "user_id", newUser.ID(), "role", string(role))
	return newUser.ID(), nil
}
