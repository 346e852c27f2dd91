//go:build unit

package user_test

import (
	"testing"
	"time"

	"zurbo/internal/domain/user"
	"zurbo/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(user.User{}, user.Email{}),
	cmpopts.IgnoreFields(user.User{}, "id", "createdAt", "updatedAt"),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("builds a valid client", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		email, _ := user.NewEmail("test@example.com")
		expected, err := user.NewUser(email, "hashed_password", user.RoleClient, "Test User", time.Now())
		require.NoError(t, err)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid address",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "mixed case is accepted",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("Maria.Silva@Example.com.br") },
			},
			{
				name:   "empty",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "no domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing @",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "display name form",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("Ana <ana@example.com>") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("role", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "client",
				mutate: func(b *builder.UserBuilder) { b.WithRole(user.RoleClient) },
			},
			{
				name:   "provider",
				mutate: func(b *builder.UserBuilder) { b.WithRole(user.RoleProvider) },
			},
			{
				name:   "admin",
				mutate: func(b *builder.UserBuilder) { b.WithRole(user.RoleAdmin) },
			},
			{
				name:   "unknown role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("operator") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "empty role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("state", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "active",
				mutate: func(b *builder.UserBuilder) {},
			},
			{
				name:   "inactive",
				mutate: func(b *builder.UserBuilder) { b.AsInactive() },
			},
		})
	})
}

func TestNewUser_RejectsUnknownRole(t *testing.T) {
	email, err := user.NewEmail("ana@example.com")
	require.NoError(t, err)

	u, err := user.NewUser(email, "hash", user.Role("operator"), "Ana", time.Now())

	assert.ErrorIs(t, err, user.ErrInvalidRole)
	assert.Nil(t, u)
}

func TestNewEmail_Normalizes(t *testing.T) {
	email, err := user.NewEmail("  Maria@Example.COM ")

	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", email.Value())
}

func TestNewCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		errIs    error
	}{
		{name: "valid", email: "ana@example.com", password: "password123"},
		{name: "bad email", email: "ana", password: "password123", errIs: user.ErrInvalidEmail},
		{name: "short password", email: "ana@example.com", password: "1234567", errIs: user.ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := user.NewCredentials(tt.email, tt.password)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, creds.Email().Value())
			assert.Equal(t, tt.password, creds.Password().Value())
		})
	}
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewUserBuilder()
			tc.mutate(b)

			u, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.IsActive, u.IsActive())
		})
	}
}
