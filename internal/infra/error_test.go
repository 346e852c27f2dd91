//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"zurbo/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_Classification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, want: infra.KindConstraintViolated},
		{name: "other failure", err: errors.New("connection reset"), want: infra.KindDBFailure},
		{name: "explicit kind wins", err: pgx.ErrNoRows, kind: []infra.RepositoryErrorKind{infra.KindConflict}, want: infra.KindConflict},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op", c.err, c.kind...)
			assert.True(t, infra.IsKind(err, c.want), "got %v", err)
		})
	}
}

func TestRepositoryError_Unwrap(t *testing.T) {
	err := infra.WrapRepoErr("find user", pgx.ErrNoRows)

	assert.True(t, infra.IsNoRows(err))
	assert.Contains(t, err.Error(), "NOT_FOUND: find user")
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindNotFound))
}
