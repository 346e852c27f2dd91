//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"zurbo/internal/pkg/errs"
	"zurbo/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor_RoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 10, 12, 0, 0, 123456789, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

	require.NoError(t, err)
	assert.Equal(t, at.Truncate(time.Microsecond), gotAt)
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursor_Rejects(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	for name, cursor := range map[string]string{
		"empty":           "",
		"not base64":      "%%%",
		"unknown version": enc("v2:1-" + uuid.NewString()),
		"no separator":    enc("v1:1741608000000000"),
		"bad micros":      enc("v1:abc-" + uuid.NewString()),
		"bad uuid":        enc("v1:1741608000000000-nope"),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(cursor)
			assert.True(t, errs.Is(err, queries.ErrInvalidCursor), "got %v", err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
}
