//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"zurbo/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plain password of every user CreateTestUser inserts.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	defaultHash string
	hashErr     error
)

func defaultPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		defaultHash, hashErr = password.NewHasherWithCost(bcrypt.MinCost).Hash(DefaultPassword)
	})
	require.NoError(t, hashErr)
	return defaultHash
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
INSERT INTO users (id, email, password_hash, role, display_name, is_active)
VALUES ($1, $2, $3, $4, $5, true)
ON CONFLICT (email) DO NOTHING`,
		userID, strings.ToLower(email), defaultPasswordHash(t), role, strings.Split(email, "@")[0])
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", strings.ToLower(email)).Scan(&userID))
	}

	return userID
}

// CreateHeldOrder inserts an order whose payment is held in escrow with no confirmations.
func CreateHeldOrder(t *testing.T, db DBLike, clientID, providerID uuid.UUID) uuid.UUID {
	t.Helper()

	orderID := uuid.New()
	_, err := db.Exec(context.Background(), `
INSERT INTO service_orders (id, client_id, provider_id, payment_status)
VALUES ($1, $2, $3, 'held_in_escrow')`, orderID, clientID, providerID)
	require.NoError(t, err)
	return orderID
}

func CreateAuthorizedPayment(t *testing.T, db DBLike, orderID uuid.UUID, amountCents int64) uuid.UUID {
	t.Helper()

	paymentID := uuid.New()
	_, err := db.Exec(context.Background(), `
INSERT INTO escrow_payments (id, order_id, amount_cents, status)
VALUES ($1, $2, $3, 'authorized')`, paymentID, orderID, amountCents)
	require.NoError(t, err)
	return paymentID
}

func PaymentStatus(t *testing.T, db DBLike, paymentID uuid.UUID) string {
	t.Helper()

	var status string
	require.NoError(t, db.QueryRow(context.Background(),
		"SELECT status FROM escrow_payments WHERE id = $1", paymentID).Scan(&status))
	return status
}

func OrderPaymentStatus(t *testing.T, db DBLike, orderID uuid.UUID) string {
	t.Helper()

	var status string
	require.NoError(t, db.QueryRow(context.Background(),
		"SELECT payment_status FROM service_orders WHERE id = $1", orderID).Scan(&status))
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       string
	truncateErr       error
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateErr = err
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateErr = err
				return
			}
			tables = append(tables, t)
		}
		if err := rows.Err(); err != nil {
			truncateErr = err
			return
		}
		if len(tables) == 0 {
			truncateSQL = "SELECT 1"
			return
		}
		truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;"
	})
	if truncateErr != nil {
		return fmt.Errorf("failed to build TRUNCATE SQL: %w", truncateErr)
	}
	_, err := pool.Exec(ctx, truncateSQL)
	return err
}
