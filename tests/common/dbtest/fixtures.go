//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", the password every fixture user logs in with
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, full_name, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, "Test "+role, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestProperty(t *testing.T, db DBLike, ownerID uuid.UUID, title, slug string, priceCents int64) uuid.UUID {
	t.Helper()

	propertyID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO properties (id, owner_id, title, slug, property_type, price_cents, bedrooms, bathrooms, street, suburb, state, postcode)
		VALUES ($1, $2, $3, $4, 'house', $5, 3, 1, '12 Example St', 'Newtown', 'NSW', '2042')`,
		propertyID, ownerID, title, slug, priceCents)
	require.NoError(t, err)

	return propertyID
}

type UnlockRow struct {
	Status          string
	PaymentIntentID *string
	UnlockedAt      *time.Time
}

// GetUnlockRecord reads the ledger row for a (user, property) pair.
func GetUnlockRecord(t *testing.T, db DBLike, userID, propertyID uuid.UUID) *UnlockRow {
	t.Helper()

	var row UnlockRow
	err := db.QueryRow(context.Background(),
		"SELECT status, payment_intent_id, unlocked_at FROM unlock_records WHERE user_id = $1 AND property_id = $2",
		userID, propertyID).Scan(&row.Status, &row.PaymentIntentID, &row.UnlockedAt)
	require.NoError(t, err)
	return &row
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// The singleton settings row is part of the migration but vanishes on
	// TRUNCATE, so reseeding keeps checkout price reads working.
	_, err := pool.Exec(ctx, `
		INSERT INTO system_settings (id, unlock_price_cents, currency)
		VALUES (1, 999, 'aud')
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
