//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"realty-api/internal/domain/unlock"
	"realty-api/internal/infra"
	"realty-api/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Create Unlock Record Tests
// =============================================================================

func TestUnlockRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		rowErr        error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: pending record inserted",
		},
		{
			name:          "error: duplicate session for the same pair",
			rowErr:        &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectedError: true,
			expectKind:    infra.KindDuplicateKey,
		},
		{
			name:          "error: database error occurs",
			rowErr:        errors.New("database connection error"),
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := unlock.NewPendingRecord(uuid.New(), uuid.New(), "cs_test_1", 999, "aud")
			mockDB := &fakeDBTX{rowID: rec.ID(), rowErr: tc.rowErr}
			repo := repository.NewUnlockRepository()

			id, actualError := repo.Create(ctx, mockDB, rec)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, actualError)
			assert.Equal(t, rec.ID(), id)
		})
	}
}

// =============================================================================
// Finalize / Fail Tests
// =============================================================================

// The UPDATE statements are the whole concurrency story for the ledger:
// each one must carry the status <> 'succeeded' guard so the redirect and
// webhook paths can race without downgrading a paid unlock.

func TestUnlockRepository_SucceedBySessionID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	intentID := "pi_test_1"

	t.Run("success: pending record finalized", func(t *testing.T) {
		mockDB := &fakeDBTX{execTag: pgconn.NewCommandTag("UPDATE 1")}
		repo := repository.NewUnlockRepository()

		affected, err := repo.SucceedBySessionID(ctx, mockDB, "cs_test_1", &intentID, now)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.Contains(t, mockDB.lastSQL, "status <> 'succeeded'")
		assert.Contains(t, mockDB.lastSQL, "COALESCE($2, payment_intent_id)")
		assert.Contains(t, mockDB.lastSQL, "COALESCE(unlocked_at, $3)")
		assert.Equal(t, "cs_test_1", mockDB.lastArgs[0])
	})

	t.Run("success: already-succeeded record matches nothing", func(t *testing.T) {
		mockDB := &fakeDBTX{execTag: pgconn.NewCommandTag("UPDATE 0")}
		repo := repository.NewUnlockRepository()

		affected, err := repo.SucceedBySessionID(ctx, mockDB, "cs_test_1", nil, now)

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		mockDB := &fakeDBTX{execErr: errors.New("database connection error")}
		repo := repository.NewUnlockRepository()

		_, err := repo.SucceedBySessionID(ctx, mockDB, "cs_test_1", nil, now)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestUnlockRepository_SucceedByIntentID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockDB := &fakeDBTX{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := repository.NewUnlockRepository()

	affected, err := repo.SucceedByIntentID(ctx, mockDB, "pi_test_1", now)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Contains(t, mockDB.lastSQL, "status <> 'succeeded'")
	assert.Contains(t, mockDB.lastSQL, "COALESCE(unlocked_at, $2)")
}

func TestUnlockRepository_FailByIntentID(t *testing.T) {
	ctx := context.Background()

	t.Run("success: pending record marked failed", func(t *testing.T) {
		mockDB := &fakeDBTX{execTag: pgconn.NewCommandTag("UPDATE 1")}
		repo := repository.NewUnlockRepository()

		affected, err := repo.FailByIntentID(ctx, mockDB, "pi_test_1")

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.Contains(t, mockDB.lastSQL, "status <> 'succeeded'")
	})

	t.Run("success: succeeded record is never downgraded", func(t *testing.T) {
		mockDB := &fakeDBTX{execTag: pgconn.NewCommandTag("UPDATE 0")}
		repo := repository.NewUnlockRepository()

		affected, err := repo.FailByIntentID(ctx, mockDB, "pi_test_1")

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestUnlockRepository_DeleteStalePending(t *testing.T) {
	ctx := context.Background()

	mockDB := &fakeDBTX{execTag: pgconn.NewCommandTag("DELETE 1")}
	repo := repository.NewUnlockRepository()

	affected, err := repo.DeleteStalePending(ctx, mockDB, uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Contains(t, mockDB.lastSQL, "status <> 'succeeded'")
}

// =============================================================================
// Test Helper Functions
// =============================================================================

// fakeDBTX records the last statement and returns canned results, standing
// in for *pgxpool.Pool behind the db.DBTX interface.
type fakeDBTX struct {
	execTag  pgconn.CommandTag
	execErr  error
	rowID    uuid.UUID
	rowErr   error
	lastSQL  string
	lastArgs []any
}

func (f *fakeDBTX) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL = sql
	f.lastArgs = args
	return f.execTag, f.execErr
}

func (f *fakeDBTX) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	panic("fakeDBTX.Query was called unexpectedly")
}

func (f *fakeDBTX) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL = sql
	f.lastArgs = args
	return fakeRow{id: f.rowID, err: f.rowErr}
}

type fakeRow struct {
	id  uuid.UUID
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*uuid.UUID)) = r.id
	return nil
}
