package queries

import (
	"context"

	"github.com/google/uuid"
)

type UnlockQueries interface {
	ListUnlockedProperties(ctx context.Context, userID uuid.UUID) ([]*UnlockedPropertyView, error)
}

type UnlockReadStore interface {
	UnlockAccessReadStore
	ListUnlockedByUser(ctx context.Context, userID uuid.UUID) ([]*UnlockedPropertyView, error)
}

type unlockQueriesImpl struct {
	readStore UnlockReadStore
}

func NewUnlockQueries(readStore UnlockReadStore) UnlockQueries {
	return &unlockQueriesImpl{
		readStore: readStore,
	}
}

func (q *unlockQueriesImpl) ListUnlockedProperties(ctx context.Context, userID uuid.UUID) ([]*UnlockedPropertyView, error) {
	return q.readStore.ListUnlockedByUser(ctx, userID)
}
