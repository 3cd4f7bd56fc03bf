package queries

import "context"

type SettingsQueries interface {
	Get(ctx context.Context) (*SettingsView, error)
}

type SettingsReadStore interface {
	Get(ctx context.Context) (*SettingsView, error)
}

type settingsQueriesImpl struct {
	readStore SettingsReadStore
}

func NewSettingsQueries(readStore SettingsReadStore) SettingsQueries {
	return &settingsQueriesImpl{
		readStore: readStore,
	}
}

func (q *settingsQueriesImpl) Get(ctx context.Context) (*SettingsView, error) {
	return q.readStore.Get(ctx)
}
