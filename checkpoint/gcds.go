package checkpoint

import (
	"context"
	"log/slog"

	"cloud.google.com/go/datastore"
)

// DataStore is a thin typed wrapper over a Cloud Datastore kind with
// name-keyed entities.
type DataStore[T any] struct {
	DSClient *datastore.Client
	kind     string
	IDToKey  func(id string) *datastore.Key
}

func NewDataStore[T any](client *datastore.Client, kind string) *DataStore[T] {
	return &DataStore[T]{
		DSClient: client,
		kind:     kind,
		IDToKey: func(id string) *datastore.Key {
			return datastore.NameKey(kind, id, nil)
		},
	}
}

func (ds *DataStore[T]) Kind() string {
	return ds.kind
}

// GetByID loads the entity stored under id. Missing entities map to
// ErrNotFound so callers never see driver-level sentinels.
func (ds *DataStore[T]) GetByID(ctx context.Context, id string, out *T) error {
	err := ds.DSClient.Get(ctx, ds.IDToKey(id), out)
	if err == datastore.ErrNoSuchEntity {
		return ErrNotFound
	}
	if err != nil {
		slog.Error("error getting entity by id", "kind", ds.kind, "id", id, "err", err)
	}
	return err
}

// PutByID writes the entity under id, overwriting any previous value.
func (ds *DataStore[T]) PutByID(ctx context.Context, id string, entity *T) error {
	_, err := ds.DSClient.Put(ctx, ds.IDToKey(id), entity)
	if err != nil {
		slog.Error("error saving entity", "kind", ds.kind, "id", id, "err", err)
	}
	return err
}
