package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"

	"github.com/antonpk1/excalidraw-mcp-app/scene"
)

const checkpointKind = "Checkpoint"

// checkpointRecord is the Datastore shape of a checkpoint. Elements are
// stored as an opaque JSON blob: they are only ever read back whole, and
// indexing hundreds of nested style fields would be waste.
type checkpointRecord struct {
	Id        string    `datastore:"id"`
	Elements  []byte    `datastore:"elements,noindex"`
	Plan      string    `datastore:"plan,noindex"`
	CreatedAt time.Time `datastore:"createdAt"`
	UpdatedAt time.Time `datastore:"updatedAt"`
}

// DatastoreStore is a Cloud Datastore backed Store for deployments where
// checkpoints must survive the serving process.
type DatastoreStore struct {
	ds *DataStore[checkpointRecord]
}

// NewDatastoreStore wraps an existing Datastore client.
func NewDatastoreStore(client *datastore.Client) *DatastoreStore {
	return &DatastoreStore{ds: NewDataStore[checkpointRecord](client, checkpointKind)}
}

// Save overwrites the record under id, carrying the original creation time
// forward when the id already exists.
func (s *DatastoreStore) Save(ctx context.Context, id string, cp *Checkpoint) error {
	blob, err := scene.MarshalElements(cp.Elements)
	if err != nil {
		return fmt.Errorf("serializing checkpoint %s: %w", id, err)
	}
	now := time.Now().UTC()
	rec := checkpointRecord{Id: id, Elements: blob, Plan: cp.Plan, CreatedAt: now, UpdatedAt: now}
	var prev checkpointRecord
	if err := s.ds.GetByID(ctx, id, &prev); err == nil {
		rec.CreatedAt = prev.CreatedAt
	}
	return s.ds.PutByID(ctx, id, &rec)
}

// Load reads the record under id, or ErrNotFound.
func (s *DatastoreStore) Load(ctx context.Context, id string) (*Checkpoint, error) {
	var rec checkpointRecord
	if err := s.ds.GetByID(ctx, id, &rec); err != nil {
		return nil, err
	}
	var els []*scene.Element
	if err := json.Unmarshal(rec.Elements, &els); err != nil {
		return nil, fmt.Errorf("decoding checkpoint %s: %w", id, err)
	}
	return &Checkpoint{Elements: els, Plan: rec.Plan}, nil
}
