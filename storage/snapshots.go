package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semtax/ontology"
)

// BucketSnapshots holds CBOR snapshots keyed by snapshot id.
const BucketSnapshots = "SEMTAX_SNAPSHOTS"

// SnapshotStore keeps ontology snapshots in a NATS KV bucket.
type SnapshotStore struct {
	kv jetstream.KeyValue
}

// NewSnapshotStore creates a SnapshotStore with the given JetStream context.
// It creates the bucket if it doesn't exist.
func NewSnapshotStore(ctx context.Context, js jetstream.JetStream) (*SnapshotStore, error) {
	kv, err := getOrCreateBucket(ctx, js, BucketSnapshots)
	if err != nil {
		return nil, fmt.Errorf("create snapshots bucket: %w", err)
	}
	return &SnapshotStore{kv: kv}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Semtax %s storage", strings.ToLower(name)),
		History:     5,
	})
}

// Put stores a snapshot of o under a fresh id and returns the id.
func (s *SnapshotStore) Put(ctx context.Context, o *ontology.Ontology) (string, error) {
	data, err := EncodeSnapshot(o)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	if _, err := s.kv.Put(ctx, id, data); err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}
	return id, nil
}

// Get restores the snapshot stored under id.
func (s *SnapshotStore) Get(ctx context.Context, id string) (*ontology.Ontology, error) {
	entry, err := s.kv.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return DecodeSnapshot(entry.Value())
}

// List returns every snapshot id in ascending order.
func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list snapshot keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the snapshot stored under id.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) ||
		(err != nil && strings.Contains(err.Error(), "key not found"))
}
