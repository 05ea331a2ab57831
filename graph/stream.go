package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// GraphStream is the JetStream stream that carries graph ingestion.
const GraphStream = "GRAPH"

// EnsureStream creates the graph stream when the server does not have one.
// An existing stream is left untouched so a running graph keeps its own
// retention settings.
func EnsureStream(ctx context.Context, js jetstream.JetStream) error {
	_, err := js.Stream(ctx, GraphStream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return fmt.Errorf("lookup stream %s: %w", GraphStream, err)
	}
	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     GraphStream,
		Subjects: []string{GraphIngestSubject},
		Storage:  jetstream.MemoryStorage,
		MaxAge:   24 * time.Hour,
		Replicas: 1,
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", GraphStream, err)
	}
	return nil
}
