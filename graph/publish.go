// Package graph publishes reasoner-derived facts to the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/google/uuid"

	"github.com/c360studio/semtax/export"
	"github.com/c360studio/semtax/ontology"
)

// Subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Publisher is the part of *natsclient.Client the publisher needs.
type Publisher interface {
	PublishToStream(ctx context.Context, subject string, data []byte) error
}

// EntityID generates a consistent entity ID for an ontology IRI.
// Format: semtax.local.ontology.entity.<uuid-v5 of the IRI>
func EntityID(iri string) string {
	return "semtax.local.ontology.entity." + uuid.NewSHA1(uuid.NameSpaceURL, []byte(iri)).String()
}

// PublishInferences publishes the reasoner-derived entries of o, one message
// per subject, and returns how many messages were sent. A nil publisher
// skips publishing.
func PublishInferences(ctx context.Context, p Publisher, o *ontology.Ontology, runID string) (int, error) {
	if p == nil || o == nil {
		return 0, nil // Skip publishing if no NATS client (graceful degradation)
	}

	now := time.Now()
	triples := export.NewExporter(export.ProfileInferred,
		export.WithRunID(runID),
		export.WithClock(func() time.Time { return now })).Triples(o)

	bySubject := make(map[string][]message.Triple)
	for _, t := range triples {
		if t.Source != export.SourceReasoner {
			continue
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}
	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	sent := 0
	for _, iri := range subjects {
		entityID := EntityID(iri)
		data := []message.Triple{{
			Subject:    entityID,
			Predicate:  PredicateIRI,
			Object:     iri,
			Source:     export.SourceReasoner,
			Timestamp:  now,
			Confidence: 1.0,
			Context:    runID,
		}}
		for _, t := range bySubject[iri] {
			t.Subject = entityID
			data = append(data, t)
		}

		payload := &InferencePayload{
			EntityID_:  entityID,
			IRI:        iri,
			RunID:      runID,
			TripleData: data,
			UpdatedAt:  now,
		}
		msg := message.NewBaseMessage(InferenceType, payload, "semtax")
		body, err := json.Marshal(msg)
		if err != nil {
			return sent, fmt.Errorf("marshal inference entity: %w", err)
		}
		if err := p.PublishToStream(ctx, GraphIngestSubject, body); err != nil {
			return sent, fmt.Errorf("publish inference entity: %w", err)
		}
		sent++
	}
	return sent, nil
}
