package graph

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

type recordingPublisher struct {
	subjects []string
	bodies   [][]byte
	err      error
}

func (r *recordingPublisher) PublishToStream(_ context.Context, subject string, data []byte) error {
	if r.err != nil {
		return r.err
	}
	r.subjects = append(r.subjects, subject)
	r.bodies = append(r.bodies, data)
	return nil
}

func ex(s string) resource.Resource { return resource.NewURI("http://example.org/" + s) }

func inferredOntology(t *testing.T) *ontology.Ontology {
	t.Helper()
	o := ontology.New("http://example.org/zoo")
	require.NoError(t, o.AddSubClassOf(ex("Dog"), ex("Animal")))
	require.NoError(t, o.AddSameAs(ex("rex"), ex("max")))
	typ := resource.NewURI(owl.RDFType)
	o.Data.Add(taxonomy.MustEntry(ex("rex"), typ, ex("Animal"), taxonomy.DerivedByReasoner))
	o.Data.Add(taxonomy.MustEntry(ex("rex"), typ, ex("Dog"), taxonomy.DerivedByReasoner))
	o.Data.Add(taxonomy.MustEntry(ex("max"), typ, ex("Animal"), taxonomy.DerivedByReasoner))
	return o
}

func TestPublishInferences(t *testing.T) {
	pub := &recordingPublisher{}
	n, err := PublishInferences(context.Background(), pub, inferredOntology(t), "run-7")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{GraphIngestSubject, GraphIngestSubject}, pub.subjects)

	var wire struct {
		Payload InferencePayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(pub.bodies[1], &wire))
	p := wire.Payload
	assert.Equal(t, ex("rex").IRI(), p.IRI)
	assert.Equal(t, EntityID(ex("rex").IRI()), p.EntityID())
	assert.Equal(t, "run-7", p.RunID)
	require.NoError(t, p.Validate())

	// One identity triple plus the two derived types; the asserted sameAs and
	// its construction-derived mirror are not published.
	require.Len(t, p.Triples(), 3)
	assert.Equal(t, PredicateIRI, p.Triples()[0].Predicate)
	for _, tr := range p.Triples() {
		assert.Equal(t, p.EntityID(), tr.Subject)
		assert.Equal(t, "run-7", tr.Context)
	}
}

func TestPublishInferencesSkips(t *testing.T) {
	n, err := PublishInferences(context.Background(), nil, inferredOntology(t), "run")
	require.NoError(t, err)
	assert.Zero(t, n)

	pub := &recordingPublisher{}
	n, err = PublishInferences(context.Background(), pub, ontology.New("http://example.org/empty"), "run")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.bodies)
}

func TestPublishInferencesError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("stream unavailable")}
	_, err := PublishInferences(context.Background(), pub, inferredOntology(t), "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream unavailable")
}

func TestEntityID(t *testing.T) {
	a := EntityID("http://example.org/rex")
	assert.Equal(t, a, EntityID("http://example.org/rex"))
	assert.NotEqual(t, a, EntityID("http://example.org/max"))
	assert.True(t, strings.HasPrefix(a, "semtax.local.ontology.entity."))
}

func TestInferencePayloadValidate(t *testing.T) {
	assert.Error(t, (&InferencePayload{}).Validate())
	assert.Error(t, (&InferencePayload{EntityID_: "x"}).Validate())
	assert.NoError(t, (&InferencePayload{EntityID_: "x", IRI: "http://example.org/x"}).Validate())
	assert.Equal(t, InferenceType, (&InferencePayload{}).Schema())
}
