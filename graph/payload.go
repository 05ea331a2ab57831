package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/semtax/vocabulary/owl"
)

// PredicateIRI links a published entity to the ontology IRI it stands for.
const PredicateIRI = "semtax.entity.iri"

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "semtax",
		Category:    "inference",
		Version:     "v1",
		Description: "Reasoner-derived facts about one ontology entity",
		Factory:     func() any { return &InferencePayload{} },
	})
	if err != nil {
		panic("failed to register InferencePayload: " + err.Error())
	}

	vocabulary.Register(PredicateIRI,
		vocabulary.WithDescription("Ontology IRI of the entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(owl.Namespace+"iri"))
}

// InferenceType is the message type for inference payloads.
var InferenceType = message.Type{Domain: "semtax", Category: "inference", Version: "v1"}

// InferencePayload implements message.Payload and graph.Graphable for the
// facts a reasoning run derived about one entity.
type InferencePayload struct {
	EntityID_  string           `json:"id"`
	IRI        string           `json:"iri"`
	RunID      string           `json:"run_id,omitempty"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (p *InferencePayload) EntityID() string          { return p.EntityID_ }
func (p *InferencePayload) Triples() []message.Triple { return p.TripleData }
func (p *InferencePayload) Schema() message.Type      { return InferenceType }

func (p *InferencePayload) Validate() error {
	if p.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	if p.IRI == "" {
		return errors.New("entity IRI is required")
	}
	return nil
}

func (p *InferencePayload) MarshalJSON() ([]byte, error) {
	type Alias InferencePayload
	return json.Marshal((*Alias)(p))
}

func (p *InferencePayload) UnmarshalJSON(data []byte) error {
	type Alias InferencePayload
	return json.Unmarshal(data, (*Alias)(p))
}
