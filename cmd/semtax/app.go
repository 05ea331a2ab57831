package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semtax/config"
	"github.com/c360studio/semtax/export"
	"github.com/c360studio/semtax/graph"
	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/reasoner"
	"github.com/c360studio/semtax/storage"
)

// errNoDocuments is returned when the configured patterns match nothing.
var errNoDocuments = errors.New("no ontology documents configured")

// App wires configuration, storage and NATS around the reasoner.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	out      io.Writer

	// NATS, set by Connect
	natsClient *natsclient.Client
	snapshots  *storage.SnapshotStore
}

// RunResult describes one reasoning pass.
type RunResult struct {
	RunID      string
	Ontology   *ontology.Ontology
	Report     reasoner.Report
	Published  int
	SnapshotID string
}

// NewApp creates an application instance writing RDF output to out.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		out:      out,
	}
}

// Documents resolves the configured document patterns against the config
// root. Explicit paths replace the configured patterns.
func (a *App) Documents(paths []string) ([]string, error) {
	patterns := a.cfg.Documents
	if len(paths) > 0 {
		patterns = paths
	}
	if len(patterns) == 0 {
		return nil, errNoDocuments
	}
	docs, err := export.ResolveDocuments(a.cfg.Root, patterns)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", errNoDocuments, strings.Join(patterns, ", "))
	}
	return docs, nil
}

// LoadOntology merges the given documents into one ontology.
func (a *App) LoadOntology(iri string, docs []string) (*ontology.Ontology, error) {
	o, err := export.LoadOntology(iri, docs, ontology.WithSeed(!a.cfg.Reasoner.SkipSeed))
	if err != nil {
		return nil, fmt.Errorf("load ontology: %w", err)
	}
	a.logger.Debug("Loaded ontology",
		"iri", o.IRI.IRI(),
		"documents", len(docs),
		"entries", o.Len())
	return o, nil
}

// Reasoner returns a reasoner over o configured from the reasoner section.
func (a *App) Reasoner(o *ontology.Ontology) *reasoner.Reasoner {
	return reasoner.New(o,
		reasoner.WithLogger(a.logger),
		reasoner.WithMetrics(a.registry),
		reasoner.WithRules(a.cfg.Reasoner.Rules...),
		reasoner.WithMaxRounds(a.cfg.Reasoner.MaxRounds),
	)
}

// Connect opens the NATS connection when one is configured. Without a URL
// the app runs standalone and nothing is published.
func (a *App) Connect(ctx context.Context) error {
	if a.cfg.NATS.URL == "" {
		return nil
	}

	a.logger.Info("Connecting to NATS", "url", a.cfg.NATS.URL)
	client, err := natsclient.NewClient(a.cfg.NATS.URL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return fmt.Errorf("create NATS client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("NATS connection failed: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.WaitForConnection(connCtx); err != nil {
		_ = client.Close(ctx)
		return fmt.Errorf("NATS connection failed: %w", err)
	}

	js, err := client.JetStream()
	if err != nil {
		_ = client.Close(ctx)
		return fmt.Errorf("get jetstream: %w", err)
	}
	if err := graph.EnsureStream(ctx, js); err != nil {
		_ = client.Close(ctx)
		return err
	}
	snapshots, err := storage.NewSnapshotStore(ctx, js)
	if err != nil {
		_ = client.Close(ctx)
		return err
	}

	a.natsClient = client
	a.snapshots = snapshots
	a.logger.Info("Connected to NATS", "url", a.cfg.NATS.URL)
	return nil
}

// Close releases the NATS connection.
func (a *App) Close(ctx context.Context) {
	if a.natsClient == nil {
		return
	}
	if err := a.natsClient.Close(ctx); err != nil {
		a.logger.Warn("Failed to close NATS client", "error", err)
	}
	a.natsClient = nil
	a.snapshots = nil
}

// publisher returns nil, not a typed nil, when NATS is not connected.
func (a *App) publisher() graph.Publisher {
	if a.natsClient == nil {
		return nil
	}
	return a.natsClient
}

// Reason loads the documents, runs the reasoner, persists and publishes the
// result, then writes the configured export to out.
func (a *App) Reason(ctx context.Context, iri string, docs []string) (*RunResult, error) {
	o, err := a.LoadOntology(iri, docs)
	if err != nil {
		return nil, err
	}

	report, err := a.Reasoner(o).Run()
	if err != nil {
		return nil, err
	}

	result := &RunResult{RunID: uuid.New().String(), Ontology: o, Report: report}

	if err := a.persist(ctx, o); err != nil {
		return nil, err
	}

	result.Published, err = graph.PublishInferences(ctx, a.publisher(), o, result.RunID)
	if err != nil {
		return nil, err
	}
	if a.snapshots != nil {
		result.SnapshotID, err = a.snapshots.Put(ctx, o)
		if err != nil {
			return nil, err
		}
	}

	if err := a.Export(o, result.RunID); err != nil {
		return nil, err
	}

	a.logger.Info("Reasoning run complete",
		"run_id", result.RunID,
		"ontology", o.IRI.IRI(),
		"inferences", report.Total,
		"converged", report.Converged,
		"published", result.Published,
		"snapshot", result.SnapshotID)
	return result, nil
}

// Export writes o to out in the configured format and profile.
func (a *App) Export(o *ontology.Ontology, runID string) error {
	format, err := export.ParseFormat(a.cfg.Export.Format)
	if err != nil {
		return err
	}
	profile, err := export.ParseProfile(a.cfg.Export.Profile)
	if err != nil {
		return err
	}
	triples := export.NewExporter(profile, export.WithRunID(runID)).Triples(o)
	doc, err := export.Serialize(triples, format, a.cfg.Export.BaseIRI)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.out, doc)
	return err
}

// storagePath resolves the fact store path against the config root.
func (a *App) storagePath() string {
	path := a.cfg.Storage.Path
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.cfg.Root, path)
}

// OpenFactStore opens the configured fact store.
func (a *App) OpenFactStore() (*storage.FactStore, error) {
	path := a.storagePath()
	if path == "" {
		return nil, errors.New("storage.path is not configured")
	}
	return storage.OpenFactStore(path, a.logger)
}

func (a *App) persist(ctx context.Context, o *ontology.Ontology) error {
	if a.cfg.Storage.Path == "" {
		return nil
	}
	store, err := a.OpenFactStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, o)
}
