package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/c360studio/semtax/ontology"
)

// FactStore keeps ontologies in SQLite: one ontologies row per saved IRI and
// one facts row per register entry. An ontology saved with no entries still
// loads, as an empty ontology.
type FactStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenFactStore opens (or creates) the database at path. ":memory:" yields a
// private in-memory store.
func OpenFactStore(path string, logger *slog.Logger) (*FactStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open fact store: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping fact store: %w", err)
	}
	if err := migrateFacts(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate fact store: %w", err)
	}
	return &FactStore{db: db, logger: logger}, nil
}

func migrateFacts(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS facts (
	ontology   TEXT NOT NULL,
	register   TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	entry_id   TEXT NOT NULL,
	subject    TEXT NOT NULL,
	predicate  TEXT NOT NULL,
	object     TEXT NOT NULL,
	literal    INTEGER NOT NULL DEFAULT 0,
	datatype   TEXT NOT NULL DEFAULT '',
	lang       TEXT NOT NULL DEFAULT '',
	provenance TEXT NOT NULL,
	PRIMARY KEY (ontology, register, entry_id)
);

CREATE INDEX IF NOT EXISTS idx_facts_spo ON facts(ontology, subject, predicate, object);
CREATE INDEX IF NOT EXISTS idx_facts_pos ON facts(ontology, predicate, object, subject);
CREATE INDEX IF NOT EXISTS idx_facts_osp ON facts(ontology, object, subject, predicate);

CREATE TABLE IF NOT EXISTS ontologies (
	iri      TEXT PRIMARY KEY,
	saved_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT OR IGNORE INTO ontologies (iri) SELECT DISTINCT ontology FROM facts;
`
	_, err := db.Exec(ddl)
	return err
}

// Close closes the underlying database connection.
func (s *FactStore) Close() error {
	return s.db.Close()
}

// Save replaces everything stored for o's IRI with o's current registers.
func (s *FactStore) Save(ctx context.Context, o *ontology.Ontology) error {
	iri := o.IRI.IRI()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO ontologies (iri, saved_at) VALUES (?, CURRENT_TIMESTAMP)
ON CONFLICT(iri) DO UPDATE SET saved_at = excluded.saved_at`, iri); err != nil {
		return fmt.Errorf("record ontology: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM facts WHERE ontology = ?`, iri); err != nil {
		return fmt.Errorf("clear ontology facts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO facts
	(ontology, register, seq, entry_id, subject, predicate, object, literal, datatype, lang, provenance)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare fact insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	for _, reg := range o.Registers() {
		for seq, e := range reg.Taxonomy.Entries() {
			r := recordOf(e)
			if _, err := stmt.ExecContext(ctx, iri, reg.Name, seq, e.ID().String(),
				r.Subject, r.Predicate, r.Object, r.Literal, r.Datatype, r.Lang, r.Provenance); err != nil {
				return fmt.Errorf("insert fact %s: %w", e.ID(), err)
			}
			rows++
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	s.logger.Debug("Saved ontology facts", "ontology", iri, "facts", rows)
	return nil
}

// Load rebuilds the ontology stored under iri.
func (s *FactStore) Load(ctx context.Context, iri string) (*ontology.Ontology, error) {
	var saved int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ontologies WHERE iri = ?`, iri).Scan(&saved); err != nil {
		return nil, fmt.Errorf("look up ontology: %w", err)
	}
	if saved == 0 {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT register, subject, predicate, object, literal, datatype, lang, provenance
FROM facts
WHERE ontology = ?
ORDER BY register, seq`, iri)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}
	defer rows.Close()

	snap := Snapshot{Version: snapshotVersion, IRI: iri}
	index := make(map[string]int)
	for rows.Next() {
		var (
			register string
			r        Record
		)
		if err := rows.Scan(&register, &r.Subject, &r.Predicate, &r.Object, &r.Literal, &r.Datatype, &r.Lang, &r.Provenance); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		i, ok := index[register]
		if !ok {
			i = len(snap.Registers)
			index[register] = i
			snap.Registers = append(snap.Registers, RegisterRecord{Name: register})
		}
		snap.Registers[i].Entries = append(snap.Registers[i].Entries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facts: %w", err)
	}
	return snap.Ontology()
}

// List returns the IRIs of every stored ontology in ascending order.
func (s *FactStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT iri FROM ontologies ORDER BY iri`)
	if err != nil {
		return nil, fmt.Errorf("list ontologies: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var iri string
		if err := rows.Scan(&iri); err != nil {
			return nil, fmt.Errorf("scan ontology: %w", err)
		}
		out = append(out, iri)
	}
	return out, rows.Err()
}

// Delete removes iri and every fact stored for it.
func (s *FactStore) Delete(ctx context.Context, iri string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM ontologies WHERE iri = ?`, iri)
	if err != nil {
		return fmt.Errorf("delete ontology: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM facts WHERE ontology = ?`, iri); err != nil {
		return fmt.Errorf("delete ontology facts: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}
