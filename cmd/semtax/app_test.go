package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semtax/config"
	"github.com/c360studio/semtax/storage"
)

const farmDocument = `
iri: http://example.org/farm
prefixes:
  ex: http://example.org/
facts:
  - {s: ex:Dog, p: rdfs:subClassOf, o: ex:Animal}
  - {s: ex:Animal, p: owl:disjointWith, o: ex:Plant}
  - {s: ex:rex, p: a, o: ex:Dog}
  - {s: ex:fido, p: a, o: ex:Dog}
  - {s: ex:rex, p: ex:chip, value: "A-1"}
  - {s: ex:fido, p: ex:chip, value: "A-1"}
  - {s: ex:Dog, p: owl:hasKey, o: ex:dogKey}
  - {s: ex:dogKey, p: rdf:first, o: ex:chip}
  - {s: ex:dogKey, p: rdf:rest, o: rdf:nil}
`

// writeProject lays out a config and one document in a temp dir and
// returns the config path.
func writeProject(t *testing.T, tweak func(*config.Config)) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "farm.yaml"), []byte(farmDocument), 0o644))

	cfg := config.DefaultConfig()
	// The config lives one level below the documents.
	cfg.Documents = []string{"../*.yaml"}
	cfg.Export.Format = "ntriples"
	cfg.Log.Level = "error"
	if tweak != nil {
		tweak(cfg)
	}
	path := filepath.Join(dir, "config", "semtax-test.yml")
	require.NoError(t, cfg.SaveToFile(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "semtax version "+Version)
}

func TestReasonCommand(t *testing.T) {
	cfgPath := writeProject(t, func(c *config.Config) {
		c.Storage.Path = "facts.db"
	})

	out, err := execute(t, "reason", "-c", cfgPath, "--profile", "inferred")
	require.NoError(t, err)
	assert.Contains(t, out, "http://example.org/rex")
	assert.Contains(t, out, "http://example.org/Animal")

	// The run was persisted next to the config.
	_, err = os.Stat(filepath.Join(filepath.Dir(cfgPath), "facts.db"))
	require.NoError(t, err)

	out, err = execute(t, "store", "list", "-c", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/farm\n", out)

	out, err = execute(t, "store", "show", "http://example.org/farm", "-c", cfgPath, "-p", "asserted")
	require.NoError(t, err)
	assert.Contains(t, out, "http://example.org/Dog")

	out, err = execute(t, "store", "clear-inferences", "http://example.org/farm", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "retracted")

	_, err = execute(t, "store", "delete", "http://example.org/farm", "-c", cfgPath)
	require.NoError(t, err)
	_, err = execute(t, "store", "delete", "http://example.org/farm", "-c", cfgPath)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReasonCommandRejectsBadFlags(t *testing.T) {
	cfgPath := writeProject(t, nil)

	_, err := execute(t, "reason", "-c", cfgPath, "--format", "rdfxml")
	assert.Error(t, err)

	_, err = execute(t, "reason", "-c", cfgPath, "--rule", "Guesswork")
	assert.Error(t, err)
}

func TestQueryCommand(t *testing.T) {
	cfgPath := writeProject(t, nil)

	out, err := execute(t, "query", "superclasses", "http://example.org/Dog", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "http://example.org/Animal")

	out, err = execute(t, "query", "members", "http://example.org/Animal", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "http://example.org/rex")
	assert.Contains(t, out, "http://example.org/fido")

	_, err = execute(t, "query", "cousins", "http://example.org/Dog", "-c", cfgPath)
	assert.Error(t, err)
}

func TestIsCommand(t *testing.T) {
	cfgPath := writeProject(t, nil)

	out, err := execute(t, "is", "subclass-of", "http://example.org/Dog", "http://example.org/Animal", "-c", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = execute(t, "is", "disjoint-class", "http://example.org/Dog", "http://example.org/Plant", "-c", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestCheckCommand(t *testing.T) {
	cfgPath := writeProject(t, nil)

	out, err := execute(t, "check", "subclass-of", "http://example.org/Dog", "http://example.org/Plant", "-c", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = execute(t, "check", "class-type", "http://example.org/rex", "http://example.org/Animal", "-c", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = execute(t, "check", "assert", "http://example.org/rex", "http://example.org/chip", "--literal", "B-2", "-c", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	_, err = execute(t, "check", "assert", "http://example.org/rex", "http://example.org/chip", "-c", cfgPath)
	assert.Error(t, err)
}

func TestKeysCommand(t *testing.T) {
	cfgPath := writeProject(t, nil)

	out, err := execute(t, "keys", "http://example.org/Dog", "-c", cfgPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "http://example.org/fido\thttp://example.org/chip="))
	assert.True(t, strings.HasPrefix(lines[1], "http://example.org/rex\t"))
}

func TestAppDocuments(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Root = t.TempDir()
	app := NewApp(cfg, nil, &bytes.Buffer{})

	_, err := app.Documents(nil)
	assert.ErrorIs(t, err, errNoDocuments)

	_, err = app.Documents([]string{"*.yaml"})
	assert.ErrorIs(t, err, errNoDocuments)
}

func TestAppReasonWithoutNATS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "farm.yaml"), []byte(farmDocument), 0o644))

	cfg := config.DefaultConfig()
	cfg.Root = dir
	cfg.Documents = []string{"farm.yaml"}
	var out bytes.Buffer
	app := NewApp(cfg, nil, &out)
	require.Nil(t, app.publisher())

	docs, err := app.Documents(nil)
	require.NoError(t, err)
	result, err := app.Reason(context.Background(), "", docs)
	require.NoError(t, err)

	assert.True(t, result.Report.Converged)
	assert.Positive(t, result.Report.Total)
	assert.Zero(t, result.Published)
	assert.Empty(t, result.SnapshotID)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "http://example.org/farm", result.Ontology.IRI.IRI())
	assert.NotEmpty(t, out.String())
}
