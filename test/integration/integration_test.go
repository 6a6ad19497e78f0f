//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/agenthands/owlgraph/internal/driver"
	"github.com/agenthands/owlgraph/internal/export"
	"github.com/agenthands/owlgraph/internal/ontology"
	"github.com/agenthands/owlgraph/internal/query"
	"github.com/agenthands/owlgraph/internal/schema"
)

const (
	neo4jUser     = "neo4j"
	neo4jPassword = "integration-pass"
)

const medYAML = `
ontology: http://example.org/med
prefixes:
  ex: "http://example.org/med#"
classes: [ex:Disease, ex:Flu, ex:Symptom]
dataProperties: [ex:severity]
subClassOf:
  - {sub: ex:Flu, super: ex:Disease}
classAssertions:
  - {individual: ex:flu, class: ex:Flu}
  - {individual: ex:fever, class: ex:Symptom}
objectPropertyAssertions:
  - {subject: ex:flu, property: ex:hasSymptom, object: ex:fever}
dataPropertyAssertions:
  - {subject: ex:flu, property: ex:severity, value: 3}
annotations:
  - {subject: ex:Disease, property: rdfs:label, value: Disease}
`

func startNeo4j(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	req := testcontainers.ContainerRequest{
		Image:        "neo4j:5",
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": neo4jUser + "/" + neo4jPassword,
		},
		WaitingFor: wait.ForLog("Started.").WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "7687")
	require.NoError(t, err)

	return container, fmt.Sprintf("bolt://%s:%s", host, port.Port())
}

func count(ctx context.Context, t *testing.T, d *driver.Neo4jDriver, stmt string) int64 {
	t.Helper()
	rows, err := d.ExecuteRead(ctx, stmt, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]["c"].(int64)
}

func TestExportAndQuery(t *testing.T) {
	ctx := context.Background()
	container, uri := startNeo4j(ctx, t)
	defer container.Terminate(ctx)

	d, err := driver.NewNeo4jDriver(ctx, uri, neo4jUser, neo4jPassword)
	require.NoError(t, err)
	defer d.Close(ctx)

	require.NoError(t, d.Ping(ctx))
	require.NoError(t, d.EnsureIndexes(ctx))

	snap, err := ontology.Parse([]byte(medYAML))
	require.NoError(t, err)

	svc := query.NewService(d, nil, nil, nil)

	sum, err := svc.Export(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Classes)
	assert.Equal(t, 2, sum.Individuals)
	assert.Equal(t, 1, sum.ObjectProperties)
	assert.Equal(t, 1, sum.DataProperties)

	nodes := count(ctx, t, d, "MATCH (n) RETURN count(n) AS c")
	edges := count(ctx, t, d, "MATCH ()-[r]->() RETURN count(r) AS c")
	assert.Equal(t, int64(5), nodes)
	assert.Equal(t, int64(4), edges)

	// A second run changes nothing.
	_, err = svc.Export(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, nodes, count(ctx, t, d, "MATCH (n) RETURN count(n) AS c"))
	assert.Equal(t, edges, count(ctx, t, d, "MATCH ()-[r]->() RETURN count(r) AS c"))

	rows, err := d.ExecuteRead(ctx,
		"MATCH (i:OWLIndividual {iri: $iri})-[r:HASSYMPTOM]->(s) RETURN i.severity AS severity, r.propertyName AS prop, s.name AS symptom",
		map[string]any{"iri": "http://example.org/med#flu"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0]["severity"])
	assert.Equal(t, "hasSymptom", rows[0]["prop"])
	assert.Equal(t, "fever", rows[0]["symptom"])

	text := schema.Describe(ctx, d, nil)
	assert.Contains(t, text, "  - "+string(export.LabelClass)+"\n")
	assert.Contains(t, text, "  - "+export.RelInstanceOf+"\n")

	resp, err := svc.RunCypher(ctx, "MATCH (c:OWLClass) RETURN c.name AS name ORDER BY name")
	require.NoError(t, err)
	assert.Contains(t, resp.Formatted, "Record 3:")

	resp, err = svc.RunCypher(ctx, "CREATE (:Scratch {k: 1})")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Result.Counters.NodesCreated)
}

func TestConnectivityError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := driver.NewNeo4jDriver(ctx, "bolt://127.0.0.1:1", neo4jUser, "wrong")
	require.Error(t, err)
	assert.True(t, driver.IsConnectivity(err))
}
