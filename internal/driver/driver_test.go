package driver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	a := Counters{NodesCreated: 1, PropertiesSet: 3}
	b := Counters{NodesCreated: 2, RelationshipsCreated: 1, PropertiesSet: 1}

	sum := a.Add(b)
	assert.Equal(t, Counters{NodesCreated: 3, RelationshipsCreated: 1, PropertiesSet: 4}, sum)

	want := "Nodes created: 3\n" +
		"Nodes deleted: 0\n" +
		"Relationships created: 1\n" +
		"Relationships deleted: 0\n" +
		"Properties set: 4\n"
	assert.Equal(t, want, sum.String())
}

func TestClassify(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, classify("bolt://x", nil))
	})

	t.Run("security errors are connectivity errors", func(t *testing.T) {
		err := classify("bolt://x", &neo4j.Neo4jError{Code: "Neo.ClientError.Security.Unauthorized", Msg: "bad credentials"})
		require.True(t, IsConnectivity(err))

		var ce *ConnectivityError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "bolt://x", ce.URI)
	})

	t.Run("statement errors pass through", func(t *testing.T) {
		syntax := &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "bad"}
		err := classify("bolt://x", syntax)
		assert.False(t, IsConnectivity(err))
		assert.Same(t, syntax, err)
	})

	t.Run("wrapped connectivity error is detected", func(t *testing.T) {
		err := fmt.Errorf("failed to execute query: %w", &ConnectivityError{URI: "bolt://x", Err: errors.New("refused")})
		assert.True(t, IsConnectivity(err))
		assert.Contains(t, err.Error(), "refused")
	})
}

func TestIsDefaultDatabase(t *testing.T) {
	assert.True(t, isDefaultDatabase(""))
	assert.True(t, isDefaultDatabase("  "))
	assert.True(t, isDefaultDatabase("neo4j"))
	assert.True(t, isDefaultDatabase("NEO4J"))
	assert.False(t, isDefaultDatabase("medical"))
}

func TestRecords(t *testing.T) {
	result := &neo4j.EagerResult{
		Keys: []string{"label"},
		Records: []*neo4j.Record{
			{Keys: []string{"label"}, Values: []any{"OWLClass"}},
			{Keys: []string{"label"}, Values: []any{"OWLIndividual"}},
		},
	}

	rows := records(result)
	require.Len(t, rows, 2)
	assert.Equal(t, "OWLClass", rows[0]["label"])
	assert.Equal(t, "OWLIndividual", rows[1]["label"])

	assert.Equal(t, Counters{}, counters(result), "missing summary yields zero counters")
}
