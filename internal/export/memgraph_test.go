package export

import (
	"context"
	"sync"

	"github.com/agenthands/owlgraph/internal/driver"
	"github.com/agenthands/owlgraph/internal/ontology"
)

type edgeKey struct {
	From NodeRef
	Type string
	To   NodeRef
}

// memGraph is an in-memory store with MERGE semantics, keyed by natural key.
type memGraph struct {
	mu    sync.Mutex
	nodes map[NodeRef]map[string]any
	edges map[edgeKey]map[string]any

	applied []Mutation
}

func newMemGraph() *memGraph {
	return &memGraph{
		nodes: make(map[NodeRef]map[string]any),
		edges: make(map[edgeKey]map[string]any),
	}
}

func (g *memGraph) Apply(ctx context.Context, m Mutation) (driver.Counters, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.applied = append(g.applied, m)

	var c driver.Counters
	switch mut := m.(type) {
	case NodeMerge:
		ref := mut.Ref()
		props, ok := g.nodes[ref]
		if !ok {
			props = map[string]any{KeyIRI: string(mut.IRI)}
			g.nodes[ref] = props
			c.NodesCreated++
			c.LabelsAdded++
		}
		for k, v := range mut.Properties {
			props[k] = v
			c.PropertiesSet++
		}
	case EdgeMerge:
		// MATCH finds nothing when an endpoint is missing.
		if _, ok := g.nodes[mut.From]; !ok {
			return c, nil
		}
		if _, ok := g.nodes[mut.To]; !ok {
			return c, nil
		}
		key := edgeKey{From: mut.From, Type: mut.Type, To: mut.To}
		props, ok := g.edges[key]
		if !ok {
			props = map[string]any{}
			g.edges[key] = props
			c.RelationshipsCreated++
		}
		for k, v := range mut.Properties {
			props[k] = v
			c.PropertiesSet++
		}
	}
	return c, nil
}

func (g *memGraph) node(label Label, iri ontology.IRI) map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nodes[NodeRef{Label: label, IRI: iri}]
}

func (g *memGraph) hasEdge(from NodeRef, relType string, to NodeRef) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.edges[edgeKey{From: from, Type: relType, To: to}]
	return ok
}

func (g *memGraph) counts() (nodes, edges int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes), len(g.edges)
}

// failingApplier rejects mutations matching Reject and delegates the rest.
type failingApplier struct {
	*memGraph
	Reject func(Mutation) error
}

func (f *failingApplier) Apply(ctx context.Context, m Mutation) (driver.Counters, error) {
	if err := f.Reject(m); err != nil {
		f.memGraph.mu.Lock()
		f.memGraph.applied = append(f.memGraph.applied, m)
		f.memGraph.mu.Unlock()
		return driver.Counters{}, err
	}
	return f.memGraph.Apply(ctx, m)
}

// recordingWriter captures statements sent through a CypherApplier.
type recordingWriter struct {
	Queries []string
	Params  []map[string]any
}

func (w *recordingWriter) ExecuteWrite(ctx context.Context, query string, params map[string]any) (driver.Counters, error) {
	w.Queries = append(w.Queries, query)
	w.Params = append(w.Params, params)
	return driver.Counters{PropertiesSet: 1}, nil
}
