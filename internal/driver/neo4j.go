package driver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jDriver talks to Neo4j (or Memgraph) over Bolt.
type Neo4jDriver struct {
	Driver   neo4j.DriverWithContext
	uri      string
	database string
	logger   *slog.Logger
}

// Option configures a Neo4jDriver.
type Option func(*Neo4jDriver)

// WithDatabase selects the target database. Blank or "neo4j" uses the server default.
func WithDatabase(name string) Option {
	return func(d *Neo4jDriver) {
		d.database = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Neo4jDriver) {
		d.logger = logger
	}
}

// NewNeo4jDriver connects and verifies connectivity before returning.
func NewNeo4jDriver(ctx context.Context, uri, username, password string, opts ...Option) (*Neo4jDriver, error) {
	d := &Neo4jDriver{uri: uri, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, &ConnectivityError{URI: uri, Err: err}
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, &ConnectivityError{URI: uri, Err: err}
	}

	d.Driver = driver
	d.logger.Info("Connected to graph store", "uri", uri, "database", d.databaseName())
	return d, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	d.logger.Info("Disconnected from graph store", "uri", d.uri)
	return d.Driver.Close(ctx)
}

// ExecuteRead runs query with reader routing and returns every row.
func (d *Neo4jDriver) ExecuteRead(ctx context.Context, query string, params map[string]any) ([]Record, error) {
	result, err := d.execute(ctx, query, params, neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, err
	}
	return records(result), nil
}

// ExecuteWrite runs query with writer routing and returns the update counters.
func (d *Neo4jDriver) ExecuteWrite(ctx context.Context, query string, params map[string]any) (Counters, error) {
	result, err := d.execute(ctx, query, params, neo4j.ExecuteQueryWithWritersRouting())
	if err != nil {
		return Counters{}, err
	}
	return counters(result), nil
}

// Run executes an arbitrary statement and returns rows and counters.
func (d *Neo4jDriver) Run(ctx context.Context, query string, params map[string]any) (*Result, error) {
	result, err := d.execute(ctx, query, params, neo4j.ExecuteQueryWithWritersRouting())
	if err != nil {
		return nil, err
	}
	return &Result{
		Keys:     result.Keys,
		Records:  records(result),
		Counters: counters(result),
	}, nil
}

// Ping checks that the store answers a trivial statement.
func (d *Neo4jDriver) Ping(ctx context.Context) error {
	_, err := d.ExecuteRead(ctx, PingQuery, nil)
	return err
}

// EnsureIndexes creates the iri lookup indexes used by merge statements.
func (d *Neo4jDriver) EnsureIndexes(ctx context.Context) error {
	queries := []string{
		ClassIRIIndexQuery,
		IndividualIRIIndexQuery,
	}

	for _, q := range queries {
		if _, err := d.ExecuteWrite(ctx, q, nil); err != nil {
			if IsConnectivity(err) {
				return err
			}
			// Memgraph uses a different index syntax; merges still work without it.
			d.logger.Warn("Failed to create index", "query", q, "error", err)
		}
	}
	return nil
}

func (d *Neo4jDriver) execute(ctx context.Context, query string, params map[string]any, routing neo4j.ExecuteQueryConfigurationOption) (*neo4j.EagerResult, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{routing}
	if !isDefaultDatabase(d.database) {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.database))
	}

	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		d.logger.Debug("Statement failed", "query", query, "error", err)
		return nil, fmt.Errorf("failed to execute query: %w", classify(d.uri, err))
	}
	return result, nil
}

func (d *Neo4jDriver) databaseName() string {
	if isDefaultDatabase(d.database) {
		return "default"
	}
	return d.database
}

func isDefaultDatabase(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || strings.EqualFold(name, "neo4j")
}

func records(result *neo4j.EagerResult) []Record {
	out := make([]Record, 0, len(result.Records))
	for _, rec := range result.Records {
		out = append(out, Record(rec.AsMap()))
	}
	return out
}

func counters(result *neo4j.EagerResult) Counters {
	if result.Summary == nil {
		return Counters{}
	}
	c := result.Summary.Counters()
	return Counters{
		NodesCreated:         c.NodesCreated(),
		NodesDeleted:         c.NodesDeleted(),
		RelationshipsCreated: c.RelationshipsCreated(),
		RelationshipsDeleted: c.RelationshipsDeleted(),
		PropertiesSet:        c.PropertiesSet(),
		LabelsAdded:          c.LabelsAdded(),
	}
}
