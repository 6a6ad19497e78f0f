// Package export maps an ontology snapshot onto the graph store as a fixed
// sequence of idempotent MERGE statements.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agenthands/owlgraph/internal/driver"
	"github.com/agenthands/owlgraph/internal/metrics"
	"github.com/agenthands/owlgraph/internal/ontology"
	"github.com/google/uuid"
)

// Applier executes one mutation against a store.
type Applier interface {
	Apply(ctx context.Context, m Mutation) (driver.Counters, error)
}

// CypherApplier renders mutations to Cypher and runs them as writes.
type CypherApplier struct {
	Writer driver.Writer
}

func (a CypherApplier) Apply(ctx context.Context, m Mutation) (driver.Counters, error) {
	query, params := m.Cypher()
	return a.Writer.ExecuteWrite(ctx, query, params)
}

type Mapper struct {
	Applier Applier
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func NewMapper(applier Applier, logger *slog.Logger, m *metrics.Metrics) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{
		Applier: applier,
		Logger:  logger,
		Metrics: m,
	}
}

// NewCypherMapper is a Mapper writing through a graph store writer.
func NewCypherMapper(w driver.Writer, logger *slog.Logger, m *metrics.Metrics) *Mapper {
	return NewMapper(CypherApplier{Writer: w}, logger, m)
}

// Export runs every stage of Stages in order. Rejected mutations become
// MappingErrors, joined into the returned error, and the export continues.
// A connectivity failure or a done context stops the export at once. The summary always
// reflects what was attempted.
func (m *Mapper) Export(ctx context.Context, snap *ontology.Snapshot) (sum Summary, err error) {
	log := m.Logger.With("export_id", uuid.NewString(), "ontology", snap.IRI)
	log.Info("export started",
		"classes", len(snap.Classes),
		"individuals", len(snap.Individuals),
		"object_properties", len(snap.ObjectProperties),
		"data_properties", len(snap.DataProperties),
	)
	defer func() { m.Metrics.RecordExport(err) }()

	v := newView(snap)
	var errs []error

	for _, stage := range Stages() {
		if err := ctx.Err(); err != nil {
			return sum, errors.Join(append(errs, err)...)
		}

		batch := stage.Plan(v)
		sum = sum.add(batch.Counts)

		failed := 0
		for _, mut := range batch.Mutations {
			if err := ctx.Err(); err != nil {
				log.Warn("export canceled", "stage", stage.Name, "error", err)
				errs = append(errs, fmt.Errorf("export aborted at %s: %w", stage.Name, err))
				return sum, errors.Join(errs...)
			}

			counters, err := m.Applier.Apply(ctx, mut)
			m.Metrics.RecordMutation(stage.Name, err)
			if err != nil {
				if driver.IsConnectivity(err) || isContextError(err) {
					log.Error("export aborted", "stage", stage.Name, "iri", mut.Subject(), "error", err)
					errs = append(errs, fmt.Errorf("export aborted at %s: %w", stage.Name, err))
					return sum, errors.Join(errs...)
				}
				failed++
				log.Warn("mutation rejected", "stage", stage.Name, "iri", mut.Subject(), "error", err)
				errs = append(errs, &MappingError{Stage: stage.Name, IRI: mut.Subject(), Err: err})
				continue
			}
			sum.Writes = sum.Writes.Add(counters)
		}

		log.Info("stage applied", "stage", stage.Name, "mutations", len(batch.Mutations), "failed", failed)
	}

	log.Info("export completed",
		"classes", sum.Classes,
		"individuals", sum.Individuals,
		"object_properties", sum.ObjectProperties,
		"data_properties", sum.DataProperties,
		"errors", len(errs),
	)
	return sum, errors.Join(errs...)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
