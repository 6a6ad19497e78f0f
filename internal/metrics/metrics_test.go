package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New()

	m.RecordExport(nil)
	m.RecordExport(errors.New("boom"))
	m.RecordExport(nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExportRuns.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportRuns.WithLabelValues(OutcomeFailure)))

	m.RecordMutation("classes", nil)
	m.RecordMutation("classes", nil)
	m.RecordMutation("hierarchy", errors.New("rejected"))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExportMutations.WithLabelValues("classes", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportMutations.WithLabelValues("hierarchy", OutcomeFailure)))

	m.RecordTranslation("validated", nil, 20*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Translations.WithLabelValues(OutcomeSuccess, "validated")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TranslationDuration))

	m.RecordQuery("cypher", nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues("cypher", OutcomeSuccess)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordExport(nil)
		m.RecordMutation("classes", nil)
		m.RecordTranslation("sent", errors.New("x"), time.Second)
		m.RecordQuery("export", nil)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordExport(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `owlgraph_export_runs_total{outcome="success"} 1`)
}
