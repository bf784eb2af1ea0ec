package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	r.RowRead("wormbase")
	r.RowRead("wormbase")
	r.RowRead("udp")
	r.RowSkipped("wormbase")
	r.EntityEmitted("udp")
	r.AssociationEmitted("wormbase")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.rowsRead.WithLabelValues("wormbase")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.rowsRead.WithLabelValues("udp")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.rowsSkipped.WithLabelValues("wormbase")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.entities.WithLabelValues("udp")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.associations.WithLabelValues("wormbase")))
}

func TestRunCompleted(t *testing.T) {
	r := NewRecorder()

	r.RunCompleted("wormbase", nil, 1.5)
	r.RunCompleted("wormbase", errors.New("sink unavailable"), 0.2)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.runs.WithLabelValues("wormbase", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.runs.WithLabelValues("wormbase", "error")))
}

func TestHandlerServesScrape(t *testing.T) {
	r := NewRecorder()
	r.RowRead("udp")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "biograph_rows_read_total")
}
