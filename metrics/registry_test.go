package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/resiliencere/leadsync/chaos"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.StatusTransitionsTotal)
	require.NotNil(t, r.LocalQueueDepth)
	require.NotNil(t, r.HTTPRequestsTotal)
	require.NotNil(t, r.GetPrometheusRegistry())
}

func TestObserveStatusIsOneHot(t *testing.T) {
	r := NewRegistry()

	r.ObserveStatus(chaos.StatusOnline, chaos.RegionPrimary)
	r.ObserveStatus(chaos.StatusOffline, chaos.RegionEdge)

	require.Equal(t, 1.0, testutil.ToFloat64(r.StatusTransitionsTotal.WithLabelValues("OFFLINE")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.ConnectionStatus.WithLabelValues("OFFLINE")))
	require.Equal(t, 0.0, testutil.ToFloat64(r.ConnectionStatus.WithLabelValues("ONLINE")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.ServerRegion.WithLabelValues("EDGE")))
	require.Equal(t, 0.0, testutil.ToFloat64(r.ServerRegion.WithLabelValues("PRIMARY")))
}

func TestObserveLeadsAndSync(t *testing.T) {
	r := NewRegistry()

	r.ObserveLeadSubmitted(true)
	r.ObserveLeadSubmitted(true)
	r.ObserveLeadSubmitted(false)
	r.ObserveQueueDepth(2)
	r.ObserveSync(chaos.SyncOutcomeSynced, 2)
	r.ObserveSync(chaos.SyncOutcomeEmpty, 0)
	r.ObserveQueueDepth(0)

	require.Equal(t, 2.0, testutil.ToFloat64(r.LeadsSubmittedTotal.WithLabelValues("queued")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.LeadsSubmittedTotal.WithLabelValues("direct")))
	require.Equal(t, 2.0, testutil.ToFloat64(r.LeadsSyncedTotal))
	require.Equal(t, 0.0, testutil.ToFloat64(r.LocalQueueDepth))

	counter, err := r.SyncRunsTotal.GetMetricWithLabelValues("empty")
	require.NoError(t, err)
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	require.Equal(t, 1.0, metric.Counter.GetValue())
}

func TestObserveFetch(t *testing.T) {
	r := NewRegistry()
	r.ObserveFetch(chaos.FetchOutcomeOK)
	r.ObserveFetch(chaos.FetchOutcomeCached)
	r.ObserveFetch(chaos.FetchOutcomeCached)

	require.Equal(t, 2.0, testutil.ToFloat64(r.PropertyFetchTotal.WithLabelValues("cached")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest(http.MethodGet, "/api/state", http.StatusOK, 5*time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.True(t, strings.Contains(string(body), `leadsync_http_requests_total{code="200",method="GET",path="/api/state"} 1`))
}
