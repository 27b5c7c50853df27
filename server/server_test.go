package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/resiliencere/leadsync/backend"
	"github.com/resiliencere/leadsync/chaos"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	*TestServer
	backend *backend.Mock
	sched   *chaos.ManualScheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := backend.NewMock(&backend.MockConfig{Logger: logger})
	sched := chaos.NewManualScheduler()
	demo, err := chaos.NewDemo(&chaos.DemoConfig{
		Backend:   mock,
		Scheduler: sched,
		Logger:    logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { demo.Close() })

	ts, err := NewTestServer(&ServerConfig{Demo: demo, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(ts.Close)

	return &testEnv{TestServer: ts, backend: mock, sched: sched}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.URL()+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type stateBody struct {
	Status     string `json:"status"`
	Region     string `json:"region"`
	RegionName string `json:"region_name"`
	Pending    int    `json:"pending"`
	Toast      *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"toast"`
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", decode[HealthResponse](t, resp).Status)
}

func TestSetStatus(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "degraded"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[stateBody](t, resp)
	require.Equal(t, "DEGRADED", st.Status)
	require.Equal(t, "BACKUP", st.Region)
	require.Equal(t, "AWS Tokyo (Backup)", st.RegionName)
	require.NotNil(t, st.Toast)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "FLAKY"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_status", decode[ErrorResponse](t, resp).Error)

	resp = env.do(t, http.MethodGet, "/api/state", nil)
	require.Equal(t, "ONLINE", decode[stateBody](t, resp).Status)
}

func TestLeadsQueueAndSync(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "OFFLINE"})

	for _, name := range []string{"Hoa", "Minh"} {
		resp := env.do(t, http.MethodPost, "/api/leads", chaos.LeadInput{Name: name, Phone: "0901234567"})
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		require.True(t, decode[LeadResponse](t, resp).Queued)
	}

	resp := env.do(t, http.MethodGet, "/api/leads", nil)
	listed := decode[LeadsResponse](t, resp)
	require.Equal(t, 2, listed.Count)
	require.Equal(t, "Hoa", listed.Leads[0].Name)

	env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "ONLINE"})
	env.sched.Advance(chaos.DefaultSyncDelay)

	st := decode[stateBody](t, env.do(t, http.MethodGet, "/api/state", nil))
	require.Zero(t, st.Pending)
	require.Equal(t, "Synced 2 offline leads to the CRM.", st.Toast.Message)
	require.Len(t, env.backend.CRMLeads(), 2)
}

func TestSubmitLeadValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/leads", chaos.LeadInput{Name: "Hoa", Phone: "0901234567", Email: "nope"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "validation_failed", decode[ErrorResponse](t, resp).Error)

	resp = env.do(t, http.MethodPost, "/api/leads", "not an object")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClearLeadsAndDismissToast(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "OFFLINE"})
	env.do(t, http.MethodPost, "/api/leads", chaos.LeadInput{Name: "Hoa", Phone: "0901234567"})

	resp := env.do(t, http.MethodDelete, "/api/toast", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodDelete, "/api/leads", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	st := decode[stateBody](t, env.do(t, http.MethodGet, "/api/state", nil))
	require.Zero(t, st.Pending)
	require.Nil(t, st.Toast, "clearing does not raise a notification")
}

func TestPropertyFallback(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "OFFLINE"})

	resp := env.do(t, http.MethodGet, "/api/property", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "fetch_failed", decode[ErrorResponse](t, resp).Error)

	env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "ONLINE"})
	resp = env.do(t, http.MethodGet, "/api/property", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, decode[chaos.Property](t, resp).Cached)

	env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "OFFLINE"})
	resp = env.do(t, http.MethodGet, "/api/property", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decode[chaos.Property](t, resp).Cached)
}

func TestPayment(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/payment?principal=1200&rate=0&years=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "100", decode[PaymentResponse](t, resp).MonthlyPayment)

	resp = env.do(t, http.MethodGet, "/api/payment?rate=5&years=20", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "no listing loaded and no principal given")
	require.Equal(t, "fetch_failed", decode[ErrorResponse](t, resp).Error)

	resp = env.do(t, http.MethodGet, "/api/payment?principal=1200&rate=5&years=0", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_loan", decode[ErrorResponse](t, resp).Error)

	env.do(t, http.MethodGet, "/api/property", nil)
	resp = env.do(t, http.MethodGet, "/api/payment?rate=9.5&years=20", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "15800000000", decode[PaymentResponse](t, resp).Principal)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPut, "/api/status", StatusRequest{Status: "OFFLINE"})
	env.do(t, http.MethodGet, "/api/state", nil)

	require.Equal(t, 1.0, testutil.ToFloat64(env.Metrics.HTTPRequestsTotal.WithLabelValues("PUT", "/api/status", "200")))

	resp := env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "leadsync_http_requests_total"))
}
