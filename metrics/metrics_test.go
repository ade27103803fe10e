package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis52/chainkit/chain"
)

func TestNewPushRegistry(t *testing.T) {
	tests := []struct {
		name string
		cfg  PushConfig
	}{
		{
			name: "minimal config",
			cfg:  PushConfig{URL: "http://localhost:8428"},
		},
		{
			name: "full config",
			cfg: PushConfig{
				URL:      "http://localhost:8428",
				Prefix:   "test",
				Job:      "testjob",
				Instance: "testinstance",
				Timeout:  5 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewPushRegistry(tt.cfg)
			require.NotNil(t, registry)
			require.NotNil(t, registry.pusher)
		})
	}
}

func TestPushRegistry_RemoteWrite(t *testing.T) {
	var received *prompb.WriteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snappy", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "application/x-protobuf", r.Header.Get("Content-Type"))

		compressed, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		data, err := snappy.Decode(nil, compressed)
		require.NoError(t, err)

		var req prompb.WriteRequest
		require.NoError(t, proto.Unmarshal(data, &req))
		received = &req
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	registry := NewPushRegistry(PushConfig{
		URL:      server.URL,
		Prefix:   "chainkit",
		Job:      "testjob",
		Instance: "host1",
	})

	gaugeVec, err := registry.NewGaugeVec(prometheus.GaugeOpts{Name: "run_duration_seconds"}, []string{"chain"})
	require.NoError(t, err)
	gaugeVec.With(prometheus.Labels{"chain": "order"}).Set(1.5)

	require.NotNil(t, received, "push delivered a write request")
	require.Len(t, received.Timeseries, 1)

	labels := make(map[string]string)
	for _, l := range received.Timeseries[0].Labels {
		labels[l.Name] = l.Value
	}
	assert.Equal(t, "chainkit_run_duration_seconds", labels["__name__"])
	assert.Equal(t, "testjob", labels["job"])
	assert.Equal(t, "host1", labels["instance"])
	assert.Equal(t, "order", labels["chain"])

	require.Len(t, received.Timeseries[0].Samples, 1)
	assert.Equal(t, 1.5, received.Timeseries[0].Samples[0].Value)
}

func TestPushCounter_Accumulates(t *testing.T) {
	var lastValue float64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		compressed, _ := io.ReadAll(r.Body)
		data, _ := snappy.Decode(nil, compressed)
		var req prompb.WriteRequest
		require.NoError(t, proto.Unmarshal(data, &req))
		lastValue = req.Timeseries[0].Samples[0].Value
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	registry := NewPushRegistry(PushConfig{URL: server.URL})
	counter, err := registry.NewCounter(prometheus.CounterOpts{Name: "runs_total"})
	require.NoError(t, err)

	counter.Inc()
	counter.Add(2)
	assert.Equal(t, 3.0, lastValue, "counter pushes cumulative value")
}

func TestPushCounterVec_SameLabelsSameCounter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	registry := NewPushRegistry(PushConfig{URL: server.URL})
	vec, err := registry.NewCounterVec(prometheus.CounterOpts{Name: "runs_total"}, []string{"chain", "outcome"})
	require.NoError(t, err)

	labels := prometheus.Labels{"chain": "order", "outcome": "completed"}
	first := vec.With(labels)
	second := vec.With(prometheus.Labels{"outcome": "completed", "chain": "order"})
	assert.Same(t, first, second, "label order does not matter")
}

func TestScrapeRegistry(t *testing.T) {
	registry, err := NewScrapeRegistry()
	require.NoError(t, err)

	gauge, err := registry.NewGauge(prometheus.GaugeOpts{Name: "test_gauge", Help: "A test gauge"})
	require.NoError(t, err)
	gauge.Set(42)

	counter, err := registry.NewCounter(prometheus.CounterOpts{Name: "test_counter", Help: "A test counter"})
	require.NoError(t, err)
	counter.Inc()

	body := scrape(t, registry)
	assert.Contains(t, body, "test_gauge 42")
	assert.Contains(t, body, "test_counter 1")
}

func TestScrapeRegistry_DuplicateRegistration(t *testing.T) {
	registry, err := NewScrapeRegistry()
	require.NoError(t, err)

	_, err = registry.NewGauge(prometheus.GaugeOpts{Name: "dup_gauge"})
	require.NoError(t, err)
	_, err = registry.NewGauge(prometheus.GaugeOpts{Name: "dup_gauge"})
	require.Error(t, err)
}

func TestRecorder_Sink(t *testing.T) {
	registry, err := NewScrapeRegistry()
	require.NoError(t, err)

	recorder, err := NewRecorder(registry)
	require.NoError(t, err)

	sink := recorder.Sink("order")
	sink(chain.Diagnostics{
		Handlers: []chain.HandlerDiagnostics{
			{Name: "validate", ExecutionTime: 10 * time.Millisecond, Outcome: chain.Continue},
			{Name: "review", Skipped: true},
			{Name: "charge", ExecutionTime: 5 * time.Millisecond, Failed: true, Err: "gateway down"},
		},
		TotalExecutionTime: 20 * time.Millisecond,
		StoppedEarly:       true,
	})

	body := scrape(t, registry)
	assert.Contains(t, body, `chain_runs_total{chain="order",outcome="stopped"} 1`)
	assert.Contains(t, body, `chain_run_duration_seconds{chain="order"} 0.02`)
	assert.Contains(t, body, `chain_handler_duration_seconds{chain="order",handler="validate"} 0.01`)
	assert.Contains(t, body, `chain_handlers_skipped_total{chain="order",handler="review"} 1`)
	assert.Contains(t, body, `chain_handler_failures_total{chain="order",handler="charge"} 1`)
	assert.Contains(t, body, "chain_last_run_timestamp_seconds")
}

// scrape fetches the registry's metrics endpoint and returns the body.
func scrape(t *testing.T, registry *ScrapeRegistry) string {
	t.Helper()
	server := httptest.NewServer(registry.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
