package metrics

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func getTestMetrics() (*Metrics, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	return NewWithRegistry(registry, zap.NewNop()), registry
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, counter.Write(metric))
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, gauge.Write(metric))
	return metric.Gauge.GetValue()
}

func TestMetricNamingAndHelp(t *testing.T) {
	m, registry := getTestMetrics()

	// vectors only appear in Gather once a label set exists
	m.RecordHTTPRequest("GET", "/boards", 200, time.Millisecond)
	m.RecordDBQuery("select", "boards", time.Millisecond, errors.New("x"))
	m.RecordExternalAPICall("/api/internal/notifications", "POST", 500, time.Millisecond, nil)
	m.IncrementCardMoved(MoveScopeWithinColumn)
	m.IncrementShareGranted("view")

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	snake := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	for _, mf := range families {
		assert.True(t, strings.HasPrefix(mf.GetName(), namespace+"_"), mf.GetName())
		assert.True(t, snake.MatchString(mf.GetName()), mf.GetName())
		assert.NotEmpty(t, mf.GetHelp(), mf.GetName())
	}
}

func TestBusinessCounters(t *testing.T) {
	m, _ := getTestMetrics()

	m.IncrementBoardCreated()
	m.IncrementBoardCreated()
	assert.Equal(t, float64(2), getCounterValue(t, m.BoardCreatedTotal))

	m.IncrementUserRegistered()
	assert.Equal(t, float64(1), getCounterValue(t, m.UserRegisteredTotal))

	m.IncrementCardMoved(MoveScopeAcrossColumn)
	assert.Equal(t, float64(1), getCounterValue(t, m.CardMovedTotal.WithLabelValues(MoveScopeAcrossColumn)))
	assert.Equal(t, float64(0), getCounterValue(t, m.CardMovedTotal.WithLabelValues(MoveScopeWithinColumn)))

	m.IncrementShareGranted("edit")
	assert.Equal(t, float64(1), getCounterValue(t, m.ShareGrantedTotal.WithLabelValues("edit")))

	m.AddPositionsRepaired(3)
	m.AddPositionsRepaired(0)
	assert.Equal(t, float64(3), getCounterValue(t, m.PositionsRepairedTotal))
}

func TestSetGauges(t *testing.T) {
	m, _ := getTestMetrics()

	tests := []struct {
		name  string
		count int64
	}{
		{"zero", 0},
		{"one", 1},
		{"many", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetUsersTotal(tt.count)
			m.SetBoardsTotal(tt.count)
			m.SetCardsTotal(tt.count)
			assert.Equal(t, float64(tt.count), getGaugeValue(t, m.UsersTotal))
			assert.Equal(t, float64(tt.count), getGaugeValue(t, m.BoardsTotal))
			assert.Equal(t, float64(tt.count), getGaugeValue(t, m.CardsTotal))
		})
	}
}

func TestCategorizeStatus(t *testing.T) {
	tests := map[int]string{200: "2xx", 201: "2xx", 302: "3xx", 404: "4xx", 500: "5xx", 100: "unknown"}
	for code, want := range tests {
		assert.Equal(t, want, categorizeStatus(code), code)
	}
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/api/kanban/health"))
	assert.True(t, ShouldSkipEndpoint("/api/kanban/ready"))
	assert.True(t, ShouldSkipEndpoint("/api/kanban/swagger/*any"))
	assert.False(t, ShouldSkipEndpoint("/api/kanban/boards/:boardId"))
}

func TestUpdateDBStats_CountsDeltas(t *testing.T) {
	m, _ := getTestMetrics()

	m.UpdateDBStats(sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2, MaxOpenConnections: 25, WaitCount: 4, WaitDuration: 2 * time.Second})
	m.UpdateDBStats(sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2, MaxOpenConnections: 25, WaitCount: 6, WaitDuration: 3 * time.Second})

	assert.Equal(t, float64(3), getGaugeValue(t, m.DBConnectionsOpen))
	assert.Equal(t, float64(25), getGaugeValue(t, m.DBConnectionsMax))
	assert.Equal(t, float64(6), getCounterValue(t, m.DBConnectionWaitTotal))
	assert.InDelta(t, 3.0, getCounterValue(t, m.DBConnectionWaitDuration), 0.0001)

	// wrong type is ignored
	m.UpdateDBStats("not stats")
}

func TestRecordDBQuery_Errors(t *testing.T) {
	m, _ := getTestMetrics()

	m.RecordDBQuery("SELECT", "cards", time.Millisecond, nil)
	m.RecordDBQuery("select", "cards", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(1), getCounterValue(t, m.DBQueryErrors.WithLabelValues("select", "cards")))
}

func TestRecordExternalAPICall(t *testing.T) {
	m, _ := getTestMetrics()

	endpoint := "/api/internal/notifications/123e4567-e89b-12d3-a456-426614174000"
	m.RecordExternalAPICall(endpoint, "POST", 0, time.Millisecond, errors.New("dial tcp: connection refused"))
	m.RecordExternalAPICall(endpoint, "POST", 503, time.Millisecond, nil)
	m.RecordExternalAPICall(endpoint, "POST", 201, time.Millisecond, nil)

	normalized := "/api/internal/notifications/{id}"
	assert.Equal(t, float64(1), getCounterValue(t, m.ExternalAPIErrors.WithLabelValues(normalized, "connection_refused")))
	assert.Equal(t, float64(1), getCounterValue(t, m.ExternalAPIErrors.WithLabelValues(normalized, "service_unavailable")))
	assert.Equal(t, float64(1), getCounterValue(t, m.ExternalAPIRequestsTotal.WithLabelValues(normalized, "POST", "201")))
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		status int
		err    error
		want   string
	}{
		{401, nil, "unauthorized"},
		{422, nil, "client_error"},
		{502, nil, "server_error"},
		{0, errors.New("context deadline exceeded"), "timeout"},
		{0, errors.New("lookup x: no such host"), "dns_error"},
		{0, errors.New("weird"), "network_error"},
		{0, nil, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorType(tt.status, tt.err))
	}
}

func TestSafeExecuteRecoversPanic(t *testing.T) {
	m, _ := getTestMetrics()
	assert.NotPanics(t, func() {
		m.safeExecute("panicky", func() { panic("boom") })
	})
}

func TestNewWithRegistry_NilLogger(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), nil)
	assert.NotPanics(t, func() {
		m.safeExecute("panicky", func() { panic("boom") })
	})
}

func TestNilMetricsRecordsNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementBoardCreated()
		m.IncrementCardMoved(MoveScopeAcrossColumn)
		m.RecordHTTPRequest("GET", "/boards", 200, time.Millisecond)
	})
}

type stubCounter struct {
	n   int64
	err error
}

func (s stubCounter) Count(ctx context.Context) (int64, error) { return s.n, s.err }

func TestBusinessMetricsCollector_Collect(t *testing.T) {
	m, _ := getTestMetrics()
	m.SetCardsTotal(99)

	c := NewBusinessMetricsCollector(Counters{
		Users:  stubCounter{n: 2},
		Boards: stubCounter{n: 5},
		Cards:  stubCounter{err: errors.New("db down")},
	}, m, zap.NewNop(), time.Hour)

	c.Collect()

	assert.Equal(t, float64(2), getGaugeValue(t, m.UsersTotal))
	assert.Equal(t, float64(5), getGaugeValue(t, m.BoardsTotal))
	// failed count leaves the previous value
	assert.Equal(t, float64(99), getGaugeValue(t, m.CardsTotal))
}

func TestBusinessMetricsCollector_StartStop(t *testing.T) {
	m, _ := getTestMetrics()
	c := NewBusinessMetricsCollector(Counters{Boards: stubCounter{n: 7}}, m, zap.NewNop(), 10*time.Millisecond)

	c.Start()
	assert.Eventually(t, func() bool {
		return getGaugeValue(t, m.BoardsTotal) == 7
	}, time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop()
}
